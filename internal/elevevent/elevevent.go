package elevevent

type ElevatorEvent struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

// Stop button is held
type StopHighEvent struct{}

// Stop button is released
type StopLowEvent struct{}

type ObstructionHighEvent struct{}

type QueueEmptyEvent struct{}

type QueueNotEmptyEvent struct {
	Target int
}

// The scheduler target differs from the floor where the door is open
type TargetDiffersEvent struct {
	Target int
}

// The cabin is at a floor sensor the scheduler cares about
type FloorMatchEvent struct {
	Floor int
}

// A new request for the floor where the door is already open
type RequestHereEvent struct {
	Floor int
}

type NoEvent struct{}

func Wrap(value any) ElevatorEvent {
	return ElevatorEvent{Value: value}
}

func (e *ElevatorEvent) EventType() string {
	switch e.Value.(type) {
	case StopHighEvent:
		return "StopHighEvent"
	case StopLowEvent:
		return "StopLowEvent"
	case ObstructionHighEvent:
		return "ObstructionHighEvent"
	case QueueEmptyEvent:
		return "QueueEmptyEvent"
	case QueueNotEmptyEvent:
		return "QueueNotEmptyEvent"
	case TargetDiffersEvent:
		return "TargetDiffersEvent"
	case FloorMatchEvent:
		return "FloorMatchEvent"
	case RequestHereEvent:
		return "RequestHereEvent"
	case NoEvent:
		return "NoEvent"
	default:
		return "UnknownEvent"
	}
}

// All returns one value of every event variant, used to check that
// dispatch over events is total.
func All() []ElevatorEvent {
	return []ElevatorEvent{
		{Value: StopHighEvent{}},
		{Value: StopLowEvent{}},
		{Value: ObstructionHighEvent{}},
		{Value: QueueEmptyEvent{}},
		{Value: QueueNotEmptyEvent{}},
		{Value: TargetDiffersEvent{}},
		{Value: FloorMatchEvent{}},
		{Value: RequestHereEvent{}},
		{Value: NoEvent{}},
	}
}
