package elevfsm

import (
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevevent"
)

// Transition is the pure dispatch on (behaviour, event). Events that a
// state does not react to are handled as NoEvent, so every combination
// yields a defined next behaviour and action.
func Transition(behaviour elevconsts.ElevatorBehaviour, event elevevent.ElevatorEvent, guards Guards) (elevconsts.ElevatorBehaviour, Action) {
	switch behaviour {
	case elevconsts.Idle:
		return idleTransition(event, guards)
	case elevconsts.MovingUp, elevconsts.MovingDown:
		return movingTransition(behaviour, event, guards)
	case elevconsts.DoorOpen:
		return doorOpenTransition(event, guards)
	case elevconsts.Emergency:
		return emergencyTransition(event, guards)
	default:
		Log.Error().Msgf("Unknown behaviour %v, stopping", behaviour)
		return elevconsts.Idle, StopMovement
	}
}

func idleTransition(event elevevent.ElevatorEvent, guards Guards) (elevconsts.ElevatorBehaviour, Action) {
	switch event.Value.(type) {
	case elevevent.StopHighEvent:
		return elevconsts.Emergency, EmergencyStop
	case elevevent.QueueNotEmptyEvent:
		switch {
		case guards.TargetEqual:
			return elevconsts.DoorOpen, OpenDoorAndStartTimer
		case guards.TargetAbove:
			return elevconsts.MovingUp, MoveUp
		case guards.TargetBelow:
			return elevconsts.MovingDown, MoveDown
		}
	}
	return elevconsts.Idle, DoNothing
}

func movingTransition(behaviour elevconsts.ElevatorBehaviour, event elevevent.ElevatorEvent, guards Guards) (elevconsts.ElevatorBehaviour, Action) {
	switch event.Value.(type) {
	case elevevent.StopHighEvent:
		return elevconsts.Emergency, EmergencyStop
	case elevevent.FloorMatchEvent:
		if guards.DirMatch {
			return elevconsts.DoorOpen, StopAndOpenAndStartTimer
		}
		if !guards.RequestsAhead {
			// the remaining work is behind us, halt here and let Idle reverse
			return elevconsts.Idle, StopMovement
		}
	}
	return behaviour, DoNothing
}

func doorOpenTransition(event elevevent.ElevatorEvent, guards Guards) (elevconsts.ElevatorBehaviour, Action) {
	switch event.Value.(type) {
	case elevevent.StopHighEvent:
		return elevconsts.Emergency, EmergencyStop
	case elevevent.ObstructionHighEvent, elevevent.RequestHereEvent:
		return elevconsts.DoorOpen, RestartTimer
	case elevevent.QueueEmptyEvent:
		if guards.TimerDone {
			return elevconsts.Idle, CloseDoor
		}
	case elevevent.TargetDiffersEvent:
		switch {
		case guards.TimerDone && guards.TargetAbove:
			return elevconsts.MovingUp, CloseDoorAndMoveUp
		case guards.TimerDone && guards.TargetBelow:
			return elevconsts.MovingDown, CloseDoorAndMoveDown
		}
	default:
		if guards.TimerDone && guards.QueueEmpty {
			return elevconsts.Idle, CloseDoor
		}
	}
	return elevconsts.DoorOpen, DoNothing
}

func emergencyTransition(event elevevent.ElevatorEvent, guards Guards) (elevconsts.ElevatorBehaviour, Action) {
	switch event.Value.(type) {
	case elevevent.StopHighEvent:
		return elevconsts.Emergency, EmergencyStop
	case elevevent.StopLowEvent:
		switch {
		case guards.TimerDone && guards.AtFloor:
			return elevconsts.DoorOpen, StartTimer
		case guards.TimerDone:
			return elevconsts.Idle, CloseDoor
		default:
			return elevconsts.Emergency, ReleaseStop
		}
	}
	return elevconsts.Emergency, DoNothing
}
