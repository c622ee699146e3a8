package elevconsts

import "time"

const (
	N_FLOORS  = 4
	N_BUTTONS = 3

	// Floor sensor reading while the cabin is not aligned with any floor.
	FLOOR_BETWEEN = -1

	DOOR_OPEN_DURATION = 3 * time.Second
)

type Dirn int

func (d Dirn) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Stop:
		return "Stop"
	default:
		return "Undefined"
	}
}

const (
	Down Dirn = -1
	Stop Dirn = 0
	Up   Dirn = 1
)

type Button int

const (
	HallUp Button = iota
	HallDown
	Cab
)

func (b Button) String() string {
	switch b {
	case HallUp:
		return "B_HallUp"
	case HallDown:
		return "B_HallDown"
	case Cab:
		return "B_Cab"
	default:
		return "B_UNDEFINED"
	}
}

// ButtonExists is false for the hall-up button on the top floor and the
// hall-down button on the bottom floor.
func ButtonExists(button Button, floor int) bool {
	if !ValidFloor(floor) {
		return false
	}
	switch button {
	case HallUp:
		return floor < N_FLOORS-1
	case HallDown:
		return floor > 0
	case Cab:
		return true
	default:
		return false
	}
}

func ValidFloor(floor int) bool {
	return floor >= 0 && floor < N_FLOORS
}

type ElevatorBehaviour int

const (
	Idle ElevatorBehaviour = iota // 0
	MovingUp
	MovingDown
	DoorOpen
	Emergency
)

const N_BEHAVIOURS = 5

func (eb ElevatorBehaviour) String() string {
	switch eb {
	case Idle:
		return "EB_Idle"
	case MovingUp:
		return "EB_MovingUp"
	case MovingDown:
		return "EB_MovingDown"
	case DoorOpen:
		return "EB_DoorOpen"
	case Emergency:
		return "EB_Emergency"
	default:
		return "EB_UNDEFINED"
	}
}
