package elevfsm

import (
	"github.com/detoxte/TTK4235/internal/elevcmd"
	"github.com/detoxte/TTK4235/internal/elevconsts"
)

// Action is what the loop has to carry out after a Step.
type Action int

const (
	DoNothing Action = iota
	MoveUp
	MoveDown
	OpenDoorAndStartTimer
	StopAndOpenAndStartTimer
	RestartTimer
	StartTimer
	CloseDoor
	CloseDoorAndMoveUp
	CloseDoorAndMoveDown
	StopMovement
	EmergencyStop
	ReleaseStop
)

const N_ACTIONS = 13

func (a Action) String() string {
	switch a {
	case DoNothing:
		return "A_DoNothing"
	case MoveUp:
		return "A_MoveUp"
	case MoveDown:
		return "A_MoveDown"
	case OpenDoorAndStartTimer:
		return "A_OpenDoorAndStartTimer"
	case StopAndOpenAndStartTimer:
		return "A_StopAndOpenAndStartTimer"
	case RestartTimer:
		return "A_RestartTimer"
	case StartTimer:
		return "A_StartTimer"
	case CloseDoor:
		return "A_CloseDoor"
	case CloseDoorAndMoveUp:
		return "A_CloseDoorAndMoveUp"
	case CloseDoorAndMoveDown:
		return "A_CloseDoorAndMoveDown"
	case StopMovement:
		return "A_StopMovement"
	case EmergencyStop:
		return "A_Emergency"
	case ReleaseStop:
		return "A_ReleaseStop"
	default:
		return "A_UNDEFINED"
	}
}

func motor(dir elevconsts.Dirn) elevcmd.ElevatorCommand {
	return elevcmd.Wrap(elevcmd.MotorDirCommand{Dir: dir})
}

func stopLamp(on bool) elevcmd.ElevatorCommand {
	return elevcmd.Wrap(elevcmd.StopLampCommand{Value: on})
}

var (
	doorOpen  = elevcmd.Wrap(elevcmd.DoorOpenCommand{})
	doorClose = elevcmd.Wrap(elevcmd.DoorCloseCommand{})
)

// ActionCommands lists the hardware commands for action, in the order they
// must be issued. The door is always closed before the motor starts.
func ActionCommands(action Action, atFloor bool) []elevcmd.ElevatorCommand {
	switch action {
	case MoveUp:
		return []elevcmd.ElevatorCommand{motor(elevconsts.Up)}
	case MoveDown:
		return []elevcmd.ElevatorCommand{motor(elevconsts.Down)}
	case OpenDoorAndStartTimer:
		return []elevcmd.ElevatorCommand{doorOpen}
	case StopAndOpenAndStartTimer:
		return []elevcmd.ElevatorCommand{motor(elevconsts.Stop), doorOpen}
	case StartTimer:
		return []elevcmd.ElevatorCommand{doorOpen, stopLamp(false)}
	case CloseDoor:
		return []elevcmd.ElevatorCommand{doorClose, stopLamp(false)}
	case CloseDoorAndMoveUp:
		return []elevcmd.ElevatorCommand{doorClose, motor(elevconsts.Up)}
	case CloseDoorAndMoveDown:
		return []elevcmd.ElevatorCommand{doorClose, motor(elevconsts.Down)}
	case StopMovement:
		return []elevcmd.ElevatorCommand{motor(elevconsts.Stop)}
	case EmergencyStop:
		cmds := []elevcmd.ElevatorCommand{motor(elevconsts.Stop)}
		if atFloor {
			cmds = append(cmds, doorOpen)
		}
		return append(cmds, stopLamp(true))
	case ReleaseStop:
		return []elevcmd.ElevatorCommand{stopLamp(false)}
	default:
		return nil
	}
}
