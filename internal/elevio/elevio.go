package elevio

import (
	"github.com/detoxte/TTK4235/internal/elevcmd"
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/logger"
)

var Log = logger.GetLogger()

// Hardware is the cabin as seen by the controller: four sensors and five
// outputs. Floor numbers are 0-based, GetFloor returns FLOOR_BETWEEN when
// no sensor is active.
type Hardware interface {
	GetFloor() int
	GetButton(button elevconsts.Button, floor int) bool
	GetStop() bool
	GetObstruction() bool

	SetMotorDirection(dir elevconsts.Dirn)
	SetDoorOpenLamp(open bool)
	SetButtonLamp(button elevconsts.Button, floor int, on bool)
	SetFloorIndicator(floor int)
	SetStopLamp(on bool)
}

// Apply carries out a single command on hw.
func Apply(hw Hardware, command elevcmd.ElevatorCommand) {
	Log.Trace().Msgf("Applying %v", command.CommandType())
	switch cmd := command.Value.(type) {
	case elevcmd.MotorDirCommand:
		hw.SetMotorDirection(cmd.Dir)
	case elevcmd.ButtonLightArrayCommand:
		for i := 0; i < len(cmd.Array); i++ {
			element := cmd.Array[i]
			if elevconsts.ButtonExists(element.Button, element.Floor) {
				hw.SetButtonLamp(element.Button, element.Floor, element.Value)
			}
		}
	case elevcmd.ButtonLightCommand:
		hw.SetButtonLamp(cmd.Button, cmd.Floor, cmd.Value)
	case elevcmd.FloorIndicatorCommand:
		hw.SetFloorIndicator(cmd.Floor)
	case elevcmd.DoorOpenCommand:
		hw.SetDoorOpenLamp(true)
	case elevcmd.DoorCloseCommand:
		hw.SetDoorOpenLamp(false)
	case elevcmd.StopLampCommand:
		hw.SetStopLamp(cmd.Value)
	default:
		Log.Error().Msgf("Unknown command %v", cmd)
	}
}

func ApplyAll(hw Hardware, commands []elevcmd.ElevatorCommand) {
	for _, command := range commands {
		Apply(hw, command)
	}
}
