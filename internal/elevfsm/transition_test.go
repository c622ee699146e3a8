package elevfsm

import (
	"testing"

	"github.com/detoxte/TTK4235/internal/elevcmd"
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevevent"
	"github.com/detoxte/TTK4235/internal/logger"
	"github.com/rs/zerolog"
)

const N_GUARDS = 8

func guardsFromMask(mask int) Guards {
	return Guards{
		AtFloor:       mask&(1<<0) != 0,
		TimerDone:     mask&(1<<1) != 0,
		TargetAbove:   mask&(1<<2) != 0,
		TargetEqual:   mask&(1<<3) != 0,
		TargetBelow:   mask&(1<<4) != 0,
		DirMatch:      mask&(1<<5) != 0,
		RequestsAhead: mask&(1<<6) != 0,
		QueueEmpty:    mask&(1<<7) != 0,
	}
}

// Every (behaviour, event, guards) combination yields a defined result.
func TestTransitionIsTotal(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	events := append(elevevent.All(), elevevent.Wrap(struct{}{}))

	for behaviour := elevconsts.ElevatorBehaviour(0); behaviour < elevconsts.N_BEHAVIOURS; behaviour++ {
		for _, event := range events {
			for mask := 0; mask < 1<<N_GUARDS; mask++ {
				guards := guardsFromMask(mask)
				next, action := Transition(behaviour, event, guards)

				if next < 0 || next >= elevconsts.N_BEHAVIOURS {
					t.Fatalf("Transition(%v, %v, %+v) gave undefined behaviour %v", behaviour, event.EventType(), guards, next)
				}
				if action < 0 || action >= N_ACTIONS {
					t.Fatalf("Transition(%v, %v, %+v) gave undefined action %v", behaviour, event.EventType(), guards, action)
				}

				if _, ok := event.Value.(elevevent.StopHighEvent); ok && (next != elevconsts.Emergency || action != EmergencyStop) {
					t.Errorf("Transition(%v, StopHighEvent) = (%v, %v), expected (EB_Emergency, A_Emergency)", behaviour, next, action)
				}

				if behaviour == elevconsts.DoorOpen && !guards.TimerDone {
					switch action {
					case CloseDoor, CloseDoorAndMoveUp, CloseDoorAndMoveDown:
						t.Errorf("Transition(EB_DoorOpen, %v, %+v) closed the door before the dwell expired", event.EventType(), guards)
					}
				}

				if behaviour == elevconsts.DoorOpen && (next == elevconsts.MovingUp || next == elevconsts.MovingDown) &&
					action != CloseDoorAndMoveUp && action != CloseDoorAndMoveDown {
					t.Errorf("Transition(EB_DoorOpen, %v) = (%v, %v) started moving without closing the door", event.EventType(), next, action)
				}

				if behaviour == elevconsts.Emergency && next != elevconsts.Emergency && !guards.TimerDone {
					t.Errorf("Transition(EB_Emergency, %v, %+v) left emergency before the timer expired", event.EventType(), guards)
				}
			}
		}
	}
}

func TestTransitionTable(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	tests := []struct {
		name       string
		behaviour  elevconsts.ElevatorBehaviour
		event      any
		guards     Guards
		wantNext   elevconsts.ElevatorBehaviour
		wantAction Action
	}{
		{"idle empty", elevconsts.Idle, elevevent.QueueEmptyEvent{}, Guards{QueueEmpty: true}, elevconsts.Idle, DoNothing},
		{"idle above", elevconsts.Idle, elevevent.QueueNotEmptyEvent{}, Guards{TargetAbove: true}, elevconsts.MovingUp, MoveUp},
		{"idle below", elevconsts.Idle, elevevent.QueueNotEmptyEvent{}, Guards{TargetBelow: true}, elevconsts.MovingDown, MoveDown},
		{"idle equal", elevconsts.Idle, elevevent.QueueNotEmptyEvent{}, Guards{TargetEqual: true, AtFloor: true}, elevconsts.DoorOpen, OpenDoorAndStartTimer},
		{"idle no event", elevconsts.Idle, elevevent.NoEvent{}, Guards{}, elevconsts.Idle, DoNothing},

		{"up floor match", elevconsts.MovingUp, elevevent.FloorMatchEvent{}, Guards{DirMatch: true, AtFloor: true}, elevconsts.DoorOpen, StopAndOpenAndStartTimer},
		{"up pass through", elevconsts.MovingUp, elevevent.FloorMatchEvent{}, Guards{RequestsAhead: true, AtFloor: true}, elevconsts.MovingUp, DoNothing},
		{"up reverse", elevconsts.MovingUp, elevevent.FloorMatchEvent{}, Guards{AtFloor: true}, elevconsts.Idle, StopMovement},
		{"up no event", elevconsts.MovingUp, elevevent.NoEvent{}, Guards{}, elevconsts.MovingUp, DoNothing},
		{"down floor match", elevconsts.MovingDown, elevevent.FloorMatchEvent{}, Guards{DirMatch: true, AtFloor: true}, elevconsts.DoorOpen, StopAndOpenAndStartTimer},
		{"down no event", elevconsts.MovingDown, elevevent.NoEvent{}, Guards{}, elevconsts.MovingDown, DoNothing},

		{"door obstruction", elevconsts.DoorOpen, elevevent.ObstructionHighEvent{}, Guards{TimerDone: true}, elevconsts.DoorOpen, RestartTimer},
		{"door request here", elevconsts.DoorOpen, elevevent.RequestHereEvent{}, Guards{}, elevconsts.DoorOpen, RestartTimer},
		{"door queue empty", elevconsts.DoorOpen, elevevent.QueueEmptyEvent{}, Guards{TimerDone: true, QueueEmpty: true}, elevconsts.Idle, CloseDoor},
		{"door target above", elevconsts.DoorOpen, elevevent.TargetDiffersEvent{}, Guards{TimerDone: true, TargetAbove: true}, elevconsts.MovingUp, CloseDoorAndMoveUp},
		{"door target below", elevconsts.DoorOpen, elevevent.TargetDiffersEvent{}, Guards{TimerDone: true, TargetBelow: true}, elevconsts.MovingDown, CloseDoorAndMoveDown},
		{"door target waits for dwell", elevconsts.DoorOpen, elevevent.TargetDiffersEvent{}, Guards{TargetBelow: true}, elevconsts.DoorOpen, DoNothing},
		{"door no event expired empty", elevconsts.DoorOpen, elevevent.NoEvent{}, Guards{TimerDone: true, QueueEmpty: true}, elevconsts.Idle, CloseDoor},
		{"door no event waiting", elevconsts.DoorOpen, elevevent.NoEvent{}, Guards{QueueEmpty: true}, elevconsts.DoorOpen, DoNothing},

		{"emergency held", elevconsts.Emergency, elevevent.StopHighEvent{}, Guards{}, elevconsts.Emergency, EmergencyStop},
		{"emergency release at floor", elevconsts.Emergency, elevevent.StopLowEvent{}, Guards{TimerDone: true, AtFloor: true}, elevconsts.DoorOpen, StartTimer},
		{"emergency release between", elevconsts.Emergency, elevevent.StopLowEvent{}, Guards{TimerDone: true}, elevconsts.Idle, CloseDoor},
		{"emergency release early", elevconsts.Emergency, elevevent.StopLowEvent{}, Guards{AtFloor: true}, elevconsts.Emergency, ReleaseStop},
		{"emergency no event", elevconsts.Emergency, elevevent.NoEvent{}, Guards{TimerDone: true}, elevconsts.Emergency, DoNothing},

		{"unknown event idle", elevconsts.Idle, struct{}{}, Guards{TargetAbove: true}, elevconsts.Idle, DoNothing},
		{"unknown behaviour", elevconsts.ElevatorBehaviour(9), elevevent.NoEvent{}, Guards{}, elevconsts.Idle, StopMovement},
	}

	for _, test := range tests {
		next, action := Transition(test.behaviour, elevevent.Wrap(test.event), test.guards)
		if next != test.wantNext || action != test.wantAction {
			t.Errorf("%s: Transition() = (%v, %v), expected (%v, %v)", test.name, next, action, test.wantNext, test.wantAction)
		}
	}
}

func TestActionCommands(t *testing.T) {
	tests := []struct {
		action  Action
		atFloor bool
		want    []string
	}{
		{DoNothing, true, nil},
		{MoveUp, true, []string{"MotorDirCommand"}},
		{OpenDoorAndStartTimer, true, []string{"DoorOpenCommand"}},
		{StopAndOpenAndStartTimer, true, []string{"MotorDirCommand", "DoorOpenCommand"}},
		{RestartTimer, true, nil},
		{StartTimer, true, []string{"DoorOpenCommand", "StopLampCommand"}},
		{CloseDoor, true, []string{"DoorCloseCommand", "StopLampCommand"}},
		{CloseDoorAndMoveUp, true, []string{"DoorCloseCommand", "MotorDirCommand"}},
		{CloseDoorAndMoveDown, true, []string{"DoorCloseCommand", "MotorDirCommand"}},
		{StopMovement, false, []string{"MotorDirCommand"}},
		{EmergencyStop, true, []string{"MotorDirCommand", "DoorOpenCommand", "StopLampCommand"}},
		{EmergencyStop, false, []string{"MotorDirCommand", "StopLampCommand"}},
		{ReleaseStop, false, []string{"StopLampCommand"}},
	}

	for _, test := range tests {
		cmds := ActionCommands(test.action, test.atFloor)
		if len(cmds) != len(test.want) {
			t.Errorf("ActionCommands(%v, %v) returned %d commands, expected %d", test.action, test.atFloor, len(cmds), len(test.want))
			continue
		}
		for i := range cmds {
			if cmds[i].CommandType() != test.want[i] {
				t.Errorf("ActionCommands(%v, %v)[%d] = %v, expected %v", test.action, test.atFloor, i, cmds[i].CommandType(), test.want[i])
			}
		}
	}

	emergency := ActionCommands(EmergencyStop, false)
	if motor := emergency[0].Value.(elevcmd.MotorDirCommand); motor.Dir != elevconsts.Stop {
		t.Errorf("emergency motor command = %v, expected Stop", motor.Dir)
	}
	if lamp := emergency[1].Value.(elevcmd.StopLampCommand); !lamp.Value {
		t.Errorf("emergency stop lamp = false, expected true")
	}
}

func TestActionString(t *testing.T) {
	for action := Action(0); action < N_ACTIONS; action++ {
		if action.String() == "A_UNDEFINED" {
			t.Errorf("Action(%d).String() is undefined", int(action))
		}
	}
	if Action(N_ACTIONS).String() != "A_UNDEFINED" {
		t.Errorf("Action(N_ACTIONS).String() = %v, expected A_UNDEFINED", Action(N_ACTIONS).String())
	}
}
