package elevconsts

import "testing"

func TestButtonExists(t *testing.T) {
	tests := []struct {
		button Button
		floor  int
		exists bool
	}{
		{HallUp, 0, true},
		{HallUp, N_FLOORS - 1, false},
		{HallDown, 0, false},
		{HallDown, N_FLOORS - 1, true},
		{Cab, 0, true},
		{Cab, N_FLOORS - 1, true},
		{Cab, N_FLOORS, false},
		{Cab, FLOOR_BETWEEN, false},
		{Button(7), 1, false},
	}

	for _, test := range tests {
		if got := ButtonExists(test.button, test.floor); got != test.exists {
			t.Errorf("ButtonExists(%v, %d) = %v, expected %v", test.button, test.floor, got, test.exists)
		}
	}
}

func TestStrings(t *testing.T) {
	if Up.String() != "Up" || Down.String() != "Down" || Stop.String() != "Stop" || Dirn(5).String() != "Undefined" {
		t.Errorf("Dirn.String() returned unexpected names")
	}
	behaviours := map[ElevatorBehaviour]string{
		Idle:                  "EB_Idle",
		MovingUp:              "EB_MovingUp",
		MovingDown:            "EB_MovingDown",
		DoorOpen:              "EB_DoorOpen",
		Emergency:             "EB_Emergency",
		ElevatorBehaviour(42): "EB_UNDEFINED",
	}
	for behaviour, name := range behaviours {
		if behaviour.String() != name {
			t.Errorf("ElevatorBehaviour.String() = %v, expected %v", behaviour.String(), name)
		}
	}
}
