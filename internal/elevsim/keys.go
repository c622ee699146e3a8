package elevsim

import (
	"github.com/detoxte/TTK4235/internal/elevconsts"
)

// PRESS_TICKS is how long a key press holds the button down.
const PRESS_TICKS = 3

var hallUpKeys = []rune{'q', 'w', 'e'}
var hallDownKeys = []rune{'s', 'd', 'f'}

// HandleKey applies one keyboard key to the cabin: 0-3 press the cab
// buttons, q w e the hall-up buttons on floors 0-2, s d f the hall-down
// buttons on floors 1-3, p toggles stop and o toggles the obstruction.
// It reports whether the key was recognised.
func (c *Cabin) HandleKey(char rune) bool {
	if char >= '0' && char < '0'+elevconsts.N_FLOORS {
		c.PressButton(elevconsts.Cab, int(char-'0'), PRESS_TICKS)
		return true
	}
	for i, key := range hallUpKeys {
		if char == key {
			c.PressButton(elevconsts.HallUp, i, PRESS_TICKS)
			return true
		}
	}
	for i, key := range hallDownKeys {
		if char == key {
			c.PressButton(elevconsts.HallDown, i+1, PRESS_TICKS)
			return true
		}
	}

	switch char {
	case 'p':
		Log.Info().Msgf("Stop button %v", c.ToggleStop())
	case 'o':
		Log.Info().Msgf("Obstruction %v", c.ToggleObstruction())
	default:
		return false
	}
	return true
}
