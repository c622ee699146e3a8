package elevorders

import (
	"fmt"
	"strings"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/logger"

	"github.com/tiendc/go-deepcopy"
)

var Log = logger.GetLogger()

// ButtonReader is the part of the hardware facade the order model polls.
type ButtonReader interface {
	GetButton(button elevconsts.Button, floor int) bool
}

// Orders holds the outstanding cab, hall-up and hall-down requests, one
// bit per floor. Up[N_FLOORS-1] and Down[0] are always false.
type Orders struct {
	Cab  [elevconsts.N_FLOORS]bool `json:"cab"`
	Up   [elevconsts.N_FLOORS]bool `json:"up"`
	Down [elevconsts.N_FLOORS]bool `json:"down"`
}

func NewOrders() *Orders {
	return &Orders{}
}

// Add sets the bit for button at floor and reports whether it was newly set.
// Buttons that do not exist on the panel are ignored.
func (o *Orders) Add(floor int, button elevconsts.Button) bool {
	if !elevconsts.ButtonExists(button, floor) {
		return false
	}
	bit := o.bit(floor, button)
	if *bit {
		return false
	}
	*bit = true
	Log.Info().Msgf("New order (%d, %s)", floor, button.String())
	return true
}

func (o *Orders) Has(floor int, button elevconsts.Button) bool {
	if !elevconsts.ButtonExists(button, floor) {
		return false
	}
	return *o.bit(floor, button)
}

// PollHall latches the hall button at floor in direction dirn.
func (o *Orders) PollHall(reader ButtonReader, floor int, dirn elevconsts.Dirn) {
	var button elevconsts.Button
	switch dirn {
	case elevconsts.Up:
		button = elevconsts.HallUp
	case elevconsts.Down:
		button = elevconsts.HallDown
	default:
		return
	}
	if !elevconsts.ButtonExists(button, floor) {
		return
	}
	if reader.GetButton(button, floor) {
		o.Add(floor, button)
	}
}

func (o *Orders) PollCab(reader ButtonReader, floor int) {
	if !elevconsts.ValidFloor(floor) {
		return
	}
	if reader.GetButton(elevconsts.Cab, floor) {
		o.Add(floor, elevconsts.Cab)
	}
}

// PollAll polls every button on the panel once.
func (o *Orders) PollAll(reader ButtonReader) {
	for floor := 0; floor < elevconsts.N_FLOORS; floor++ {
		o.PollHall(reader, floor, elevconsts.Up)
		o.PollHall(reader, floor, elevconsts.Down)
		o.PollCab(reader, floor)
	}
}

// ClearAt clears all three requests at floor together.
func (o *Orders) ClearAt(floor int) {
	if !elevconsts.ValidFloor(floor) {
		return
	}
	o.Cab[floor] = false
	o.Up[floor] = false
	o.Down[floor] = false
}

func (o *Orders) EraseAll() {
	*o = Orders{}
}

func (o *Orders) Empty() bool {
	for floor := 0; floor < elevconsts.N_FLOORS; floor++ {
		if o.AnyAt(floor) {
			return false
		}
	}
	return true
}

func (o *Orders) AnyAt(floor int) bool {
	if !elevconsts.ValidFloor(floor) {
		return false
	}
	return o.Cab[floor] || o.Up[floor] || o.Down[floor]
}

// AnyAbove is true if any request is set strictly above floor.
func (o *Orders) AnyAbove(floor int) bool {
	for f := max(floor+1, 0); f < elevconsts.N_FLOORS; f++ {
		if o.AnyAt(f) {
			return true
		}
	}
	return false
}

// AnyBelow is true if any request is set strictly below floor.
func (o *Orders) AnyBelow(floor int) bool {
	for f := min(floor, elevconsts.N_FLOORS) - 1; f >= 0; f-- {
		if o.AnyAt(f) {
			return true
		}
	}
	return false
}

// Topmost returns the highest floor with a request, or FLOOR_BETWEEN.
func (o *Orders) Topmost() int {
	for f := elevconsts.N_FLOORS - 1; f >= 0; f-- {
		if o.AnyAt(f) {
			return f
		}
	}
	return elevconsts.FLOOR_BETWEEN
}

// Bottommost returns the lowest floor with a request, or FLOOR_BETWEEN.
func (o *Orders) Bottommost() int {
	for f := 0; f < elevconsts.N_FLOORS; f++ {
		if o.AnyAt(f) {
			return f
		}
	}
	return elevconsts.FLOOR_BETWEEN
}

// Snapshot returns an independent copy for logging and status reporting.
func (o *Orders) Snapshot() Orders {
	var snapshot Orders
	if err := deepcopy.Copy(&snapshot, o); err != nil {
		Log.Error().Msgf("Error copying orders: %v", err)
		return *o
	}
	return snapshot
}

func (o *Orders) String() string {
	var sb strings.Builder
	sb.WriteString("+--------------------+\n")
	sb.WriteString("|  | up  | dn  | cab |\n")
	for f := elevconsts.N_FLOORS - 1; f >= 0; f-- {
		fmt.Fprintf(&sb, "| %d", f)
		for btn := elevconsts.HallUp; btn <= elevconsts.Cab; btn++ {
			switch {
			case !elevconsts.ButtonExists(btn, f):
				sb.WriteString("|     ")
			case o.Has(f, btn):
				sb.WriteString("|  #  ")
			default:
				sb.WriteString("|  -  ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+--------------------+")
	return sb.String()
}

func (o *Orders) bit(floor int, button elevconsts.Button) *bool {
	switch button {
	case elevconsts.HallUp:
		return &o.Up[floor]
	case elevconsts.HallDown:
		return &o.Down[floor]
	default:
		return &o.Cab[floor]
	}
}
