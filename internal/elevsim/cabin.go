package elevsim

import (
	"fmt"
	"sync"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/logger"
)

var Log = logger.GetLogger()

const DEFAULT_TICKS_PER_FLOOR = 10

// Cabin is an in-memory elevator shaft. The cabin position is counted in
// ticks with a floor sensor every ticksPerFloor ticks, and the motor moves
// it one tick per call to Tick. Cabin implements the controller's hardware
// interface directly and is safe for concurrent use.
type Cabin struct {
	mtx sync.Mutex

	ticksPerFloor int
	position      int

	motor       elevconsts.Dirn
	held        [elevconsts.N_FLOORS][elevconsts.N_BUTTONS]bool
	pressed     [elevconsts.N_FLOORS][elevconsts.N_BUTTONS]int
	stop        bool
	obstruction bool

	buttonLamps    [elevconsts.N_FLOORS][elevconsts.N_BUTTONS]bool
	floorIndicator int
	doorOpen       bool
	stopLamp       bool

	ticks           int
	overruns        int
	movedWithDoor   int
	motorDirections []elevconsts.Dirn
}

func NewCabin(ticksPerFloor int, startFloor int) (*Cabin, error) {
	if ticksPerFloor <= 0 {
		return nil, fmt.Errorf("ticks per floor must be positive, got %d", ticksPerFloor)
	}
	if !elevconsts.ValidFloor(startFloor) {
		return nil, fmt.Errorf("start floor %d outside 0..%d", startFloor, elevconsts.N_FLOORS-1)
	}
	return &Cabin{
		ticksPerFloor:  ticksPerFloor,
		position:       startFloor * ticksPerFloor,
		motor:          elevconsts.Stop,
		floorIndicator: startFloor,
	}, nil
}

// PlaceBetween moves the cabin offset ticks above floor.
func (c *Cabin) PlaceBetween(floor int, offset int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.position = min(max(floor*c.ticksPerFloor+offset, 0), c.top())
}

func (c *Cabin) top() int {
	return (elevconsts.N_FLOORS - 1) * c.ticksPerFloor
}

// Tick advances the simulation by one step: the motor moves the cabin and
// timed button presses count down.
func (c *Cabin) Tick() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.ticks++
	if c.motor != elevconsts.Stop && c.doorOpen {
		c.movedWithDoor++
	}

	switch c.motor {
	case elevconsts.Up:
		if c.position < c.top() {
			c.position++
		} else {
			c.overruns++
			Log.Warn().Msgf("Cabin driven past the top floor")
		}
	case elevconsts.Down:
		if c.position > 0 {
			c.position--
		} else {
			c.overruns++
			Log.Warn().Msgf("Cabin driven past the bottom floor")
		}
	}

	for f := 0; f < elevconsts.N_FLOORS; f++ {
		for b := 0; b < elevconsts.N_BUTTONS; b++ {
			if c.pressed[f][b] > 0 {
				c.pressed[f][b]--
			}
		}
	}
}

// SetButton holds or releases a button.
func (c *Cabin) SetButton(button elevconsts.Button, floor int, held bool) {
	if !elevconsts.ButtonExists(button, floor) {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.held[floor][button] = held
}

// PressButton holds a button for the next ticks calls to Tick.
func (c *Cabin) PressButton(button elevconsts.Button, floor int, ticks int) {
	if !elevconsts.ButtonExists(button, floor) {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.pressed[floor][button] = max(c.pressed[floor][button], ticks)
	Log.Debug().Msgf("Pressed (%d, %s) for %d ticks", floor, button.String(), ticks)
}

func (c *Cabin) SetStop(value bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.stop = value
}

func (c *Cabin) ToggleStop() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.stop = !c.stop
	return c.stop
}

func (c *Cabin) SetObstruction(value bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.obstruction = value
}

func (c *Cabin) ToggleObstruction() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.obstruction = !c.obstruction
	return c.obstruction
}

func (c *Cabin) GetFloor() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.position%c.ticksPerFloor != 0 {
		return elevconsts.FLOOR_BETWEEN
	}
	return c.position / c.ticksPerFloor
}

func (c *Cabin) GetButton(button elevconsts.Button, floor int) bool {
	if !elevconsts.ButtonExists(button, floor) {
		return false
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.held[floor][button] || c.pressed[floor][button] > 0
}

func (c *Cabin) GetStop() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.stop
}

func (c *Cabin) GetObstruction() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.obstruction
}

func (c *Cabin) SetMotorDirection(dir elevconsts.Dirn) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if dir != c.motor {
		c.motorDirections = append(c.motorDirections, dir)
	}
	c.motor = dir
}

func (c *Cabin) SetDoorOpenLamp(open bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.doorOpen = open
}

func (c *Cabin) SetButtonLamp(button elevconsts.Button, floor int, on bool) {
	if !elevconsts.ButtonExists(button, floor) {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.buttonLamps[floor][button] = on
}

func (c *Cabin) SetFloorIndicator(floor int) {
	if !elevconsts.ValidFloor(floor) {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.floorIndicator = floor
}

func (c *Cabin) SetStopLamp(on bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.stopLamp = on
}

// Output is a copy of everything the controller has written to the cabin.
type Output struct {
	Motor          elevconsts.Dirn
	DoorOpen       bool
	StopLamp       bool
	FloorIndicator int
	ButtonLamps    [elevconsts.N_FLOORS][elevconsts.N_BUTTONS]bool
	// every change of motor direction, in order
	MotorDirections []elevconsts.Dirn
}

func (c *Cabin) Output() Output {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return Output{
		Motor:           c.motor,
		DoorOpen:        c.doorOpen,
		StopLamp:        c.stopLamp,
		FloorIndicator:  c.floorIndicator,
		ButtonLamps:     c.buttonLamps,
		MotorDirections: append([]elevconsts.Dirn(nil), c.motorDirections...),
	}
}

func (c *Cabin) Position() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.position
}

func (c *Cabin) Ticks() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.ticks
}

func (c *Cabin) TicksPerFloor() int {
	return c.ticksPerFloor
}

// Overruns counts ticks the motor pushed against either end of the shaft.
func (c *Cabin) Overruns() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.overruns
}

// MovedWithDoorOpen counts ticks the motor ran while the door was open.
func (c *Cabin) MovedWithDoorOpen() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.movedWithDoor
}

func (c *Cabin) String() string {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return fmt.Sprintf("position = %d/%d, motor = %s, door = %v, stop = %v, obstruction = %v",
		c.position, c.top(), c.motor.String(), c.doorOpen, c.stop, c.obstruction)
}
