package elevfsm

import (
	"fmt"
	"time"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevevent"
	"github.com/detoxte/TTK4235/internal/elevorders"
	"github.com/detoxte/TTK4235/internal/elevsched"
	"github.com/detoxte/TTK4235/internal/elevtimer"
	"github.com/detoxte/TTK4235/internal/logger"
	"github.com/rs/zerolog"
)

var Log = logger.GetLogger()

// Snapshot is the sensor state sampled once per loop iteration.
type Snapshot struct {
	Floor       int
	Stop        bool
	Obstruction bool
}

// Controller owns the cabin state machine. It is driven by a single loop
// and is not safe for concurrent use.
type Controller struct {
	Behaviour elevconsts.ElevatorBehaviour
	LastFloor int
	LastDirn  elevconsts.Dirn
	DoorOpen  bool

	orders           *elevorders.Orders
	timer            *elevtimer.Timer
	doorOpenDuration time.Duration
}

// NewController returns an Idle controller parked at floor with the door
// closed. floor must be a valid floor, the loop drives the cabin to one first.
func NewController(orders *elevorders.Orders, timer *elevtimer.Timer, doorOpenDuration time.Duration, floor int) *Controller {
	return &Controller{
		Behaviour:        elevconsts.Idle,
		LastFloor:        floor,
		LastDirn:         elevconsts.Stop,
		DoorOpen:         false,
		orders:           orders,
		timer:            timer,
		doorOpenDuration: doorOpenDuration,
	}
}

func (c *Controller) Orders() *elevorders.Orders {
	return c.orders
}

// ObserveFloor trusts any valid sensor reading over the remembered floor.
func (c *Controller) ObserveFloor(floor int) bool {
	if !elevconsts.ValidFloor(floor) || floor == c.LastFloor {
		return false
	}
	Log.Debug().Msgf("Floor sensor %d, last floor was %d", floor, c.LastFloor)
	c.LastFloor = floor
	return true
}

// Target is the scheduler's choice for the current orders and position.
func (c *Controller) Target() (int, elevconsts.Dirn) {
	return elevsched.NextTarget(c.orders, c.LastFloor, c.LastDirn)
}

// travelDirn is the direction used for direction-dependent guards.
func (c *Controller) travelDirn() elevconsts.Dirn {
	switch c.Behaviour {
	case elevconsts.MovingUp:
		return elevconsts.Up
	case elevconsts.MovingDown:
		return elevconsts.Down
	default:
		return c.LastDirn
	}
}

// Event picks the single most urgent event for the current behaviour.
func (c *Controller) Event(snapshot Snapshot) elevevent.ElevatorEvent {
	atFloor := elevconsts.ValidFloor(snapshot.Floor)

	switch c.Behaviour {
	case elevconsts.Idle:
		if snapshot.Stop {
			return elevevent.Wrap(elevevent.StopHighEvent{})
		}
		if c.orders.Empty() {
			return elevevent.Wrap(elevevent.QueueEmptyEvent{})
		}
		target, _ := c.Target()
		return elevevent.Wrap(elevevent.QueueNotEmptyEvent{Target: target})

	case elevconsts.DoorOpen:
		if snapshot.Stop {
			return elevevent.Wrap(elevevent.StopHighEvent{})
		}
		if snapshot.Obstruction {
			return elevevent.Wrap(elevevent.ObstructionHighEvent{})
		}
		if c.orders.AnyAt(c.LastFloor) {
			return elevevent.Wrap(elevevent.RequestHereEvent{Floor: c.LastFloor})
		}
		if c.orders.Empty() {
			if c.timer.Expired(c.doorOpenDuration) {
				return elevevent.Wrap(elevevent.QueueEmptyEvent{})
			}
			break
		}
		if target, _ := c.Target(); target != c.LastFloor {
			return elevevent.Wrap(elevevent.TargetDiffersEvent{Target: target})
		}

	case elevconsts.MovingUp, elevconsts.MovingDown:
		if snapshot.Stop {
			return elevevent.Wrap(elevevent.StopHighEvent{})
		}
		if !atFloor {
			break
		}
		target, dirn := c.Target()
		if target == snapshot.Floor || dirn != c.travelDirn() {
			return elevevent.Wrap(elevevent.FloorMatchEvent{Floor: snapshot.Floor})
		}

	case elevconsts.Emergency:
		if snapshot.Stop {
			return elevevent.Wrap(elevevent.StopHighEvent{})
		}
		return elevevent.Wrap(elevevent.StopLowEvent{})
	}

	return elevevent.Wrap(elevevent.NoEvent{})
}

func (c *Controller) Guards(snapshot Snapshot) Guards {
	guards := Guards{
		AtFloor:    elevconsts.ValidFloor(snapshot.Floor),
		TimerDone:  c.timer.Expired(c.doorOpenDuration),
		QueueEmpty: c.orders.Empty(),
	}
	if !guards.QueueEmpty {
		target, _ := c.Target()
		guards.TargetAbove, guards.TargetEqual, guards.TargetBelow = targetRelation(target, c.LastFloor, snapshot.Floor, c.LastDirn)
	}
	dirn := c.travelDirn()
	guards.DirMatch = guards.AtFloor && dirMatch(c.orders, snapshot.Floor, dirn)
	guards.RequestsAhead = requestsAhead(c.orders, c.LastFloor, dirn)
	return guards
}

// Step runs one transition of the state machine against snapshot and
// returns the action the loop must execute. Order and timer bookkeeping
// for the action is done here.
func (c *Controller) Step(snapshot Snapshot) Action {
	c.ObserveFloor(snapshot.Floor)

	event := c.Event(snapshot)
	guards := c.Guards(snapshot)
	next, action := Transition(c.Behaviour, event, guards)

	c.perform(action, event, guards)
	c.logTransition(next, event, action)
	c.Behaviour = next

	return action
}

func (c *Controller) perform(action Action, event elevevent.ElevatorEvent, guards Guards) {
	switch action {
	case MoveUp:
		c.LastDirn = elevconsts.Up
	case MoveDown:
		c.LastDirn = elevconsts.Down
	case OpenDoorAndStartTimer, StopAndOpenAndStartTimer:
		c.orders.ClearAt(c.LastFloor)
		c.timer.Start()
		c.DoorOpen = true
	case RestartTimer:
		if req, ok := event.Value.(elevevent.RequestHereEvent); ok {
			c.orders.ClearAt(req.Floor)
		}
		c.timer.Start()
	case StartTimer:
		c.timer.Start()
		c.DoorOpen = true
	case CloseDoor:
		c.DoorOpen = false
		if c.Behaviour == elevconsts.DoorOpen {
			c.LastDirn = elevconsts.Stop
		}
	case CloseDoorAndMoveUp:
		c.DoorOpen = false
		c.LastDirn = elevconsts.Up
	case CloseDoorAndMoveDown:
		c.DoorOpen = false
		c.LastDirn = elevconsts.Down
	case EmergencyStop:
		c.orders.EraseAll()
		c.timer.Start()
		if guards.AtFloor {
			c.DoorOpen = true
		}
	}
}

func (c *Controller) logTransition(next elevconsts.ElevatorBehaviour, event elevevent.ElevatorEvent, action Action) {
	if next == c.Behaviour && action == DoNothing {
		return
	}

	level := zerolog.InfoLevel
	switch {
	case next == elevconsts.Emergency && c.Behaviour != elevconsts.Emergency:
		level = zerolog.WarnLevel
	case next != c.Behaviour:
		level = zerolog.InfoLevel
	case action == RestartTimer || action == EmergencyStop || action == ReleaseStop:
		// repeated every iteration while the input is held
		level = zerolog.DebugLevel
	}

	Log.WithLevel(level).
		Str("from", c.Behaviour.String()).
		Str("event", event.EventType()).
		Str("to", next.String()).
		Str("action", action.String()).
		Int("floor", c.LastFloor).
		Str("dirn", c.LastDirn.String()).
		Msg("Transition")
}

func (c *Controller) String() string {
	return fmt.Sprintf("floor = %d, dirn = %s, behav = %s, door = %v\n%s",
		c.LastFloor, c.LastDirn.String(), c.Behaviour.String(), c.DoorOpen, c.orders.String())
}
