package elevator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/detoxte/TTK4235/internal/elevcmd"
	"github.com/detoxte/TTK4235/internal/elevconfig"
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevfsm"
	"github.com/detoxte/TTK4235/internal/elevio"
	"github.com/detoxte/TTK4235/internal/elevmetadata"
	"github.com/detoxte/TTK4235/internal/elevorders"
	"github.com/detoxte/TTK4235/internal/elevsched"
	"github.com/detoxte/TTK4235/internal/elevtimer"
	"github.com/detoxte/TTK4235/internal/elevutils"
	"github.com/detoxte/TTK4235/internal/logger"

	"github.com/tiendc/go-deepcopy"
	"github.com/xyproto/randomstring"
)

var Logger = logger.GetLogger()

const IDENTIFIER_DEFAULT_LEN = 10

var (
	ErrNotInitialised = errors.New("elevator not initialised")
	ErrAlreadyRunning = errors.New("elevator already running")
	ErrNotRunning     = errors.New("elevator not running")
	ErrInitTimeout    = errors.New("no floor reached during initialisation")
)

type Elevator struct {
	MetaData *elevmetadata.ElevMetaData //this contains all elevator constant metadata

	config elevconfig.Config
	hw     elevio.Hardware
	clock  clock.Clock

	//guards orders and controller between the loop and Status
	mtx        sync.Mutex
	orders     *elevorders.Orders
	controller *elevfsm.Controller
	indicator  int

	initialised bool //set to true by a successful Init
	running     bool

	//used for graceful shutdown
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
}

// Status is a copy of the controller state, safe to keep and log.
type Status struct {
	Identifier   string                       `json:"identifier"`
	Behaviour    elevconsts.ElevatorBehaviour `json:"behaviour"`
	LastFloor    int                          `json:"last_floor"`
	LastDirn     elevconsts.Dirn              `json:"last_dirn"`
	DoorOpen     bool                         `json:"door_open"`
	Orders       elevorders.Orders            `json:"orders"`
	PlannedStops []int                        `json:"planned_stops"`
}

// NewElevator wires a controller for hw. A nil clk uses the wall clock.
func NewElevator(config elevconfig.Config, hw elevio.Hardware, clk clock.Clock) *Elevator {
	if config.Identifier == "" {
		config.Identifier = randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN) //this should be random enough
		Logger.Warn().Msgf("No elevator identifier provided, generated random identifier \"%v\"", config.Identifier)
	}
	if clk == nil {
		clk = clock.New()
	}

	return &Elevator{
		MetaData: &elevmetadata.ElevMetaData{
			Identifier:       config.Identifier,
			SoftwareVersion:  elevutils.GetGitHash(),
			DriverAddress:    config.DriverAddress,
			NumFloors:        elevconsts.N_FLOORS,
			DoorOpenDuration: config.DoorOpenDuration,
		},
		config:    config,
		hw:        hw,
		clock:     clk,
		orders:    elevorders.NewOrders(),
		indicator: elevconsts.FLOOR_BETWEEN,
	}
}

// Init puts the outputs in a known state and drives the cabin down until a
// floor sensor triggers. The controller starts Idle at that floor.
func (e *Elevator) Init(ctx context.Context) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.running {
		return ErrAlreadyRunning
	}

	e.orders.EraseAll()
	elevio.ApplyAll(e.hw, []elevcmd.ElevatorCommand{
		e.lightCommand(),
		elevcmd.Wrap(elevcmd.DoorCloseCommand{}),
		elevcmd.Wrap(elevcmd.StopLampCommand{Value: false}),
	})

	floor, err := e.findFloor(ctx)
	if err != nil {
		return err
	}

	e.hw.SetFloorIndicator(floor)
	e.indicator = floor
	e.controller = elevfsm.NewController(e.orders, elevtimer.NewTimer(e.clock), e.config.DoorOpenDuration, floor)
	e.initialised = true

	Logger.Info().Msgf("Elevator initialised at floor %d", floor)
	return nil
}

func (e *Elevator) findFloor(ctx context.Context) (int, error) {
	floor := e.hw.GetFloor()
	if elevconsts.ValidFloor(floor) {
		e.hw.SetMotorDirection(elevconsts.Stop)
		return floor, nil
	}

	Logger.Info().Msg("Cabin between floors, driving down")
	e.hw.SetMotorDirection(elevconsts.Down)
	defer e.hw.SetMotorDirection(elevconsts.Stop)

	ticker := e.clock.Ticker(e.config.PollPeriod)
	defer ticker.Stop()
	deadline := e.clock.Now().Add(e.config.InitTimeout)

	for {
		select {
		case <-ctx.Done():
			return elevconsts.FLOOR_BETWEEN, ctx.Err()
		case <-ticker.C:
		}

		floor = e.hw.GetFloor()
		if elevconsts.ValidFloor(floor) {
			return floor, nil
		}
		if !e.clock.Now().Before(deadline) {
			return elevconsts.FLOOR_BETWEEN, fmt.Errorf("%w after %v", ErrInitTimeout, e.config.InitTimeout)
		}
	}
}

// Iterate runs one pass of the control loop and returns the action the
// controller chose.
func (e *Elevator) Iterate() (elevfsm.Action, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if !e.initialised {
		return elevfsm.DoNothing, ErrNotInitialised
	}

	snapshot := elevfsm.Snapshot{
		Floor:       e.hw.GetFloor(),
		Stop:        e.hw.GetStop(),
		Obstruction: e.hw.GetObstruction(),
	}

	if elevconsts.ValidFloor(snapshot.Floor) && snapshot.Floor != e.indicator {
		e.hw.SetFloorIndicator(snapshot.Floor)
		e.indicator = snapshot.Floor
	}

	if e.controller.Behaviour != elevconsts.Emergency {
		e.orders.PollAll(e.hw)
	}

	action := e.controller.Step(snapshot)
	elevio.ApplyAll(e.hw, elevfsm.ActionCommands(action, elevconsts.ValidFloor(snapshot.Floor)))
	elevio.Apply(e.hw, e.lightCommand())

	return action, nil
}

// lightCommand mirrors the order bitmaps onto the button lamps.
func (e *Elevator) lightCommand() elevcmd.ElevatorCommand {
	var lights elevcmd.ButtonLightArrayCommand
	for floor := 0; floor < elevconsts.N_FLOORS; floor++ {
		for button := elevconsts.Button(0); button < elevconsts.N_BUTTONS; button++ {
			lights.Array[floor*elevconsts.N_BUTTONS+int(button)] = elevcmd.ButtonLightCommand{
				Floor:  floor,
				Button: button,
				Value:  e.orders.Has(floor, button),
			}
		}
	}
	return elevcmd.Wrap(lights)
}

func (e *Elevator) Start() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if !e.initialised {
		Logger.Error().Msg("Elevator not initialised")
		return ErrNotInitialised
	}
	if e.running {
		Logger.Error().Msg("Elevator already running")
		return ErrAlreadyRunning
	}

	ctxLoop, cancelLoop := context.WithCancel(context.Background())
	wgLoop := &sync.WaitGroup{}
	e.waitGroupArray = append(e.waitGroupArray, wgLoop)
	e.startLoop(ctxLoop, wgLoop)
	e.cancelArray = append(e.cancelArray, cancelLoop)

	e.running = true
	return nil
}

func (e *Elevator) startLoop(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(1)

	go func() {
		defer waitGroup.Done()
		ticker := e.clock.Ticker(e.config.PollPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				Logger.Warn().Msgf("Elevator control loop has been signaled to stop")
				return
			case <-ticker.C:
				if _, err := e.Iterate(); err != nil {
					Logger.Error().Msgf("Iteration failed %v", err)
				}
			}
		}
	}()
}

func (e *Elevator) Stop() error {
	e.mtx.Lock()
	if !e.initialised {
		e.mtx.Unlock()
		Logger.Error().Msg("Elevator not initialised")
		return ErrNotInitialised
	}
	if !e.running {
		e.mtx.Unlock()
		Logger.Error().Msg("Elevator not running, so cannot stop elevator")
		return ErrNotRunning
	}
	e.mtx.Unlock()

	Logger.Debug().Msg("Stopping Elevator")

	//Gracefully shutdown all threads one by one
	for i := len(e.cancelArray) - 1; i >= 0; i-- {
		e.cancelArray[i]()
		e.waitGroupArray[i].Wait()
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.cancelArray = nil
	e.waitGroupArray = nil
	e.hw.SetMotorDirection(elevconsts.Stop)
	e.running = false

	Logger.Debug().Msg("Stopped Elevator")
	return nil
}

func (e *Elevator) Status() (Status, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if !e.initialised {
		return Status{}, ErrNotInitialised
	}

	status := Status{
		Identifier:   e.config.Identifier,
		Behaviour:    e.controller.Behaviour,
		LastFloor:    e.controller.LastFloor,
		LastDirn:     e.controller.LastDirn,
		DoorOpen:     e.controller.DoorOpen,
		Orders:       *e.orders,
		PlannedStops: elevsched.PlannedStops(e.orders, e.controller.LastFloor, e.controller.LastDirn),
	}

	var snapshot Status
	if err := deepcopy.Copy(&snapshot, &status); err != nil {
		return Status{}, fmt.Errorf("copy status: %w", err)
	}
	return snapshot, nil
}
