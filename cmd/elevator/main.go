package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/detoxte/TTK4235/internal/elevator"
	"github.com/detoxte/TTK4235/internal/elevconfig"
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevio"
	"github.com/detoxte/TTK4235/internal/elevnet"
	"github.com/detoxte/TTK4235/internal/elevutils"
	"github.com/detoxte/TTK4235/internal/logger"
)

var Logger = logger.GetLoggerConfigured(zerolog.DebugLevel)

func main() {
	args := elevutils.ProcessCmdArgs()

	// Starting Programme
	Logger.Info().Msg("Starting Elevator Programme")

	config, err := elevconfig.Load(args.ConfigPath, args.EnvPath)
	if err != nil {
		Logger.Fatal().Msgf("Configuration error %v", err)
	}
	if args.Identifier != "" {
		config.Identifier = args.Identifier
	}
	if args.DriverAddress != "" {
		config.DriverAddress = args.DriverAddress
	}
	if err := config.Validate(); err != nil {
		Logger.Fatal().Msgf("Configuration error %v", err)
	}

	level, _ := logger.ParseLevel(config.LogLevel)
	logger.GetLoggerConfigured(level)
	Logger.Info().Msgf("Configuration: %v", config)

	driver, err := elevio.NewElevIODriver(config.DriverAddress, elevconsts.N_FLOORS)
	if err != nil {
		Logger.Fatal().Msgf("Error when creating elevator object %v", err)
	}
	defer driver.Close()

	elev := elevator.NewElevator(config, driver, nil)
	Logger.Info().Msgf("Elevator: %v", elev.MetaData.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := elev.Init(ctx); err != nil {
		Logger.Fatal().Msgf("Initialisation failed %v", err)
	}
	if err := elev.Start(); err != nil {
		Logger.Fatal().Msgf("Start failed %v", err)
	}

	waitGroup := &sync.WaitGroup{}
	if config.StatusAddress != "" {
		broadcast := elevnet.NewElevNetBroadcast(config.StatusAddress, config.StatusPeriod, elev.MetaData, elev)
		if err := broadcast.Start(ctx, waitGroup); err != nil {
			Logger.Error().Msgf("Status broadcast disabled %v", err)
		}
	}

	<-ctx.Done()
	Logger.Info().Msg("Shutting down Elevator Programme")
	waitGroup.Wait()

	if err := elev.Stop(); err != nil {
		Logger.Error().Msgf("Stop failed %v", err)
	}
	if status, err := elev.Status(); err == nil {
		Logger.Info().Msgf("Final state %v at floor %d", status.Behaviour, status.LastFloor)
	}
}
