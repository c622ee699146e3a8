package main

import (
	"context"
	"flag"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"github.com/detoxte/TTK4235/internal/elevnet"
	"github.com/detoxte/TTK4235/internal/elevsim"
	"github.com/detoxte/TTK4235/internal/logger"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

func main() {
	addr := flag.String("addr", "localhost:15657", "Listen address of the simulated elevator server")
	tick := flag.Duration("tick", 100*time.Millisecond, "Time per simulation tick")
	ticksPerFloor := flag.Int("ticks-per-floor", elevsim.DEFAULT_TICKS_PER_FLOOR, "Ticks to travel between two floors")
	startFloor := flag.Int("start-floor", 0, "Floor the cabin starts at")
	monitor := flag.String("monitor", "", "UDP address to receive controller status on, empty to disable")
	flag.Parse()

	cabin, err := elevsim.NewCabin(*ticksPerFloor, *startFloor)
	if err != nil {
		Logger.Fatal().Msgf("Error creating cabin %v", err)
	}
	server, err := elevsim.NewServer(*addr, cabin)
	if err != nil {
		Logger.Fatal().Msgf("Error starting simulator server %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	waitGroup := &sync.WaitGroup{}
	server.Start(ctx, waitGroup)

	if *monitor != "" {
		startMonitor(ctx, waitGroup, *monitor)
	}

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		ticker := time.NewTicker(*tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cabin.Tick()
			}
		}
	}()

	if err := keyboard.Open(); err != nil {
		Logger.Fatal().Msgf("Error opening keyboard %v", err)
	}
	Logger.Info().Msg("Keys: 0-3 cab, q w e hall up, s d f hall down, p stop, o obstruction, Esc quit")

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			Logger.Error().Msgf("Error when getting key %v", err)
			break
		}
		if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
			break
		}
		if cabin.HandleKey(char) {
			Logger.Info().Msgf("%v", cabin.String())
		}
	}

	keyboard.Close()
	cancel()
	waitGroup.Wait()
	Logger.Info().Msg("Simulator stopped")
}

func startMonitor(ctx context.Context, waitGroup *sync.WaitGroup, address string) {
	listen, err := elevnet.NewElevNetListen(address)
	if err != nil {
		Logger.Error().Msgf("Monitor disabled %v", err)
		return
	}
	listen.Start(ctx, waitGroup)

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case packet := <-listen.StatusReceived:
				status := packet.Status
				Logger.Info().
					Str("id", packet.MetaData.Identifier).
					Str("behaviour", status.Behaviour.String()).
					Int("floor", status.LastFloor).
					Ints("planned_stops", status.PlannedStops).
					Msg("Controller status")
			}
		}
	}()
}
