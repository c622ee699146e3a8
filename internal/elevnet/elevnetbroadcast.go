package elevnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/detoxte/TTK4235/internal/elevmetadata"
)

type ElevNetBroadcast struct {
	address            string                     //internal variable
	broadCastingPeriod time.Duration              //internal variable
	metaData           *elevmetadata.ElevMetaData //internal variable
	source             StatusSource               //internal variable
	sequence           uint64                     //internal variable
}

func NewElevNetBroadcast(address string, period time.Duration, metaData *elevmetadata.ElevMetaData, source StatusSource) *ElevNetBroadcast {
	return &ElevNetBroadcast{
		address:            address,
		broadCastingPeriod: period,
		metaData:           metaData,
		source:             source,
	}
}

// Start sends a status packet every period until ctx is cancelled.
func (enb *ElevNetBroadcast) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	if enb.metaData == nil || enb.source == nil {
		return errors.New("metaData and status source are required")
	}
	if enb.broadCastingPeriod <= 0 {
		return fmt.Errorf("broadcast period %v must be positive", enb.broadCastingPeriod)
	}

	udpAddress, err := net.ResolveUDPAddr("udp", enb.address)
	if err != nil {
		return fmt.Errorf("error resolving UDP Address: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddress)
	if err != nil {
		return fmt.Errorf("error creating UDP Socket: %w", err)
	}
	conn.SetWriteBuffer(BUFFER_LENGTH)

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		timeTicker := time.NewTicker(enb.broadCastingPeriod)
		defer timeTicker.Stop()
		defer conn.Close()

		for {
			select {
			case <-ctx.Done():
				Log.Info().Msgf("Stopping Broadcasting task...")
				return
			case <-timeTicker.C:
				jsonData, err := enb.packet()
				if err != nil {
					Log.Error().Msgf("Error building status packet: %v", err)
					continue
				}
				_, err = conn.Write(jsonData)
				if err != nil {
					Log.Error().Msgf("Error writing to UDP Socket: %v", err)
				}

				Log.Trace().Msgf("Sent Packet: %v", string(jsonData))
			}
		}
	}()

	Log.Info().Msgf("Started To Broadcast status to %s", enb.address)

	return nil
}

func (enb *ElevNetBroadcast) packet() ([]byte, error) {
	status, err := enb.source.Status()
	if err != nil {
		return nil, err
	}
	enb.sequence++
	return json.Marshal(StatusPacket{
		Sequence: enb.sequence,
		MetaData: *enb.metaData,
		Status:   status,
	})
}
