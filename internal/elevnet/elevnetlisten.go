package elevnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/libp2p/go-reuseport"
)

type ElevNetListen struct {
	StatusReceived chan StatusPacket //returns status packets seen on the address

	conn net.PacketConn //internal variable
}

// NewElevNetListen binds address with SO_REUSEPORT, so several monitors on
// one host can follow the same controller.
func NewElevNetListen(address string) (*ElevNetListen, error) {
	conn, err := reuseport.ListenPacket("udp", address)
	if err != nil {
		return nil, fmt.Errorf("error creating UDP Socket: %w", err)
	}

	return &ElevNetListen{
		StatusReceived: make(chan StatusPacket),
		conn:           conn,
	}, nil
}

func (enl *ElevNetListen) Addr() string {
	return enl.conn.LocalAddr().String()
}

func (enl *ElevNetListen) Start(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(2)

	go func() {
		defer waitGroup.Done()
		<-ctx.Done()
		Log.Info().Msgf("Stopping Listening task...")
		enl.conn.Close()
	}()

	go func() {
		defer waitGroup.Done()
		listenBuffer := make([]byte, BUFFER_LENGTH)
		for {
			n, _, err := enl.conn.ReadFrom(listenBuffer)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return
				}
				Log.Error().Msgf("Error reading UDP message: %v", err)
				continue
			}
			var packet StatusPacket
			err = json.Unmarshal(listenBuffer[:n], &packet)
			if err != nil {
				Log.Error().Msgf("Error deserialising JSON: %v", err)
				continue
			}
			select {
			case enl.StatusReceived <- packet:
			case <-ctx.Done():
				return
			}
		}
	}()
}
