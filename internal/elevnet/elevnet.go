// Package elevnet publishes the controller status as JSON datagrams so a
// monitor can follow the cabin without talking to the controller.
package elevnet

import (
	"github.com/detoxte/TTK4235/internal/elevator"
	"github.com/detoxte/TTK4235/internal/elevmetadata"
	"github.com/detoxte/TTK4235/internal/logger"
)

var Log = logger.GetLogger()

const (
	BUFFER_LENGTH = 2048 //for receiving and transmitting
)

// StatusPacket is one datagram on the wire.
type StatusPacket struct {
	Sequence uint64                    `json:"sequence"`
	MetaData elevmetadata.ElevMetaData `json:"metadata"`
	Status   elevator.Status           `json:"status"`
}

type StatusSource interface {
	Status() (elevator.Status, error)
}
