package elevio

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/detoxte/TTK4235/internal/elevconsts"
)

var ErrConnect = errors.New("failed to connect to elevator")

// Frame opcodes of the elevator server protocol. Every frame is 4 bytes,
// the read opcodes are answered with a 4 byte reply.
const (
	OpMotorDirection byte = 1
	OpButtonLamp     byte = 2
	OpFloorIndicator byte = 3
	OpDoorLamp       byte = 4
	OpStopLamp       byte = 5
	OpButton         byte = 6
	OpFloor          byte = 7
	OpStop           byte = 8
	OpObstruction    byte = 9
)

type ElevIODriver struct {
	conn      net.Conn
	mtx       sync.Mutex
	numFloors int
}

func NewElevIODriver(addr string, numFloors int) (*ElevIODriver, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrConnect, addr, err)
	}
	Log.Info().Msgf("Connected to elevator server at %s", addr)

	return &ElevIODriver{
		conn:      conn,
		numFloors: numFloors,
	}, nil
}

func (e *ElevIODriver) Close() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.conn.Close()
}

func (e *ElevIODriver) SetMotorDirection(dir elevconsts.Dirn) {
	e.write([4]byte{OpMotorDirection, byte(int8(dir)), 0, 0})
}

func (e *ElevIODriver) SetButtonLamp(button elevconsts.Button, floor int, value bool) {
	e.write([4]byte{OpButtonLamp, byte(button), byte(floor), toByte(value)})
}

func (e *ElevIODriver) SetFloorIndicator(floor int) {
	if floor < 0 || floor >= e.numFloors {
		return
	}
	e.write([4]byte{OpFloorIndicator, byte(floor), 0, 0})
}

func (e *ElevIODriver) SetDoorOpenLamp(value bool) {
	e.write([4]byte{OpDoorLamp, toByte(value), 0, 0})
}

func (e *ElevIODriver) SetStopLamp(value bool) {
	e.write([4]byte{OpStopLamp, toByte(value), 0, 0})
}

func (e *ElevIODriver) GetButton(button elevconsts.Button, floor int) bool {
	if floor >= e.numFloors || !elevconsts.ButtonExists(button, floor) {
		return false
	}
	resp := e.read([4]byte{OpButton, byte(button), byte(floor), 0})
	return toBool(resp[1])
}

func (e *ElevIODriver) GetFloor() int {
	resp := e.read([4]byte{OpFloor, 0, 0, 0})
	if resp[1] != 0 {
		return int(resp[2])
	}
	return elevconsts.FLOOR_BETWEEN
}

func (e *ElevIODriver) GetStop() bool {
	resp := e.read([4]byte{OpStop, 0, 0, 0})
	return toBool(resp[1])
}

func (e *ElevIODriver) GetObstruction() bool {
	resp := e.read([4]byte{OpObstruction, 0, 0, 0})
	return toBool(resp[1])
}

func (e *ElevIODriver) write(in [4]byte) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	_, err := e.conn.Write(in[:])
	if err != nil {
		panic("Lost connection to Elevator Server")
	}
}

func (e *ElevIODriver) read(in [4]byte) [4]byte {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	_, err := e.conn.Write(in[:])
	if err != nil {
		panic("Lost connection to Elevator Server")
	}

	var out [4]byte
	_, err = io.ReadFull(e.conn, out[:])
	if err != nil {
		panic("Lost connection to Elevator Server")
	}

	return out
}

func toByte(a bool) byte {
	var b byte = 0
	if a {
		b = 1
	}
	return b
}

func toBool(a byte) bool {
	var b bool = false
	if a != 0 {
		b = true
	}
	return b
}
