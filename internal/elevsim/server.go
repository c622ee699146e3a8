package elevsim

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevio"
	"github.com/libp2p/go-reuseport"
)

// Server answers the elevator driver protocol against a Cabin. Several
// drivers may be connected at once, they all see the same cabin.
type Server struct {
	cabin    *Cabin
	listener net.Listener

	mtx   sync.Mutex
	conns map[net.Conn]struct{}
}

func NewServer(addr string, cabin *Cabin) (*Server, error) {
	listener, err := reuseport.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	Log.Info().Msgf("Simulator listening on %s", listener.Addr().String())

	return &Server{
		cabin:    cabin,
		listener: listener,
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Start(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(2)

	go func() {
		defer waitGroup.Done()
		<-ctx.Done()
		Log.Warn().Msgf("Simulator server has been signaled to stop")
		s.Close()
	}()

	go func() {
		defer waitGroup.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
					Log.Error().Msgf("Accept failed %v", err)
				}
				return
			}
			if !s.track(conn) {
				conn.Close()
				return
			}
			Log.Info().Msgf("Driver connected from %s", conn.RemoteAddr().String())

			waitGroup.Add(1)
			go func() {
				defer waitGroup.Done()
				s.handle(conn)
			}()
		}
	}()
}

// Close stops accepting drivers and drops the connected ones.
func (s *Server) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	err := s.listener.Close()
	for conn := range s.conns {
		conn.Close()
	}
	s.conns = nil
	return err
}

func (s *Server) track(conn net.Conn) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.conns != nil {
		delete(s.conns, conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.untrack(conn)
	defer conn.Close()

	var frame [4]byte
	for {
		if _, err := io.ReadFull(conn, frame[:]); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				Log.Warn().Msgf("Driver connection lost %v", err)
			}
			return
		}

		reply, ok := s.Handle(frame)
		if !ok {
			continue
		}
		if _, err := conn.Write(reply[:]); err != nil {
			Log.Warn().Msgf("Reply to driver failed %v", err)
			return
		}
	}
}

// Handle applies one frame to the cabin. For read opcodes it returns the
// reply frame and true.
func (s *Server) Handle(frame [4]byte) ([4]byte, bool) {
	cabin := s.cabin
	switch frame[0] {
	case elevio.OpMotorDirection:
		cabin.SetMotorDirection(elevconsts.Dirn(int8(frame[1])))
	case elevio.OpButtonLamp:
		cabin.SetButtonLamp(elevconsts.Button(frame[1]), int(frame[2]), frame[3] != 0)
	case elevio.OpFloorIndicator:
		cabin.SetFloorIndicator(int(frame[1]))
	case elevio.OpDoorLamp:
		cabin.SetDoorOpenLamp(frame[1] != 0)
	case elevio.OpStopLamp:
		cabin.SetStopLamp(frame[1] != 0)
	case elevio.OpButton:
		pressed := cabin.GetButton(elevconsts.Button(frame[1]), int(frame[2]))
		return [4]byte{elevio.OpButton, toByte(pressed), 0, 0}, true
	case elevio.OpFloor:
		floor := cabin.GetFloor()
		if floor == elevconsts.FLOOR_BETWEEN {
			return [4]byte{elevio.OpFloor, 0, 0, 0}, true
		}
		return [4]byte{elevio.OpFloor, 1, byte(floor), 0}, true
	case elevio.OpStop:
		return [4]byte{elevio.OpStop, toByte(cabin.GetStop()), 0, 0}, true
	case elevio.OpObstruction:
		return [4]byte{elevio.OpObstruction, toByte(cabin.GetObstruction()), 0, 0}, true
	default:
		Log.Warn().Msgf("Unknown opcode %d", frame[0])
	}
	return [4]byte{}, false
}

func toByte(a bool) byte {
	if a {
		return 1
	}
	return 0
}
