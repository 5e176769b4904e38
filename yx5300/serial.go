package yx5300

import (
	"errors"
	"io"
	"sync"
	"time"

	"go.bug.st/serial.v1"
)

var ErrClosedPort = errors.New("serial port is closed")
var ErrReadTimeout = errors.New("serial read timeout")

// DefaultSerialConfig is the only mode the module speaks.
var DefaultSerialConfig = &serial.Mode{
	BaudRate: 9600,
	Parity:   serial.NoParity,
	DataBits: 8,
	StopBits: serial.OneStopBit,
}

// Transport is the link a Player owns for its whole lifetime.
type Transport interface {
	Write(b []byte) (int, error)
	// ReadDeadline returns the next chunk of inbound bytes, or
	// ErrReadTimeout once deadline has passed.
	ReadDeadline(deadline time.Time) ([]byte, error)
	// Discard drops bytes received but not read yet, returning their count.
	Discard() int
	Close() error
}

type SerialConnection struct {
	port io.ReadWriteCloser
	path string

	rdChan    chan []byte
	errChan   chan error
	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewSerial(port io.ReadWriteCloser, name string) *SerialConnection {
	return &SerialConnection{
		port:      port,
		path:      name,
		rdChan:    make(chan []byte, 64),
		errChan:   make(chan error, 1),
		closeChan: make(chan struct{}),
	}
}

// Start begins the routine reading from the serial port, reads are
// then served from its channel so that no caller ever blocks on the port.
func (sc *SerialConnection) Start() {
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		sc.readRoutine()
	}()
}

// ReadDeadline takes one of sc.rdChan or sc.errChan, waiting until deadline,
// it also checks if connection is closed and returns error accordingly.
func (sc *SerialConnection) ReadDeadline(deadline time.Time) (b []byte, err error) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case b = <-sc.rdChan:
	case err = <-sc.errChan:
	case <-sc.closeChan:
		err = ErrClosedPort
	case <-timer.C:
		err = ErrReadTimeout
	}
	return b, err
}

// Discard empties sc.rdChan without blocking.
func (sc *SerialConnection) Discard() (n int) {
	for {
		select {
		case b := <-sc.rdChan:
			n += len(b)
		default:
			return n
		}
	}
}

// Write sends b straight to the port, a closed connection returns ErrClosedPort.
func (sc *SerialConnection) Write(b []byte) (int, error) {
	select {
	case <-sc.closeChan:
		return 0, ErrClosedPort
	default:
	}
	return sc.port.Write(b)
}

// Close notifies the read routine to stop, closes the port
// (unblocking any pending read), then waits for the routine to return.
func (sc *SerialConnection) Close() (err error) {
	sc.closeOnce.Do(func() {
		close(sc.closeChan)
		err = sc.port.Close()
		sc.wg.Wait()
	})
	return err
}

// Path returns device name / path of serial port.
func (sc *SerialConnection) Path() string {
	return sc.path
}

func (sc *SerialConnection) readRoutine() {
	for {
		b := make([]byte, 32)
		i, err := sc.port.Read(b)
		if i > 0 {
			select {
			case sc.rdChan <- b[:i]:
			case <-sc.closeChan:
				return
			}
		}
		if err == nil {
			continue
		}
		select {
		case <-sc.closeChan:
			return
		default:
		}
		select {
		case sc.errChan <- err:
		case <-sc.closeChan:
			return
		}
		if err == io.EOF {
			return
		}
	}
}

// OpenPortName opens serial device name using DefaultSerialConfig if config is nil.
func OpenPortName(name string, config *serial.Mode) (*SerialConnection, error) {
	if config == nil {
		config = DefaultSerialConfig
	}
	port, err := serial.Open(name, config)
	if err != nil {
		return nil, err
	}
	conn := NewSerial(port, name)
	conn.Start()
	return conn, nil
}
