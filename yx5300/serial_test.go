package yx5300

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipePort stands for a serial.Port: reads come from a pipe fed by
// the test, writes are recorded and may trigger a device reply.
type pipePort struct {
	r  *io.PipeReader
	dw *io.PipeWriter // device side

	mu      sync.Mutex
	written bytes.Buffer
	onFrame func(f Frame)
}

func newPipePort() *pipePort {
	r, w := io.Pipe()
	return &pipePort{r: r, dw: w}
}

func (pp *pipePort) Read(b []byte) (int, error) {
	return pp.r.Read(b)
}

func (pp *pipePort) Write(b []byte) (int, error) {
	pp.mu.Lock()
	pp.written.Write(b)
	var f Frame
	full := pp.written.Len()%FrameSize == 0
	if full {
		copy(f[:], pp.written.Bytes()[pp.written.Len()-FrameSize:])
	}
	pp.mu.Unlock()
	if full && pp.onFrame != nil {
		pp.onFrame(f)
	}
	return len(b), nil
}

func (pp *pipePort) Close() error {
	return pp.r.Close()
}

func TestSerialConnection_ReadDeadline(t *testing.T) {
	pp := newPipePort()
	sc := NewSerial(pp, "/dev/fake")
	sc.Start()
	defer sc.Close()

	go pp.dw.Write([]byte{1, 2, 3})
	b, err := sc.ReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	t0 := time.Now()
	_, err = sc.ReadDeadline(t0.Add(50 * time.Millisecond))
	assert.Equal(t, ErrReadTimeout, err)
	assert.GreaterOrEqual(t, time.Since(t0), 50*time.Millisecond)
	assert.Equal(t, "/dev/fake", sc.Path())
}

func TestSerialConnection_Discard(t *testing.T) {
	pp := newPipePort()
	sc := NewSerial(pp, "/dev/fake")
	sc.Start()
	defer sc.Close()

	_, err := pp.dw.Write([]byte{0xaa, 0xbb})
	require.NoError(t, err)
	// pipe writes return once the read routine got the bytes, give it
	// a moment to hand them over to the channel
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, sc.Discard())
	assert.Equal(t, 0, sc.Discard())
}

func TestSerialConnection_Close(t *testing.T) {
	pp := newPipePort()
	sc := NewSerial(pp, "/dev/fake")
	sc.Start()

	require.NoError(t, sc.Close())
	require.NoError(t, sc.Close())

	_, err := sc.Write([]byte{0})
	assert.Equal(t, ErrClosedPort, err)
	_, err = sc.ReadDeadline(time.Now().Add(time.Second))
	assert.Equal(t, ErrClosedPort, err)
}

func TestSerialConnection_ReadError(t *testing.T) {
	pp := newPipePort()
	sc := NewSerial(pp, "/dev/fake")
	sc.Start()
	defer sc.Close()

	pp.dw.CloseWithError(io.ErrUnexpectedEOF)
	_, err := sc.ReadDeadline(time.Now().Add(time.Second))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestPlayer_OverSerial(t *testing.T) {
	pp := newPipePort()
	pp.onFrame = func(f Frame) {
		if f.Command() == QueryTrackCount {
			go pp.dw.Write([]byte{0x7e, 0xff, 0x06, 0x48, 0x00, 0x00, 0x11, 0xef})
		}
	}
	sc := NewSerial(pp, "/dev/fake")
	sc.Start()

	p, err := New(sc, testConfig())
	require.NoError(t, err)
	defer p.Close()

	n, err := p.TrackCount()
	require.NoError(t, err)
	assert.Equal(t, uint16(17), n)

	pp.mu.Lock()
	defer pp.mu.Unlock()
	assert.Equal(t, []byte{
		0x7e, 0xff, 0x06, 0x09, 0x00, 0x00, 0x02, 0xef,
		0x7e, 0xff, 0x06, 0x48, 0x00, 0x00, 0x00, 0xef,
	}, pp.written.Bytes())
}

func TestDefaultSerialConfig(t *testing.T) {
	assert.Equal(t, 9600, DefaultSerialConfig.BaudRate)
	assert.Equal(t, 8, DefaultSerialConfig.DataBits)
}
