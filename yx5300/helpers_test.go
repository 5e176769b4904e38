package yx5300

import (
	"sync"
	"testing"
	"time"

	"github.com/rkjdid/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTransport records written bytes and serves scripted inbound chunks.
type fakeTransport struct {
	mu      sync.Mutex
	written []byte
	closed  bool

	in       chan []byte
	writeErr error
	// onFrame is called each time a full frame has been written.
	onFrame func(f Frame)
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{in: make(chan []byte, 32)}
}

func (ft *fakeTransport) Write(b []byte) (int, error) {
	ft.mu.Lock()
	if ft.writeErr != nil {
		ft.mu.Unlock()
		return 0, ft.writeErr
	}
	ft.written = append(ft.written, b...)
	var f Frame
	full := len(ft.written)%FrameSize == 0
	if full {
		copy(f[:], ft.written[len(ft.written)-FrameSize:])
	}
	onFrame := ft.onFrame
	ft.mu.Unlock()

	if full && onFrame != nil {
		onFrame(f)
	}
	return len(b), nil
}

func (ft *fakeTransport) ReadDeadline(deadline time.Time) ([]byte, error) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case b := <-ft.in:
		return b, nil
	case <-timer.C:
		return nil, ErrReadTimeout
	}
}

func (ft *fakeTransport) Discard() (n int) {
	for {
		select {
		case b := <-ft.in:
			n += len(b)
		default:
			return n
		}
	}
}

func (ft *fakeTransport) Close() error {
	ft.mu.Lock()
	ft.closed = true
	ft.mu.Unlock()
	return nil
}

func (ft *fakeTransport) push(chunks ...[]byte) {
	for _, c := range chunks {
		ft.in <- c
	}
}

// frames returns every frame written so far.
func (ft *fakeTransport) frames() []Frame {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	var fs []Frame
	for i := 0; i+FrameSize <= len(ft.written); i += FrameSize {
		var f Frame
		copy(f[:], ft.written[i:i+FrameSize])
		fs = append(fs, f)
	}
	return fs
}

func (ft *fakeTransport) reset() {
	ft.mu.Lock()
	ft.written = nil
	ft.mu.Unlock()
}

// testConfig keeps the protocol timings short enough for unit tests.
func testConfig() *Config {
	cfg := NewConfig()
	cfg.CommandDelay = 0
	cfg.PowerOnDelay = 0
	cfg.ReadyDelay = 0
	cfg.ResponseTimeout = util.Duration(200 * time.Millisecond)
	return cfg
}

// newTestPlayer returns an initialized player whose init frame was cleared.
func newTestPlayer(t *testing.T, opts ...Option) (*Player, *fakeTransport) {
	t.Helper()
	ft := newFakeTransport()
	p, err := New(ft, testConfig(), append([]Option{WithLogger(zap.NewNop())}, opts...)...)
	require.NoError(t, err)
	ft.reset()
	return p, ft
}

// reply builds a device reply frame to cmd carrying v.
func reply(cmd Command, v uint16) []byte {
	f := NewFrame(cmd, byte(v>>8), byte(v))
	return f[:]
}
