package yx5300

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Player is a session with one YX5300 module. It owns its Transport
// and serializes exchanges on it: a query is never interleaved with
// another command's frame.
type Player struct {
	mu     sync.Mutex
	conn   Transport
	config Config
	state  State

	baseLog *zap.Logger
	log     *zap.Logger
	level   zap.AtomicLevel
	metrics *Metrics
	sleep   func(time.Duration)
}

// New takes ownership of conn, waits for the module to power on,
// selects the TF card as storage device then waits for it to be ready.
// If cfg is nil, DefaultConfig is used.
func New(conn Transport, cfg *Config, opts ...Option) (*Player, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	p := &Player{
		conn:    conn,
		config:  *cfg,
		state:   Connected,
		baseLog: zap.NewNop(),
		level:   zap.NewAtomicLevelAt(zap.InfoLevel),
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = filterLevel(p.baseLog, p.level).Named("yx5300")
	p.SetDebug(cfg.Debug)

	p.sleep(time.Duration(p.config.PowerOnDelay))
	err := p.Send(SelectDevice, 0, DeviceTF)
	if err != nil {
		return p, fmt.Errorf("selecting storage device: %w", err)
	}
	p.sleep(time.Duration(p.config.ReadyDelay))
	p.log.Info("player ready")
	return p, nil
}

// SetDebug toggles frame dumps & diagnostics.
func (p *Player) SetDebug(on bool) {
	if on {
		p.level.SetLevel(zap.DebugLevel)
	} else {
		p.level.SetLevel(zap.InfoLevel)
	}
}

func (p *Player) Debug() bool {
	return p.level.Enabled(zap.DebugLevel)
}

func (p *Player) Config() Config {
	return p.config
}

// State returns the link state observed on the last exchange.
func (p *Player) State() State {
	if p == nil {
		return NilPlayer
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close releases the transport.
func (p *Player) Close() error {
	if p == nil {
		return ErrNilPlayer
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Disconnected
	return p.conn.Close()
}

// Send writes a single command frame.
func (p *Player) Send(cmd Command, p1, p2 byte) error {
	if p == nil {
		return ErrNilPlayer
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.send(cmd, p1, p2)
}

// Query sends cmd then waits for the device to echo it back with a value.
// Bytes buffered before the call are dropped, replies to other commands
// are discarded, and no value is returned if the reply doesn't come
// within ResponseTimeout (err is then a *TimeoutError).
func (p *Player) Query(cmd Command) (uint16, error) {
	if p == nil {
		return 0, ErrNilPlayer
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := p.conn.Discard(); n > 0 {
		p.log.Debug("dropped stale bytes", zap.Int("count", n))
	}

	err := p.send(cmd, 0, 0)
	if err != nil {
		p.metrics.query(cmd, "error", 0, 0)
		return 0, err
	}

	t0 := time.Now()
	deadline := t0.Add(time.Duration(p.config.ResponseTimeout))
	scan := newReplyScanner(cmd)
	for {
		chunk, err := p.conn.ReadDeadline(deadline)
		if err == ErrReadTimeout {
			p.state = NoReply
			p.log.Debug("no reply", zap.Stringer("cmd", cmd),
				zap.Binary("pending", scan.Awaiting()), zap.Int("discarded", scan.Discarded))
			p.metrics.query(cmd, "timeout", scan.Discarded, 0)
			return 0, &TimeoutError{Command: cmd, Elapsed: time.Since(t0)}
		}
		if err != nil {
			p.state = ReadError
			p.metrics.query(cmd, "error", scan.Discarded, 0)
			return 0, fmt.Errorf("reading %s reply: %w", cmd, err)
		}
		for _, b := range chunk {
			discarded := scan.Discarded
			v, ok := scan.Feed(b)
			if scan.Discarded > discarded {
				p.log.Debug("discarded reply to another command", zap.Stringer("awaiting", cmd))
			}
			if ok {
				p.state = Connected
				p.log.Debug("reply", zap.Stringer("cmd", cmd), zap.Uint16("value", v))
				p.metrics.query(cmd, "ok", scan.Discarded, time.Since(t0).Seconds())
				return v, nil
			}
		}
		if time.Now().After(deadline) {
			// the link is chatty enough that the timer never fires
			p.state = NoReply
			p.metrics.query(cmd, "timeout", scan.Discarded, 0)
			return 0, &TimeoutError{Command: cmd, Elapsed: time.Since(t0)}
		}
	}
}

func (p *Player) send(cmd Command, p1, p2 byte) error {
	p.sleep(time.Duration(p.config.CommandDelay))

	f := NewFrame(cmd, p1, p2)
	p.log.Debug("send", zap.Stringer("cmd", cmd), zap.Stringer("frame", f))
	for i := range f {
		_, err := p.conn.Write(f[i : i+1])
		if err != nil {
			p.state = WriteError
			return fmt.Errorf("writing %s frame: %w", cmd, err)
		}
	}
	p.metrics.frameSent(cmd)
	return nil
}
