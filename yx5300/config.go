package yx5300

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rkjdid/util"
	"go.uber.org/zap"
)

type Config struct {
	CommandDelay    util.Duration // Pause before each frame, the module drops frames sent back to back
	ResponseTimeout util.Duration // Maximum wait for a reply to a query
	PowerOnDelay    util.Duration // Settle time before the first command
	ReadyDelay      util.Duration // Settle time after selecting the storage device
	Debug           bool          // Log frames & diagnostics
}

var DefaultConfig = Config{
	CommandDelay:    util.Duration(time.Millisecond * 20),
	ResponseTimeout: util.Duration(time.Second * 3),
	PowerOnDelay:    util.Duration(time.Millisecond * 500),
	ReadyDelay:      util.Duration(time.Millisecond * 200),
}

func NewConfig() *Config {
	cfg := DefaultConfig
	return &cfg
}

// Option tunes a Player beyond its Config.
type Option func(*Player)

// WithLogger sets the sink for driver logs, level filtering
// is still done by the player (see SetDebug).
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.baseLog = l
		}
	}
}

// WithMetrics registers frame & query counters to reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *Player) {
		p.metrics = NewMetrics(reg)
	}
}

// withSleep replaces time.Sleep, tests use it to record delays.
func withSleep(sleep func(time.Duration)) Option {
	return func(p *Player) {
		p.sleep = sleep
	}
}
