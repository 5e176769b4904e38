package yx5300

import (
	"sync"
	"time"

	"github.com/rkjdid/util"
	"go.uber.org/zap"
)

// Snapshot is the status of the module at a given time.
type Snapshot struct {
	Time   time.Time
	State  State
	Device DeviceState
	Volume int
	Track  int
	Error  string `json:",omitempty"`
}

type WatcherConfig struct {
	PollRate util.Duration
}

var DefaultWatcherConfig = WatcherConfig{
	PollRate: util.Duration(time.Second * 5),
}

// Watcher polls a Player and keeps its last Snapshot.
type Watcher struct {
	player *Player
	cfg    *WatcherConfig
	log    *zap.Logger

	mu     sync.RWMutex
	last   Snapshot
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewWatcher(player *Player, cfg *WatcherConfig, log *zap.Logger) *Watcher {
	if cfg == nil {
		cfg = &DefaultWatcherConfig
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		player: player,
		cfg:    cfg,
		log:    log.Named("watcher"),
		last:   Snapshot{State: player.State()},
	}
}

// Snapshot queries device state, volume & current track. It stops at the
// first failing query, the error is then held in the returned Snapshot.
func (p *Player) Snapshot() (s Snapshot) {
	s.Time = time.Now()
	s.State = p.State()
	if s.State == NilPlayer {
		return s
	}
	var (
		v   uint16
		err error
	)
	defer func() {
		s.State = p.State()
		if err != nil {
			s.Error = err.Error()
		}
	}()
	if s.Device, err = p.DeviceState(); err != nil {
		return s
	}
	if v, err = p.Volume(); err != nil {
		return s
	}
	s.Volume = int(v)
	if v, err = p.CurrentTrack(); err != nil {
		return s
	}
	s.Track = int(v)
	return s
}

// Last returns the most recent snapshot taken by w.
func (w *Watcher) Last() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

// Watch starts polling, call Stop to end it.
func (w *Watcher) Watch() {
	w.stopCh = make(chan struct{})
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			w.poll()
			select {
			case <-time.After(time.Duration(w.cfg.PollRate)):
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop notifies Watch() to stop, and waits until it returns.
func (w *Watcher) Stop() {
	if w.stopCh == nil {
		return
	}
	w.log.Info("stopping player watcher")
	close(w.stopCh)
	w.wg.Wait()
	w.stopCh = nil
}

func (w *Watcher) poll() {
	sn := w.player.Snapshot()
	prev := w.Last()
	if sn.State != prev.State {
		w.log.Info("link state changed", zap.Stringer("from", prev.State), zap.Stringer("to", sn.State))
	}
	if sn.Error != "" {
		w.log.Debug("partial snapshot", zap.String("error", sn.Error))
	}
	w.mu.Lock()
	w.last = sn
	w.mu.Unlock()
}
