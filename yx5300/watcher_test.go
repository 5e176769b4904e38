package yx5300

import (
	"testing"
	"time"

	"github.com/rkjdid/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answer makes ft reply to every query with values[cmd].
func answer(ft *fakeTransport, values map[Command]uint16) {
	ft.onFrame = func(f Frame) {
		if v, ok := values[f.Command()]; ok {
			ft.push(reply(f.Command(), v))
		}
	}
}

func TestPlayer_Snapshot(t *testing.T) {
	p, ft := newTestPlayer(t)
	answer(ft, map[Command]uint16{
		QueryState:        uint16(Playing),
		QueryVolume:       18,
		QueryCurrentTrack: 4,
	})
	sn := p.Snapshot()
	assert.Equal(t, Connected, sn.State)
	assert.Equal(t, Playing, sn.Device)
	assert.Equal(t, 18, sn.Volume)
	assert.Equal(t, 4, sn.Track)
	assert.Empty(t, sn.Error)
}

func TestPlayer_SnapshotNoReply(t *testing.T) {
	p, ft := newTestPlayer(t)
	answer(ft, map[Command]uint16{QueryState: uint16(Paused)})
	sn := p.Snapshot()
	assert.Equal(t, NoReply, sn.State)
	assert.Equal(t, Paused, sn.Device)
	assert.Contains(t, sn.Error, "QueryVolume")
}

func TestWatcher(t *testing.T) {
	p, ft := newTestPlayer(t)
	answer(ft, map[Command]uint16{
		QueryState:        uint16(Stopped),
		QueryVolume:       30,
		QueryCurrentTrack: 1,
	})
	w := NewWatcher(p, &WatcherConfig{PollRate: util.Duration(10 * time.Millisecond)}, nil)
	w.Watch()
	defer w.Stop()

	require.Eventually(t, func() bool {
		return w.Last().Volume == 30
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, Connected, w.Last().State)

	w.Stop()
	w.Stop()
}
