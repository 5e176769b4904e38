package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/solar3s/goyx5300/web"
	"github.com/solar3s/goyx5300/yx5300"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// sinkTransport swallows frames, the module never replies.
type sinkTransport struct{}

func (sinkTransport) Write(b []byte) (int, error) { return len(b), nil }

func (sinkTransport) ReadDeadline(time.Time) ([]byte, error) { return nil, yx5300.ErrReadTimeout }

func (sinkTransport) Discard() int { return 0 }

func (sinkTransport) Close() error { return nil }

func TestNewLoggers_PlayerDebug(t *testing.T) {
	var buf bytes.Buffer
	sink, app := newLoggers(web.DefaultLogConfig, false, zapcore.AddSync(&buf))

	p, err := yx5300.New(sinkTransport{}, &yx5300.Config{}, yx5300.WithLogger(sink))
	require.NoError(t, err)

	require.NoError(t, p.SetVolume(42))
	assert.NotContains(t, buf.String(), "volume above max")

	p.SetDebug(true)
	require.NoError(t, p.SetVolume(42))
	assert.Contains(t, buf.String(), "volume above max")
	assert.Contains(t, buf.String(), "7E FF 06 06 00 00 1E EF")

	p.SetDebug(false)
	buf.Reset()
	require.NoError(t, p.SetVolume(-1))
	assert.NotContains(t, buf.String(), "volume below min")

	app.Debug("not shown at info")
	app.Info("shown at info")
	assert.NotContains(t, buf.String(), "not shown at info")
	assert.Contains(t, buf.String(), "shown at info")
}

func TestNewLoggers_Verbose(t *testing.T) {
	var buf bytes.Buffer
	_, app := newLoggers(web.DefaultLogConfig, true, zapcore.AddSync(&buf))
	app.Debug("verbose debug")
	assert.Contains(t, buf.String(), "verbose debug")
}
