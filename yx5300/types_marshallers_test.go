package yx5300

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesMarshallers(t *testing.T) {
	b, err := json.Marshal(Connected)
	require.NoError(t, err)
	assert.Equal(t, `"Connected"`, string(b))

	b, err = json.Marshal(Paused)
	require.NoError(t, err)
	assert.Equal(t, `"Paused"`, string(b))

	b, err = json.Marshal(Snapshot{State: NoReply, Device: Playing, Volume: 20})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"State":"NoReply"`)
	assert.Contains(t, string(b), `"Device":"Playing"`)
	assert.NotContains(t, string(b), `"Error"`)
}

func TestUnmarshallers(t *testing.T) {
	var s State
	require.NoError(t, json.Unmarshal([]byte(`"WriteError"`), &s))
	assert.Equal(t, WriteError, s)
	require.NoError(t, json.Unmarshal([]byte(`"3"`), &s))
	assert.Equal(t, ReadError, s)
	assert.Error(t, json.Unmarshal([]byte(`"Connectd"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`1`), &s))

	var ds DeviceState
	require.NoError(t, json.Unmarshal([]byte(`"Stopped"`), &ds))
	assert.Equal(t, Stopped, ds)
	require.NoError(t, ds.UnmarshalText([]byte("Playing")))
	assert.Equal(t, Playing, ds)
	assert.Error(t, ds.UnmarshalText([]byte("Rewinding")))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "NilPlayer", NilPlayer.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.Equal(t, "DeviceState(7)", DeviceState(7).String())
}
