package socketio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
)

// publish makes the latest payload visible without connecting.
func publish(s *Source) {
	s.mu.Lock()
	s.snapshot = s.latest
	s.mu.Unlock()
}

func TestSource_Lookup(t *testing.T) {
	src := NewSource(Options{URL: "http://localhost:1"})

	load, err := src.Query("cpu.load", data.FormatFloat)
	require.NoError(t, err)
	host, err := src.Query("host", data.FormatString)
	require.NoError(t, err)
	missing, err := src.Query("cpu.temp", data.FormatFloat)
	require.NoError(t, err)
	through, err := src.Query("host.name", data.FormatString)
	require.NoError(t, err)

	assert.True(t, load.Value().IsUnknown(), "no payload yet")

	src.receive(map[string]any{"cpu": map[string]any{"load": 0.75}, "host": "box"})
	assert.True(t, load.Value().IsUnknown(), "payload is published on update only")

	publish(src)
	assert.Equal(t, data.Float64(0.75), load.Value())
	assert.Equal(t, data.String("box"), host.Value())
	assert.True(t, missing.Value().IsUnknown())
	assert.True(t, through.Value().IsUnknown())
}

func TestSource_ReceiveJSONText(t *testing.T) {
	src := NewSource(Options{URL: "http://localhost:1"})
	up, err := src.Query("up", data.FormatBool)
	require.NoError(t, err)

	src.receive(`{"up": true}`)
	publish(src)
	assert.Equal(t, data.Bool(true), up.Value())

	src.receive("not json")
	src.receive([]any{1, 2})
	publish(src)
	assert.Equal(t, data.Bool(true), up.Value(), "non-object payloads are dropped")
}

func TestQuery_Invalid(t *testing.T) {
	src := NewSource(Options{URL: "http://localhost:1"})
	for _, q := range []string{"", "a..b", ".a"} {
		_, err := src.Query(q, data.FormatString)
		assert.Error(t, err, q)
	}
}

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	assert.Empty(t, r.Names(), "disabled without a URL")

	r = registry.New()
	(&Module{Options: Options{URL: "http://localhost:1"}}).Register(r)
	assert.Equal(t, []string{Name}, r.Names())
	require.NoError(t, r.Close())
}
