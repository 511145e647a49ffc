package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/units"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "white", s.General.ForegroundColor)
	assert.Equal(t, "black", s.General.BackgroundColor)
	assert.Equal(t, "Go", s.General.FontFamily)
	assert.Equal(t, time.Second, s.General.RefreshInterval)
	assert.Empty(t, s.Sources.SocketIO.URL)
	assert.Equal(t, "metrics", s.Sources.SocketIO.Event)
	assert.Equal(t, 5*time.Second, s.Sources.HTTP.Timeout)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
[general]
foreground_color = "#ff8800"
font_family = "Inter"
font_weight = "bold"
refresh_interval = "250ms"

[fonts]
files = ["/usr/share/fonts/inter.ttf"]

[sources.socketio]
url = "http://localhost:3000"
event = "stats"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "#ff8800", s.General.ForegroundColor)
	assert.Equal(t, "Inter", s.General.FontFamily)
	assert.Equal(t, 250*time.Millisecond, s.General.RefreshInterval)
	assert.Equal(t, []string{"/usr/share/fonts/inter.ttf"}, s.Fonts.Files)
	assert.Equal(t, "http://localhost:3000", s.Sources.SocketIO.URL)
	assert.Equal(t, "stats", s.Sources.SocketIO.Event)
	assert.Equal(t, "/", s.Sources.SocketIO.Namespace, "unset keys keep defaults")

	style, err := s.Style()
	require.NoError(t, err)
	assert.Equal(t, units.MustParseColor("#ff8800"), style.Foreground)
	assert.Equal(t, "bold", style.FontWeight)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("TICKGRID_GENERAL_FONT_FAMILY", "Mono")
	t.Setenv("TICKGRID_GENERAL_REFRESH_INTERVAL", "2s")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "Mono", s.General.FontFamily)
	assert.Equal(t, 2*time.Second, s.General.RefreshInterval)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("non positive interval", func(t *testing.T) {
		t.Setenv("TICKGRID_GENERAL_REFRESH_INTERVAL", "0s")
		_, err := LoadSettings("")
		assert.Error(t, err)
	})

	t.Run("bad color", func(t *testing.T) {
		s := &Settings{General: GeneralSettings{ForegroundColor: "#12", BackgroundColor: "mauve-ish"}}
		_, err := s.Style()
		assert.Error(t, err)
		_, err = s.Background()
		assert.Error(t, err)
	})
}
