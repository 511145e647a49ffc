package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/units"
)

// EnvPrefix prefixes environment overrides, e.g. TICKGRID_GENERAL_FONT_FAMILY.
const EnvPrefix = "TICKGRID"

// Settings holds application settings.
type Settings struct {
	General GeneralSettings `mapstructure:"general"`
	Fonts   FontSettings    `mapstructure:"fonts"`
	Sources SourceSettings  `mapstructure:"sources"`
}

// GeneralSettings holds the defaults used while rendering.
type GeneralSettings struct {
	ForegroundColor string        `mapstructure:"foreground_color"`
	BackgroundColor string        `mapstructure:"background_color"`
	FontFamily      string        `mapstructure:"font_family"`
	FontWeight      string        `mapstructure:"font_weight"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// FontSettings lists font files loaded before widget setup.
type FontSettings struct {
	Files []string `mapstructure:"files"`
}

// SourceSettings configures data source modules.
type SourceSettings struct {
	SocketIO SocketIOSettings `mapstructure:"socketio"`
	HTTP     HTTPSettings     `mapstructure:"http"`
}

// HTTPSettings configures the polling JSON data source.
type HTTPSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// SocketIOSettings configures the push data source. An empty URL disables it.
type SocketIOSettings struct {
	URL       string `mapstructure:"url"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
	Event     string `mapstructure:"event"`
	Insecure  bool   `mapstructure:"insecure"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.foreground_color", "white")
	v.SetDefault("general.background_color", "black")
	v.SetDefault("general.font_family", "Go")
	v.SetDefault("general.font_weight", "")
	v.SetDefault("general.refresh_interval", time.Second)
	v.SetDefault("fonts.files", []string{})
	v.SetDefault("sources.socketio.url", "")
	v.SetDefault("sources.socketio.path", "/socket.io/")
	v.SetDefault("sources.socketio.namespace", "/")
	v.SetDefault("sources.socketio.event", "metrics")
	v.SetDefault("sources.socketio.insecure", false)
	v.SetDefault("sources.http.timeout", 5*time.Second)
}

// LoadSettings reads settings from path, if not empty, and from the
// environment. The file format follows its extension (toml, yaml, json).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if s.General.RefreshInterval <= 0 {
		return nil, fmt.Errorf("general.refresh_interval must be positive, got %s", s.General.RefreshInterval)
	}
	return &s, nil
}

// Style converts the general settings into render defaults.
func (s *Settings) Style() (component.Style, error) {
	fg, err := units.ParseColor(s.General.ForegroundColor)
	if err != nil {
		return component.Style{}, fmt.Errorf("general.foreground_color: %w", err)
	}
	return component.Style{
		Foreground: fg,
		FontFamily: s.General.FontFamily,
		FontWeight: s.General.FontWeight,
	}, nil
}

// Background parses the frame background color.
func (s *Settings) Background() (units.Color, error) {
	c, err := units.ParseColor(s.General.BackgroundColor)
	if err != nil {
		return units.Color{}, fmt.Errorf("general.background_color: %w", err)
	}
	return c, nil
}
