package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/tickgrid/internal/setup"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	WidgetPaths  []string // hcl files or directories
	SettingsPath string   // optional settings file
	OutPath      string   // frame destination; empty renders without writing

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Workers     int // setup job limit, 0 is unlimited
	SetupPolicy setup.Policy
	CachePath   string // bbolt fetch cache, empty disables it

	Ticks    int           // 0 runs until the context is cancelled
	Interval time.Duration // overrides general.refresh_interval when positive
	Width    int
	Height   int
	Watch    bool
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.WidgetPaths) == 0 {
		return nil, errors.New("at least one widget path is required")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Ticks < 0 {
		return nil, fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return &cfg, nil
}
