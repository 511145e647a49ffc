package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/config"
	"github.com/vk/tickgrid/internal/ctxlog"
	"github.com/vk/tickgrid/internal/fetch"
	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/resolver"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/units"
	"github.com/vk/tickgrid/internal/widget"
)

// fetchTimeout bounds a single remote font download.
const fetchTimeout = 30 * time.Second

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	settings *config.Settings
	loader   config.Loader

	registry   *registry.Registry
	fonts      *fonts.Registry
	fetcher    fetch.Fetcher
	cache      *fetch.Cache
	resolver   *resolver.Resolver
	scheduler  *setup.Scheduler
	style      component.Style
	background units.Color
	interval   time.Duration

	widgets []*widget.Widget
	files   []string
	frame   []byte

	reloadMu sync.Mutex
	reload   bool

	status     tickStatus
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Widgets are loaded and set up by Run.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings, err := config.LoadSettings(appConfig.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	style, err := settings.Style()
	if err != nil {
		return nil, err
	}
	background, err := settings.Background()
	if err != nil {
		return nil, err
	}
	logger.Debug("Settings loaded.", "path", appConfig.SettingsPath, "font_family", style.FontFamily)

	fr := fonts.NewRegistry()
	for _, ttf := range [][]byte{goregular.TTF, gobold.TTF} {
		if _, err := fr.LoadData(ttf); err != nil {
			return nil, fmt.Errorf("failed to load built-in font: %w", err)
		}
	}
	for _, path := range settings.Fonts.Files {
		family, err := fr.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
		logger.Debug("Font loaded.", "path", path, "family", family)
	}

	a := &App{
		outW:       outW,
		logger:     logger,
		ctx:        ctx,
		config:     appConfig,
		settings:   settings,
		loader:     loader,
		fonts:      fr,
		style:      style,
		background: background,
		interval:   settings.General.RefreshInterval,
	}
	if appConfig.Interval > 0 {
		a.interval = appConfig.Interval
	}

	var fetcher fetch.Fetcher = fetch.NewHTTPFetcher(fetchTimeout)
	if appConfig.CachePath != "" {
		cache, err := fetch.OpenCache(appConfig.CachePath, fetcher)
		if err != nil {
			return nil, fmt.Errorf("failed to open fetch cache: %w", err)
		}
		a.cache = cache
		fetcher = cache
		logger.Debug("Fetch cache opened.", "path", appConfig.CachePath)
	}
	a.fetcher = fetcher

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(settings, logger)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All data source modules registered.", "count", len(modules), "sources", reg.Names())
	a.registry = reg
	a.resolver = resolver.New(reg)

	a.scheduler = &setup.Scheduler{
		Workers: appConfig.Workers,
		Policy:  appConfig.SetupPolicy,
		Observer: func(ev setup.Event) {
			if ev.Stage.Kind == setup.StageProgress {
				logger.Info("Setup progress.", "job", ev.Job, "step", ev.Stage.Label, "fraction", ev.Stage.Fraction)
			}
		},
	}

	return a, nil
}

// Registry returns the application's data source registry. This is
// primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Widgets returns the widgets that are currently set up.
func (a *App) Widgets() []*widget.Widget {
	return a.widgets
}

// Frame returns the last successfully rendered frame as PNG bytes.
func (a *App) Frame() []byte {
	return a.frame
}

// Close releases data sources, the fetch cache and the health check server.
func (a *App) Close() error {
	var errs []error
	if err := a.closeHealthCheckServer(); err != nil {
		errs = append(errs, err)
	}
	if err := a.registry.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing fetch cache: %w", err))
		}
	}
	return errors.Join(errs...)
}
