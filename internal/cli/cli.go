package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/setup"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// isTerminal reports whether log output goes to a terminal. It picks the
// default log format.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// pathList collects a repeatable path flag. Commas separate several paths in
// one value.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*p = append(*p, s)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tickgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tickgrid - Declarative status widgets rendered from live data.

Usage:
  tickgrid [options] [WIDGET_PATH...]

Arguments:
  WIDGET_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaultFormat := "json"
	if isTerminal() {
		defaultFormat = "text"
	}

	var widgets pathList
	flagSet.Var(&widgets, "widgets", "Path to a widget file or directory. Repeatable.")
	flagSet.Var(&widgets, "w", "Path to a widget file or directory (shorthand).")
	settingsFlag := flagSet.String("settings", "", "Path to a settings file (toml, yaml or json).")
	outFlag := flagSet.String("out", "frame.png", "Where each rendered frame is written as PNG. Empty disables writing.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaultFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Maximum number of setup jobs running at once. 0 is unlimited.")
	policyFlag := flagSet.String("setup-policy", "partial", "What a failed setup keeps. Options: 'partial' or 'all-or-nothing'.")
	cacheFlag := flagSet.String("cache", "", "Path to the on-disk cache for fetched fonts. Empty disables it.")
	ticksFlag := flagSet.Int("ticks", 0, "Number of frames to render before exiting. 0 runs until interrupted.")
	intervalFlag := flagSet.Duration("interval", 0, "Time between ticks. Overrides general.refresh_interval.")
	widthFlag := flagSet.Int("width", 1920, "Frame width in pixels.")
	heightFlag := flagSet.Int("height", 32, "Frame height in pixels.")
	watchFlag := flagSet.Bool("watch", false, "Reload widgets when their files change.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), widgets...)
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Widget paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No widget path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "warning", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	policy, err := setup.ParsePolicy(*policyFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if *intervalFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid interval: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		WidgetPaths:     paths,
		SettingsPath:    *settingsFlag,
		OutPath:         *outFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		Workers:         *workersFlag,
		SetupPolicy:     policy,
		CachePath:       *cacheFlag,
		Ticks:           *ticksFlag,
		Interval:        *intervalFlag,
		Width:           *widthFlag,
		Height:          *heightFlag,
		Watch:           *watchFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
