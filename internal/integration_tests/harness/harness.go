// Package harness runs the whole application against widget files written
// to a temporary directory.
package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/app"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/hcl"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/testutil"
)

// Result holds the outcomes of an integration test run.
type Result struct {
	LogOutput string
	Err       error
	App       *app.App
	FramePath string
}

// Run writes files, applies defaults to cfg and runs the app until its ticks
// are done. Unset fields default to a 200x40 frame, one tick and a 1ms
// interval. With no modules the built-in data sources are registered.
func Run(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *Result {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	cfg.WidgetPaths = append(cfg.WidgetPaths, dir)
	if cfg.OutPath == "" {
		cfg.OutPath = filepath.Join(t.TempDir(), "frame.png")
	}
	if cfg.Width == 0 {
		cfg.Width = 200
	}
	if cfg.Height == 0 {
		cfg.Height = 40
	}
	if cfg.Ticks == 0 {
		cfg.Ticks = 1
	}
	if cfg.Interval == 0 {
		cfg.Interval = time.Millisecond
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	a, err := app.NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	if err != nil {
		return &Result{LogOutput: logBuffer.String(), Err: err}
	}
	t.Cleanup(func() {
		require.NoError(t, a.Close())
		if os.Getenv("TICKGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	runErr := a.Run(context.Background())
	return &Result{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       a,
		FramePath: appConfig.OutPath,
	}
}

// Static is a data source answering each query with a fixed value.
type Static map[string]data.Data

func (s Static) Query(query string, _ data.Format) (registry.Handle, error) {
	v, ok := s[query]
	if !ok {
		return nil, fmt.Errorf("no value for query %q", query)
	}
	return registry.HandleFunc(func() data.Data { return v }), nil
}

func (s Static) Update(context.Context) error { return nil }

// Module registers a single data source under Name.
type Module struct {
	Name   string
	Source registry.DataSource
}

func (m Module) Register(r *registry.Registry) { r.RegisterSource(m.Name, m.Source) }
