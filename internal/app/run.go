package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/ctxlog"
	"github.com/vk/tickgrid/internal/scene"
)

// Run executes the main application logic: load and set up widgets, then
// tick until the configured number of ticks ran or ctx is cancelled. A tick
// that fails keeps the previous frame. A tick that overruns the interval is
// followed immediately by the next one; frames are never skipped.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()

	if err := a.LoadWidgets(ctx); err != nil {
		return err
	}

	if a.config.Watch {
		stop, err := a.watch(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	a.logger.Info("🚀 Starting tick loop.", "interval", a.interval, "ticks", a.config.Ticks)
	for tick := 1; a.config.Ticks == 0 || tick <= a.config.Ticks; tick++ {
		start := time.Now()
		a.reloadIfRequested(ctx)
		if err := a.Tick(ctx); err != nil {
			a.status.failed.Add(1)
			a.logger.Warn("Tick failed, keeping the previous frame.", "tick", tick, "error", err)
		}
		if tick == a.config.Ticks {
			break
		}

		elapsed := time.Since(start)
		wait := a.interval - elapsed
		if wait <= 0 {
			a.logger.Warn("Tick overran the refresh interval.", "tick", tick, "elapsed", elapsed, "interval", a.interval)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		select {
		case <-ctx.Done():
			a.logger.Debug("Tick loop cancelled.")
			return nil
		case <-time.After(wait):
		}
	}

	a.logger.Info("🏁 Tick loop finished.")
	return nil
}

// Tick refreshes every data source once, updates and renders each widget,
// and writes the composed frame. Any error aborts the tick before the frame
// is replaced.
func (a *App) Tick(ctx context.Context) error {
	if err := a.resolver.Refresh(ctx); err != nil {
		return err
	}

	width, height := float64(a.config.Width), float64(a.config.Height)
	placements := make([]scene.Placement, 0, len(a.widgets))
	for _, w := range a.widgets {
		env, err := a.resolver.Environment(w.Bindings())
		if err != nil {
			return fmt.Errorf("widget %s: %w", w.Name, err)
		}
		if err := w.Update(&component.UpdateEnv{Vars: env}); err != nil {
			return fmt.Errorf("updating widget %s: %w", w.Name, err)
		}

		vw, vh := w.Viewport(width, height)
		node, err := w.Render(&component.RenderContext{
			ViewportWidth:  vw,
			ViewportHeight: vh,
			Style:          a.style,
			Fonts:          a.fonts,
			Vars:           env,
		})
		if err != nil {
			return fmt.Errorf("rendering widget %s: %w", w.Name, err)
		}
		placements = append(placements, w.Placement(node, width, height))
	}

	var buf bytes.Buffer
	if err := scene.EncodePNG(&buf, a.config.Width, a.config.Height, a.background, a.fonts, placements...); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := a.writeFrame(buf.Bytes()); err != nil {
		return err
	}
	a.frame = buf.Bytes()
	a.status.frameWritten(time.Now())
	return nil
}

// writeFrame replaces the output file atomically so readers never see a
// partial frame.
func (a *App) writeFrame(png []byte) error {
	if a.config.OutPath == "" {
		return nil
	}
	dir := filepath.Dir(a.config.OutPath)
	tmp, err := os.CreateTemp(dir, ".frame-*.png")
	if err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing frame: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.config.OutPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
