package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vk/tickgrid/internal/ctxlog"
)

// staleTicks is how many refresh intervals may pass without a new frame
// before the health check reports the loop as stale.
const staleTicks = 3

// tickStatus is written by the tick loop and read by the health handler.
type tickStatus struct {
	widgets   atomic.Int32
	frames    atomic.Int64
	failed    atomic.Int64
	lastFrame atomic.Int64
}

func (s *tickStatus) frameWritten(at time.Time) {
	s.frames.Add(1)
	s.lastFrame.Store(at.UnixNano())
}

// Health is the body served by the health check endpoint.
type Health struct {
	Status      string    `json:"status"`
	Widgets     int       `json:"widgets"`
	Frames      int64     `json:"frames"`
	FailedTicks int64     `json:"failed_ticks"`
	LastFrame   time.Time `json:"last_frame,omitzero"`
}

// Health reports the state of the tick loop at now. The status is "starting"
// until the first frame, "stale" once no frame was written for a few
// refresh intervals, and "ok" otherwise.
func (a *App) Health(now time.Time) Health {
	h := Health{
		Status:      "ok",
		Widgets:     int(a.status.widgets.Load()),
		Frames:      a.status.frames.Load(),
		FailedTicks: a.status.failed.Load(),
	}
	if h.Frames == 0 {
		h.Status = "starting"
		return h
	}
	h.LastFrame = time.Unix(0, a.status.lastFrame.Load())
	if now.Sub(h.LastFrame) > staleTicks*a.interval {
		h.Status = "stale"
	}
	return h
}

// healthHandler serves Health as JSON. Only "ok" answers 200.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

	h := a.Health(time.Now())
	w.Header().Set("Content-Type", "application/json")
	if h.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(h); err != nil {
		logger.Warn("Failed to write health response.", "error", err)
	}
}

// healthCheckServer starts the health check HTTP server when a port is set.
func (a *App) healthCheckServer() {
	logger := ctxlog.FromContext(a.ctx)
	if a.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer() error {
	if a.httpServer == nil {
		return nil
	}
	logger := ctxlog.FromContext(a.ctx)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
