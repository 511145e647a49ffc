// Package socketio is a push data source: it subscribes to one socket.io
// event and exposes fields of the latest payload.
//
// A query is a dot-separated path into the payload object, such as
// "cpu.load". Values that are missing, or that are not a string, number or
// bool, read as Unknown.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Name is the source name used in fetch_data blocks.
const Name = "socketio"

// Options configures the connection.
type Options struct {
	URL                string
	Path               string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	Logger             *slog.Logger
}

// Module implements the registry.Module interface for this package. Nothing
// is registered when URL is empty.
type Module struct {
	Options Options
}

// Register registers the socketio data source.
func (m *Module) Register(r *registry.Registry) {
	if m.Options.URL == "" {
		return
	}
	r.RegisterSource(Name, NewSource(m.Options))
}

// Source keeps the latest payload received on the configured event. Update
// publishes it to handles, so a payload arriving mid-tick is seen next tick.
type Source struct {
	opts   Options
	logger *slog.Logger

	connect sync.Once
	client  *socket.Socket

	mu       sync.Mutex
	latest   map[string]any
	snapshot map[string]any
}

// NewSource returns a source for opts. The connection is opened on the first
// Update.
func NewSource(opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Event == "" {
		opts.Event = "metrics"
	}
	return &Source{opts: opts, logger: logger.With("source", Name, "url", opts.URL, "event", opts.Event)}
}

func (s *Source) Query(query string, _ data.Format) (registry.Handle, error) {
	path, err := data.ParsePath(query)
	if err != nil || len(path) == 0 {
		return nil, fmt.Errorf("invalid socketio query %q", query)
	}
	return registry.HandleFunc(func() data.Data {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.snapshot == nil {
			return data.Unknown()
		}
		return data.JSONPath(s.snapshot, path)
	}), nil
}

func (s *Source) Update(context.Context) error {
	var err error
	s.connect.Do(func() { err = s.dial() })
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = s.latest
	s.mu.Unlock()
	return nil
}

// Close disconnects the client, if connected.
func (s *Source) Close() error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client != nil {
		s.logger.Debug("Disconnecting socket client")
		client.Disconnect()
	}
	return nil
}

func (s *Source) dial() error {
	parsedURL, err := url.Parse(s.opts.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	path := s.opts.Path
	if path == "" {
		path = parsedURL.Path
	}
	if path != "" {
		opts.SetPath(path)
	}
	if s.opts.InsecureSkipVerify {
		s.logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.opts.Namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		s.logger.Info("Successfully connected", "namespace", s.opts.Namespace, "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		s.logger.Warn("Connection error", "error", errs)
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		s.logger.Info("Disconnected", "reason", reason)
	})
	io.On(types.EventName(s.opts.Event), func(payload ...any) {
		if len(payload) == 0 {
			return
		}
		s.receive(payload[0])
	})

	s.logger.Debug("Initiating connection...")
	io.Connect()

	s.mu.Lock()
	s.client = io
	s.mu.Unlock()
	return nil
}

// receive stores a payload. Payloads that are not objects are dropped.
func (s *Source) receive(payload any) {
	obj, ok := normalize(payload).(map[string]any)
	if !ok {
		s.logger.Debug("Ignoring non-object payload", "type", fmt.Sprintf("%T", payload))
		return
	}
	s.mu.Lock()
	s.latest = obj
	s.mu.Unlock()
}

// normalize turns raw JSON text into a decoded value.
func normalize(v any) any {
	switch x := v.(type) {
	case string:
		return data.DecodeJSON([]byte(x))
	case []byte:
		return data.DecodeJSON(x)
	}
	return v
}
