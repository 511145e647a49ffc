// Package http_client is a polling data source: each queried URL is fetched
// once per tick and fields of its JSON body are exposed as values.
//
// A query is a URL with an optional fragment holding a dot-separated path
// into the body, such as "http://localhost:8080/stats#cpu.load". Without a
// fragment the whole body is the value, so a plain text endpoint reads as a
// string.
package http_client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
)

// Name is the source name used in fetch_data blocks.
const Name = "http"

// maxConcurrentRequests bounds the fetches issued by one Update.
const maxConcurrentRequests = 4

// Module implements the registry.Module interface for this package.
type Module struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Register registers the http data source.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource(Name, NewSource(NewClient(m.Timeout), m.Logger))
}

// NewClient returns the shared client used for every endpoint.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Source polls the endpoints named by its queries. A failed request makes
// that endpoint's values Unknown until a later request succeeds; it does not
// fail the tick.
type Source struct {
	client *http.Client
	logger *slog.Logger

	mu        sync.RWMutex
	endpoints map[string]*endpoint
}

type endpoint struct {
	url  string
	refs int
	body any
}

// handle reads one path of an endpoint body. Releasing the last handle of an
// endpoint stops its requests.
type handle struct {
	src      *Source
	ep       *endpoint
	path     []string
	released atomic.Bool
}

func (h *handle) Value() data.Data {
	h.src.mu.RLock()
	defer h.src.mu.RUnlock()
	if h.ep.body == nil {
		return data.Unknown()
	}
	return data.JSONPath(h.ep.body, h.path)
}

func (h *handle) Release() {
	if h.released.Swap(true) {
		return
	}
	h.src.mu.Lock()
	defer h.src.mu.Unlock()
	h.ep.refs--
	if h.ep.refs == 0 {
		delete(h.src.endpoints, h.ep.url)
		h.src.logger.Debug("Endpoint released.", "url", h.ep.url)
	}
}

// NewSource returns a source issuing requests through client.
func NewSource(client *http.Client, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		client:    client,
		logger:    logger.With("source", Name),
		endpoints: make(map[string]*endpoint),
	}
}

func (s *Source) Query(query string, _ data.Format) (registry.Handle, error) {
	u, err := url.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid http query %q: %w", query, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid http query %q: scheme must be http or https", query)
	}
	path, err := data.ParsePath(u.Fragment)
	if err != nil {
		return nil, fmt.Errorf("invalid http query %q: %w", query, err)
	}
	u.Fragment = ""
	target := u.String()

	s.mu.Lock()
	ep, ok := s.endpoints[target]
	if !ok {
		ep = &endpoint{url: target}
		s.endpoints[target] = ep
	}
	ep.refs++
	s.mu.Unlock()

	return &handle{src: s, ep: ep, path: path}, nil
}

// Update fetches every endpoint that still has a handle.
func (s *Source) Update(ctx context.Context) error {
	s.mu.RLock()
	targets := make([]*endpoint, 0, len(s.endpoints))
	for _, ep := range s.endpoints {
		targets = append(targets, ep)
	}
	s.mu.RUnlock()
	sort.Slice(targets, func(i, j int) bool { return targets[i].url < targets[j].url })

	bodies := make([]any, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, ep := range targets {
		g.Go(func() error {
			body, err := s.get(gctx, ep.url)
			if err != nil {
				s.logger.Warn("Request failed.", "url", ep.url, "error", err)
				return nil
			}
			bodies[i] = body
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	for i, ep := range targets {
		ep.body = bodies[i]
	}
	s.mu.Unlock()
	return nil
}

// Endpoints returns the URLs requested on each Update, sorted.
func (s *Source) Endpoints() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.endpoints))
	for u := range s.endpoints {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

func (s *Source) get(ctx context.Context, target string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	s.logger.Debug("Received response.", "url", target, "bytes", len(raw))
	return data.DecodeJSON(raw), nil
}

// Close releases idle connections.
func (s *Source) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
