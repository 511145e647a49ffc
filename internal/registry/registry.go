package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/suggest"
)

// Module is the interface that all data source modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Handle reads the current value of one query against a source.
type Handle interface {
	Value() data.Data
}

// HandleFunc adapts a function to Handle.
type HandleFunc func() data.Data

func (f HandleFunc) Value() data.Data { return f() }

// Releaser is implemented by handles that keep per-query state in their
// source. Release drops that state; the handle must not be read afterwards.
type Releaser interface {
	Release()
}

// Release releases h if it holds source state.
func Release(h Handle) {
	if r, ok := h.(Releaser); ok {
		r.Release()
	}
}

// DataSource produces values for queries. Query is called once per binding
// while setup results are merged, and the binding owner releases the handle
// with Release when the binding is discarded. Update is called once per tick
// before any handle is read.
type DataSource interface {
	Query(query string, format data.Format) (Handle, error)
	Update(ctx context.Context) error
}

// UnknownSourceError is returned when a name does not match any registered
// source.
type UnknownSourceError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownSourceError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown data source %q", e.Name)
	}
	return fmt.Sprintf("unknown data source %q, did you mean %q?", e.Name, strings.Join(e.Suggestions, `" or "`))
}

// Registry holds the data sources for a single application instance. It is
// populated at startup and read-only afterwards.
type Registry struct {
	sources map[string]DataSource
	order   []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{sources: make(map[string]DataSource)}
}

// RegisterSource adds a named data source. Registering a name twice is a
// programming error and panics.
func (r *Registry) RegisterSource(name string, src DataSource) {
	if _, exists := r.sources[name]; exists {
		panic(fmt.Sprintf("data source with name '%s' already registered", name))
	}
	if src == nil {
		panic(fmt.Sprintf("data source '%s' is nil", name))
	}
	slog.Debug("Registering data source.", "name", name)
	r.sources[name] = src
	r.order = append(r.order, name)
}

// Source looks up a source by name.
func (r *Registry) Source(name string) (DataSource, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, &UnknownSourceError{Name: name, Suggestions: suggest.Closest(name, r.Names())}
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Each calls fn for every source in registration order and stops at the
// first error.
func (r *Registry) Each(fn func(name string, src DataSource) error) error {
	for _, name := range r.order {
		if err := fn(name, r.sources[name]); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every source that holds resources.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.order {
		if c, ok := r.sources[name].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing data source %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
