// Package resolver turns data bindings into the variable environment that
// widgets are updated and rendered with.
package resolver

import (
	"context"
	"fmt"

	"github.com/vk/tickgrid/internal/ctxlog"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/setup"
)

// Sources is the set of data sources refreshed every tick.
type Sources interface {
	Each(fn func(name string, src registry.DataSource) error) error
}

// Resolver refreshes data sources and reads bindings.
type Resolver struct {
	sources Sources
}

// New returns a resolver over sources.
func New(sources Sources) *Resolver {
	return &Resolver{sources: sources}
}

// Refresh calls Update on every source exactly once. It must run before
// Environment on each tick.
func (r *Resolver) Refresh(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	return r.sources.Each(func(name string, src registry.DataSource) error {
		if err := src.Update(ctx); err != nil {
			logger.Debug("Data source update failed.", "source", name, "error", err)
			return fmt.Errorf("updating data source %s: %w", name, err)
		}
		return nil
	})
}

// Environment builds a fresh variable environment from bindings. Each value
// is converted strictly to its declared format; Unknown values are kept so
// that consumers can apply their own leniency. A later binding with the same
// name replaces an earlier one.
func (r *Resolver) Environment(bindings []setup.Binding) (data.Environment, error) {
	env := make(data.Environment, len(bindings))
	for _, b := range bindings {
		v, err := b.Handle.Value().Convert(b.Format, data.Strict)
		if err != nil {
			return nil, fmt.Errorf("variable %s from %s: %w", b.Name, b.Source, err)
		}
		env[b.Name] = v
	}
	return env, nil
}

// Resolve refreshes every source and builds the environment for bindings.
func (r *Resolver) Resolve(ctx context.Context, bindings []setup.Binding) (data.Environment, error) {
	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}
	return r.Environment(bindings)
}
