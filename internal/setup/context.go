package setup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/fetch"
	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/registry"
)

// ErrFrozen is returned when a frozen Context is mutated.
var ErrFrozen = errors.New("setup context is frozen")

// Declaration asks a data source for a value that is published to the
// variable environment under Name every tick.
type Declaration struct {
	Name   string
	Source string
	Query  string
	Format data.Format
}

// Binding is a Declaration resolved to a live handle.
type Binding struct {
	Declaration
	Handle registry.Handle
}

// Sources looks data sources up by name. *registry.Registry implements it.
type Sources interface {
	Source(name string) (registry.DataSource, error)
}

// Context is the state that setup jobs read while running and that
// finalizers mutate afterwards.
type Context struct {
	Fonts   *fonts.Registry
	Sources Sources
	Fetcher fetch.Fetcher

	bindings []Binding
	frozen   bool
}

// NewContext returns a mutable context. A nil font registry is replaced by an
// empty one.
func NewContext(fr *fonts.Registry, sources Sources, fetcher fetch.Fetcher) *Context {
	if fr == nil {
		fr = fonts.NewRegistry()
	}
	return &Context{Fonts: fr, Sources: sources, Fetcher: fetcher}
}

// Bind queries the declared source and records the binding.
func (c *Context) Bind(decl Declaration) error {
	if c.frozen {
		return ErrFrozen
	}
	if c.Sources == nil {
		return &registry.UnknownSourceError{Name: decl.Source}
	}
	src, err := c.Sources.Source(decl.Source)
	if err != nil {
		return err
	}
	h, err := src.Query(decl.Query, decl.Format)
	if err != nil {
		return fmt.Errorf("querying %s for %q: %w", decl.Source, decl.Query, err)
	}
	c.bindings = append(c.bindings, Binding{Declaration: decl, Handle: h})
	return nil
}

// LoadFont parses font data into the font registry.
func (c *Context) LoadFont(data []byte) (string, error) {
	if c.frozen {
		return "", ErrFrozen
	}
	return c.Fonts.LoadData(data)
}

// Bindings returns the bindings in the order they were made.
func (c *Context) Bindings() []Binding {
	return slices.Clone(c.bindings)
}

// Release releases the handles of every binding and forgets them. It is
// allowed on a frozen context.
func (c *Context) Release() {
	c.releaseFrom(0)
}

func (c *Context) releaseFrom(i int) {
	for _, b := range c.bindings[i:] {
		registry.Release(b.Handle)
	}
	c.bindings = c.bindings[:i]
}

// Freeze makes the context read-only.
func (c *Context) Freeze() { c.frozen = true }

// Frozen reports whether Freeze was called.
func (c *Context) Frozen() bool { return c.frozen }

// stage returns a copy whose mutations can be committed back with commit.
func (c *Context) stage() *Context {
	return &Context{
		Fonts:    c.Fonts.Clone(),
		Sources:  c.Sources,
		Fetcher:  c.Fetcher,
		bindings: slices.Clone(c.bindings),
	}
}

func (c *Context) commit(staged *Context) {
	c.Fonts.Merge(staged.Fonts)
	c.bindings = staged.bindings
}
