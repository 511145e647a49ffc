package config

import (
	"context"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/widget"
)

// Loader is the interface for a format-specific widget markup loader.
type Loader interface {
	// Load reads every widget definition found under paths.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is everything loaded from widget markup.
type Model struct {
	Widgets []*WidgetDefinition
	// Files lists the markup files the model was built from.
	Files []string
}

// WidgetDefinition is one widget as declared in markup.
type WidgetDefinition struct {
	Name     string
	File     string
	Enabled  bool
	Position widget.Position
	Root     component.Component
}

// Build returns a widget for every enabled definition, in declaration order.
func (m *Model) Build() []*widget.Widget {
	var out []*widget.Widget
	for _, def := range m.Widgets {
		if !def.Enabled {
			continue
		}
		out = append(out, widget.New(def.Name, def.Position, def.Root))
	}
	return out
}
