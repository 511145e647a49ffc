package app

import (
	"context"
	"fmt"

	"github.com/vk/tickgrid/internal/ctxlog"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/widget"
)

// LoadWidgets loads the widget markup and sets every enabled widget up. The
// current widgets are replaced only when every widget was set up.
func (a *App) LoadWidgets(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading widgets...", "paths", a.config.WidgetPaths)

	model, err := a.loader.Load(ctx, a.config.WidgetPaths...)
	if err != nil {
		return fmt.Errorf("failed to load widgets: %w", err)
	}

	widgets := model.Build()
	if len(widgets) == 0 {
		logger.Warn("No enabled widgets found.", "files", len(model.Files))
	}
	if err := a.setupWidgets(ctx, widgets); err != nil {
		return err
	}

	for _, w := range a.widgets {
		w.Release()
	}
	a.widgets = widgets
	a.files = model.Files
	a.status.widgets.Store(int32(len(widgets)))
	logger.Info("Widgets loaded successfully.", "widgets", len(widgets), "files", len(model.Files))
	return nil
}

// setupWidgets runs the setup jobs of each widget against its own context.
// The font registry is shared, so fonts imported by one widget are visible to
// all. When a widget fails, the bindings of every widget in the batch are
// released.
func (a *App) setupWidgets(ctx context.Context, widgets []*widget.Widget) error {
	contexts := make([]*setup.Context, 0, len(widgets))
	for _, w := range widgets {
		c := setup.NewContext(a.fonts, a.registry, a.fetcher)
		contexts = append(contexts, c)
		if err := w.Setup(ctx, a.scheduler, c); err != nil {
			for _, c := range contexts {
				c.Release()
			}
			return err
		}
		c.Freeze()
	}
	return nil
}
