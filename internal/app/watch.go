package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/tickgrid/internal/ctxlog"
)

// watch requests a reload whenever an .hcl file under the widget paths
// changes. The reload itself runs on the tick loop, before the next tick.
func (a *App) watch(ctx context.Context) (stop func(), err error) {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	dirs, err := watchDirs(a.config.WidgetPaths)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Info("Watching widget files for changes.", "dirs", len(dirs))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != ".hcl" {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					logger.Debug("Widget file changed.", "op", event.Op.String(), "file", event.Name)
					a.requestReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("fsnotify error", "error", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
	}, nil
}

// watchDirs returns every directory to watch for the given paths. A file is
// watched through its parent directory.
func watchDirs(paths []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]struct{})
	add := func(d string) {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			dirs = append(dirs, d)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func (a *App) requestReload() {
	a.reloadMu.Lock()
	a.reload = true
	a.reloadMu.Unlock()
}

// reloadIfRequested reloads the widgets after a file change. A reload that
// fails keeps the widgets that are running.
func (a *App) reloadIfRequested(ctx context.Context) {
	a.reloadMu.Lock()
	requested := a.reload
	a.reload = false
	a.reloadMu.Unlock()
	if !requested {
		return
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Reloading widgets.")
	if err := a.LoadWidgets(ctx); err != nil {
		logger.Error("Reload failed, keeping the current widgets.", "error", err)
	}
}
