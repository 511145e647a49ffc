package app

import (
	"log/slog"

	"github.com/vk/tickgrid/internal/config"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/modules/clock"
	"github.com/vk/tickgrid/modules/env_vars"
	"github.com/vk/tickgrid/modules/goruntime"
	"github.com/vk/tickgrid/modules/http_client"
	"github.com/vk/tickgrid/modules/socketio"
)

// coreModules is the definitive list of all data source modules that are
// compiled into the tickgrid binary.
func coreModules(s *config.Settings, logger *slog.Logger) []registry.Module {
	sio := s.Sources.SocketIO
	return []registry.Module{
		&env_vars.Module{},
		&goruntime.Module{},
		&clock.Module{},
		&http_client.Module{Timeout: s.Sources.HTTP.Timeout, Logger: logger},
		&socketio.Module{Options: socketio.Options{
			URL:                sio.URL,
			Path:               sio.Path,
			Namespace:          sio.Namespace,
			Event:              sio.Event,
			InsecureSkipVerify: sio.Insecure,
			Logger:             logger,
		}},
	}
}
