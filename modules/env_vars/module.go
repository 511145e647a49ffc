package env_vars

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
)

// Name is the source name used in fetch_data blocks.
const Name = "env_vars"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the env_vars data source.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource(Name, NewSource(os.Environ))
}

// Source exposes process environment variables. The query is the variable
// name. The environment is re-read on every Update, so a variable that is not
// set reads as Unknown until it appears.
type Source struct {
	environ func() []string

	mu   sync.RWMutex
	vars map[string]string
}

// NewSource returns a source reading variables from environ.
func NewSource(environ func() []string) *Source {
	return &Source{environ: environ, vars: make(map[string]string)}
}

func (s *Source) Query(query string, _ data.Format) (registry.Handle, error) {
	name := strings.TrimSpace(query)
	if name == "" {
		return nil, errors.New("env_vars query must name a variable")
	}
	return registry.HandleFunc(func() data.Data {
		s.mu.RLock()
		defer s.mu.RUnlock()
		v, ok := s.vars[name]
		if !ok {
			return data.Unknown()
		}
		return data.String(v)
	}), nil
}

func (s *Source) Update(context.Context) error {
	vars := make(map[string]string)
	for _, e := range s.environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			vars[pair[0]] = pair[1]
		}
	}

	s.mu.Lock()
	s.vars = vars
	s.mu.Unlock()
	return nil
}
