// Package clock exposes the wall clock as a data source.
//
// Queries are either one of the named fields (unix, unix_ms, year, month,
// day, weekday, hour, minute, second) or a Go time layout such as
// "15:04:05", which yields the formatted time as a string.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
)

// Name is the source name used in fetch_data blocks.
const Name = "clock"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the clock data source.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource(Name, NewSource(time.Now))
}

var fields = map[string]func(time.Time) data.Data{
	"unix":    func(t time.Time) data.Data { return data.Int64(t.Unix()) },
	"unix_ms": func(t time.Time) data.Data { return data.Int64(t.UnixMilli()) },
	"year":    func(t time.Time) data.Data { return data.Int64(int64(t.Year())) },
	"month":   func(t time.Time) data.Data { return data.Int64(int64(t.Month())) },
	"day":     func(t time.Time) data.Data { return data.Int64(int64(t.Day())) },
	"weekday": func(t time.Time) data.Data { return data.String(t.Weekday().String()) },
	"hour":    func(t time.Time) data.Data { return data.Int64(int64(t.Hour())) },
	"minute":  func(t time.Time) data.Data { return data.Int64(int64(t.Minute())) },
	"second":  func(t time.Time) data.Data { return data.Int64(int64(t.Second())) },
}

// Source reads the clock once per Update so all bindings of a tick agree.
type Source struct {
	now func() time.Time

	mu  sync.RWMutex
	at  time.Time
	set bool
}

// NewSource returns a source reading time from now.
func NewSource(now func() time.Time) *Source {
	return &Source{now: now}
}

func (s *Source) Query(query string, _ data.Format) (registry.Handle, error) {
	field, ok := fields[query]
	if !ok {
		layout := query
		if layout == "" {
			layout = time.RFC3339
		}
		field = func(t time.Time) data.Data { return data.String(t.Format(layout)) }
	}
	return registry.HandleFunc(func() data.Data {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.set {
			return data.Unknown()
		}
		return field(s.at)
	}), nil
}

func (s *Source) Update(context.Context) error {
	now := s.now()
	s.mu.Lock()
	s.at, s.set = now, true
	s.mu.Unlock()
	return nil
}
