// Package goruntime exposes statistics of the running Go process as a data
// source.
package goruntime

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/suggest"
)

// Name is the source name used in fetch_data blocks.
const Name = "goruntime"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the goruntime data source.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource(Name, NewSource())
}

// Stats is one sample of the runtime.
type Stats struct {
	Goroutines int
	CPUs       int
	Mem        runtime.MemStats
	Uptime     time.Duration
}

var metrics = map[string]func(*Stats) data.Data{
	"goroutines":     func(s *Stats) data.Data { return data.Int64(int64(s.Goroutines)) },
	"cpus":           func(s *Stats) data.Data { return data.Int64(int64(s.CPUs)) },
	"heap_alloc":     func(s *Stats) data.Data { return data.Int64(int64(s.Mem.HeapAlloc)) },
	"heap_sys":       func(s *Stats) data.Data { return data.Int64(int64(s.Mem.HeapSys)) },
	"heap_objects":   func(s *Stats) data.Data { return data.Int64(int64(s.Mem.HeapObjects)) },
	"total_alloc":    func(s *Stats) data.Data { return data.Int64(int64(s.Mem.TotalAlloc)) },
	"sys":            func(s *Stats) data.Data { return data.Int64(int64(s.Mem.Sys)) },
	"num_gc":         func(s *Stats) data.Data { return data.Int64(int64(s.Mem.NumGC)) },
	"gc_pause_total": func(s *Stats) data.Data { return data.Float64(time.Duration(s.Mem.PauseTotalNs).Seconds()) },
	"uptime":         func(s *Stats) data.Data { return data.Float64(s.Uptime.Seconds()) },
}

// Queries returns the supported query names in sorted order.
func Queries() []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source samples the runtime once per Update. Handles read the latest
// sample, so every binding sees the same one within a tick.
type Source struct {
	read  func(*Stats)
	start time.Time

	mu      sync.RWMutex
	current *Stats
}

// NewSource returns a source sampling the current process.
func NewSource() *Source {
	start := time.Now()
	return newSource(func(s *Stats) {
		s.Goroutines = runtime.NumGoroutine()
		s.CPUs = runtime.NumCPU()
		runtime.ReadMemStats(&s.Mem)
		s.Uptime = time.Since(start)
	})
}

func newSource(read func(*Stats)) *Source {
	return &Source{read: read}
}

func (s *Source) Query(query string, _ data.Format) (registry.Handle, error) {
	metric, ok := metrics[query]
	if !ok {
		if near := suggest.Closest(query, Queries()); len(near) > 0 {
			return nil, fmt.Errorf("unknown goruntime query %q, did you mean %q?", query, near[0])
		}
		return nil, fmt.Errorf("unknown goruntime query %q", query)
	}
	return registry.HandleFunc(func() data.Data {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.current == nil {
			return data.Unknown()
		}
		return metric(s.current)
	}), nil
}

func (s *Source) Update(context.Context) error {
	stats := new(Stats)
	s.read(stats)

	s.mu.Lock()
	s.current = stats
	s.mu.Unlock()
	return nil
}
