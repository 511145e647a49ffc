package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/data"
)

type stubSource struct {
	closed bool
}

func (s *stubSource) Query(string, data.Format) (Handle, error) {
	return HandleFunc(func() data.Data { return data.Int32(1) }), nil
}

func (s *stubSource) Update(context.Context) error { return nil }

func (s *stubSource) Close() error {
	s.closed = true
	return nil
}

type stubModule struct{ names []string }

func (m stubModule) Register(r *Registry) {
	for _, n := range m.names {
		r.RegisterSource(n, &stubSource{})
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	stubModule{names: []string{"memory", "cpu"}}.Register(r)

	src, err := r.Source("cpu")
	require.NoError(t, err)
	h, err := src.Query("load", data.FormatInt32)
	require.NoError(t, err)
	assert.Equal(t, data.Int32(1), h.Value())

	assert.Equal(t, []string{"cpu", "memory"}, r.Names())

	var order []string
	require.NoError(t, r.Each(func(name string, _ DataSource) error {
		order = append(order, name)
		return nil
	}))
	assert.Equal(t, []string{"memory", "cpu"}, order)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterSource("cpu", &stubSource{})
	assert.Panics(t, func() { r.RegisterSource("cpu", &stubSource{}) })
}

func TestUnknownSourceSuggests(t *testing.T) {
	r := New()
	stubModule{names: []string{"memory", "cpu"}}.Register(r)

	_, err := r.Source("memroy")
	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"memory"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), `did you mean "memory"`)
}

func TestEachStopsOnError(t *testing.T) {
	r := New()
	stubModule{names: []string{"a", "b"}}.Register(r)

	boom := errors.New("boom")
	var visited int
	err := r.Each(func(string, DataSource) error {
		visited++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, visited)
}

func TestCloseClosesSources(t *testing.T) {
	r := New()
	src := &stubSource{}
	r.RegisterSource("a", src)

	require.NoError(t, r.Close())
	assert.True(t, src.closed)
}

type countedHandle struct{ released int }

func (h *countedHandle) Value() data.Data { return data.Unknown() }
func (h *countedHandle) Release() { h.released++ }

func TestRelease(t *testing.T) {
	h := &countedHandle{}
	Release(h)
	assert.Equal(t, 1, h.released)

	// Plain handles have nothing to release.
	assert.NotPanics(t, func() { Release(HandleFunc(data.Unknown)) })
}
