package fonts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"

	"github.com/vk/tickgrid/internal/suggest"
)

// DefaultWeight is used when a font does not name its weight and when a
// requested weight is not available.
const DefaultWeight = "regular"

// Provider is the font capability required by text components and by font
// import jobs.
type Provider interface {
	LoadData(data []byte) (string, error)
	LoadFile(path string) (string, error)
	Resolve(family string, size float64) (*Face, error)
}

// UnknownFamilyError is returned when no loaded font matches a family.
type UnknownFamilyError struct {
	Family      string
	Suggestions []string
}

func (e *UnknownFamilyError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown font family %q", e.Family)
	}
	return fmt.Sprintf("unknown font family %q, did you mean %s?", e.Family, quoteJoin(e.Suggestions))
}

type family struct {
	name    string
	weights map[string]*text.FontSource
	first   string
}

// Registry is a concurrency-safe set of font families. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*family
}

var _ Provider = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[string]*family)}
}

// LoadData parses a TrueType/OpenType font and adds it to the registry. It
// returns the family name the font was registered under.
func (r *Registry) LoadData(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("font data is empty")
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return "", fmt.Errorf("parsing font: %w", err)
	}
	return r.add(src), nil
}

// LoadFile reads and registers the font at path.
func (r *Registry) LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading font file: %w", err)
	}
	name, err := r.LoadData(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return name, nil
}

func (r *Registry) add(src *text.FontSource) string {
	name := src.Name()
	weight := weightOf(name, src.Parsed().FullName())

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	fam, ok := r.families[key]
	if !ok {
		fam = &family{name: name, weights: make(map[string]*text.FontSource), first: weight}
		r.families[key] = fam
	}
	fam.weights[weight] = src
	return name
}

// weightOf derives the weight from the full font name, e.g. "Go Bold" in
// family "Go" is "bold".
func weightOf(family, fullName string) string {
	w := strings.TrimSpace(strings.TrimPrefix(fullName, family))
	if w == "" {
		return DefaultWeight
	}
	return strings.ToLower(w)
}

// Resolve returns family at its default weight.
func (r *Registry) Resolve(family string, size float64) (*Face, error) {
	return r.ResolveWeight(family, DefaultWeight, size)
}

// ResolveWeight returns family at the given weight, falling back to the
// default weight and then to the first weight loaded for the family. Family
// names are matched case-insensitively.
func (r *Registry) ResolveWeight(family, weight string, size float64) (*Face, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fam, ok := r.families[strings.ToLower(family)]
	if !ok {
		return nil, &UnknownFamilyError{Family: family, Suggestions: suggest.Closest(family, r.namesLocked())}
	}
	w := strings.ToLower(weight)
	src, ok := fam.weights[w]
	if !ok {
		w = DefaultWeight
		src, ok = fam.weights[w]
	}
	if !ok {
		w = fam.first
		src = fam.weights[w]
	}
	return &Face{Family: fam.name, Weight: w, Size: size, face: src.Face(size)}, nil
}

// TextFace resolves a face for the scene rasterizer.
func (r *Registry) TextFace(family, weight string, size float64) (text.Face, bool) {
	f, err := r.ResolveWeight(family, weight, size)
	if err != nil {
		return nil, false
	}
	return f.face, true
}

// Has reports whether family is loaded.
func (r *Registry) Has(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.families[strings.ToLower(family)]
	return ok
}

// Families returns the loaded family names in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.families))
	for _, f := range r.families {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a registry holding the same fonts. Font sources are shared;
// only the family index is copied.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewRegistry()
	for k, f := range r.families {
		nf := &family{name: f.name, weights: make(map[string]*text.FontSource, len(f.weights)), first: f.first}
		for w, src := range f.weights {
			nf.weights[w] = src
		}
		c.families[k] = nf
	}
	return c
}

// Merge adds every font of other to r. Weights already present in r are
// replaced.
func (r *Registry) Merge(other *Registry) {
	if other == r {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, f := range other.families {
		fam, ok := r.families[k]
		if !ok {
			fam = &family{name: f.name, weights: make(map[string]*text.FontSource, len(f.weights)), first: f.first}
			r.families[k] = fam
		}
		for w, src := range f.weights {
			fam.weights[w] = src
		}
	}
}

func quoteJoin(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, " or ")
}
