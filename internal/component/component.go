package component

import (
	"sync"

	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
)

// Component is a node of the widget tree. The set of implementations is
// closed to this package.
type Component interface {
	// Setup returns the jobs that provision the subtree, in traversal order.
	Setup() []setup.Job
	// Update feeds the subtree the variables of the current tick.
	Update(env *UpdateEnv) error
	// Render produces the scene for the subtree.
	Render(rc *RenderContext) (scene.Node, error)

	component()
}

// base provides the default behavior: no jobs, no update, empty scene.
type base struct{}

func (base) Setup() []setup.Job { return nil }

func (base) Update(*UpdateEnv) error { return nil }

func (base) Render(*RenderContext) (scene.Node, error) { return scene.NewGroup(), nil }

func (base) component() {}

// empty stands in for a missing optional child.
type empty struct{ base }

// orEmpty returns c, or a component that renders nothing when c is nil.
func orEmpty(c Component) Component {
	if c == nil {
		return empty{}
	}
	return c
}

// setupAll collects the jobs of children. Each child's Setup runs on its own
// goroutine; the result keeps child order.
func setupAll(children []Component) []setup.Job {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0].Setup()
	}

	parts := make([][]setup.Job, len(children))
	var wg sync.WaitGroup
	for i, c := range children {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parts[i] = c.Setup()
		}()
	}
	wg.Wait()

	var jobs []setup.Job
	for _, p := range parts {
		jobs = append(jobs, p...)
	}
	return jobs
}

func updateAll(children []Component, env *UpdateEnv) error {
	for _, c := range children {
		if err := c.Update(env); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits c and its descendants in traversal order. Both branches of an
// If are visited.
func Walk(c Component, fn func(Component)) {
	if c == nil {
		return
	}
	fn(c)
	switch c := c.(type) {
	case *HBox:
		for _, ch := range c.Children {
			Walk(ch, fn)
		}
	case *VBox:
		for _, ch := range c.Children {
			Walk(ch, fn)
		}
	case *Group:
		for _, ch := range c.Children {
			Walk(ch, fn)
		}
	case *If:
		Walk(c.Then, fn)
		Walk(c.Else, fn)
	case *Overlap:
		Walk(c.Child, fn)
	}
}
