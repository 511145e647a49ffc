package component

import (
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
)

// Group renders its children on top of each other at the origin.
type Group struct {
	base
	Children []Component
}

func (g *Group) Setup() []setup.Job { return setupAll(g.Children) }

func (g *Group) Update(env *UpdateEnv) error { return updateAll(g.Children, env) }

func (g *Group) Render(rc *RenderContext) (scene.Node, error) {
	out := scene.NewGroup()
	for _, c := range g.Children {
		n, err := c.Render(rc)
		if err != nil {
			return nil, err
		}
		out.Append(n)
	}
	return out, nil
}
