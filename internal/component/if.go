package component

import (
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
)

// Expr is a condition operand: either a variable reference or a literal.
type Expr struct {
	Variable string
	Literal  data.Data
}

// Var returns an expression reading the named variable.
func Var(name string) Expr { return Expr{Variable: name} }

// Literal returns a constant expression.
func Literal(d data.Data) Expr { return Expr{Literal: d} }

// Eval evaluates e against vars. A variable that is not bound is an error.
func (e Expr) Eval(vars data.Environment) (data.Data, error) {
	if e.Variable == "" {
		return e.Literal, nil
	}
	v, ok := vars.Lookup(e.Variable)
	if !ok {
		return data.Unknown(), &RenderError{Kind: UnboundVariable, Name: e.Variable}
	}
	return v, nil
}

// If renders Then when Cond is true and Else otherwise. Both branches are set
// up and updated regardless of the condition. A nil branch renders an empty
// group.
type If struct {
	base
	Cond Expr
	Then Component
	Else Component
}

func (c *If) Setup() []setup.Job {
	return append(orEmpty(c.Then).Setup(), orEmpty(c.Else).Setup()...)
}

func (c *If) Update(env *UpdateEnv) error {
	if err := orEmpty(c.Then).Update(env); err != nil {
		return err
	}
	return orEmpty(c.Else).Update(env)
}

func (c *If) Render(rc *RenderContext) (scene.Node, error) {
	v, err := c.Cond.Eval(rc.Vars)
	if err != nil {
		return nil, err
	}
	if cond, _ := v.AsBool(data.Lenient); cond {
		return orEmpty(c.Then).Render(rc)
	}
	return orEmpty(c.Else).Render(rc)
}
