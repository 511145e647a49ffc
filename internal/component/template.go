package component

import (
	"strings"

	"github.com/vk/tickgrid/internal/data"
)

// Variable is a reference to a variable inside text content, formatted with
// its own settings.
type Variable struct {
	Name string
	data.Formatter
}

// NewVariable returns a reference with the default formatting: two decimal
// places and no scaling.
func NewVariable(name string, format data.Format) *Variable {
	return &Variable{Name: name, Formatter: data.Formatter{Format: format, Precision: 2, DivideBy: 1}}
}

// Fragment is one piece of text content: a literal, or a variable when Var
// is set.
type Fragment struct {
	Literal string
	Var     *Variable
}

// Lit returns a literal fragment.
func Lit(s string) Fragment { return Fragment{Literal: s} }

// Ref returns a variable fragment.
func Ref(v *Variable) Fragment { return Fragment{Var: v} }

// Format renders the fragment. An unbound variable renders as "".
func (f Fragment) Format(vars data.Environment) string {
	if f.Var == nil {
		return f.Literal
	}
	v, ok := vars.Lookup(f.Var.Name)
	if !ok {
		return ""
	}
	s, _ := f.Var.Formatter.Format(v, data.Lenient)
	return s
}

// Interpolate concatenates the rendered fragments.
func Interpolate(fragments []Fragment, vars data.Environment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Format(vars))
	}
	return b.String()
}
