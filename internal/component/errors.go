package component

import (
	"fmt"
	"strings"
)

// RenderErrorKind classifies render failures.
type RenderErrorKind int

const (
	UnknownFont RenderErrorKind = iota
	UnboundVariable
)

// RenderError aborts the render of the current tick.
type RenderError struct {
	Kind        RenderErrorKind
	Name        string
	Suggestions []string
	Err         error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case UnknownFont:
		fmt.Fprintf(&b, "failed to find font %q", e.Name)
	case UnboundVariable:
		fmt.Fprintf(&b, "there is no variable named %q", e.Name)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, ", did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *RenderError) Unwrap() error { return e.Err }
