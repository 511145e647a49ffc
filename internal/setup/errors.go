package setup

import (
	"errors"
	"fmt"
)

// ErrorKind classifies setup failures.
type ErrorKind int

const (
	JobFailed ErrorKind = iota
	UnknownSource
	UnsupportedScheme
	Network
	FontParse
	IO
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownSource:
		return "unknown data source"
	case UnsupportedScheme:
		return "unsupported url scheme"
	case Network:
		return "network"
	case FontParse:
		return "font parse"
	case IO:
		return "io"
	default:
		return "job failed"
	}
}

// Error is the error returned by Scheduler.Run. Label is the label of the
// stage or finalizer that failed.
type Error struct {
	Kind  ErrorKind
	Label string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("setup failed: %s", e.Label)
	}
	return fmt.Sprintf("setup failed: %s: %v", e.Label, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, label, format string, args ...any) *Error {
	return &Error{Kind: kind, Label: label, Err: fmt.Errorf(format, args...)}
}

// asError returns err as an *Error, wrapping it as JobFailed under label if
// it is not one already.
func asError(label string, err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: JobFailed, Label: label, Err: err}
}
