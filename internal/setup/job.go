package setup

import (
	"context"
	"iter"
)

// StageKind distinguishes progress reports from terminal stages.
type StageKind int

const (
	StageProgress StageKind = iota
	StageCompleted
	StageFailed
)

func (k StageKind) String() string {
	switch k {
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	default:
		return "progress"
	}
}

// Finalizer applies one mutation to the setup context.
type Finalizer func(*Context) error

// Stage is one step reported by a running job.
type Stage struct {
	Kind      StageKind
	Label     string
	Fraction  float64
	Finalizer Finalizer
	// Err is the cause of a failed stage. It may be nil.
	Err error
}

// Terminal reports whether the stage ends its job.
func (s Stage) Terminal() bool { return s.Kind != StageProgress }

// Progress reports advancement of a job. Fraction is clamped to [0, 1].
func Progress(label string, fraction float64) Stage {
	return Stage{Kind: StageProgress, Label: label, Fraction: min(max(fraction, 0), 1)}
}

// Completed ends a job successfully. fin may be nil.
func Completed(label string, fin Finalizer) Stage {
	return Stage{Kind: StageCompleted, Label: label, Finalizer: fin}
}

// Failed ends a job unsuccessfully.
func Failed(label string, err error) Stage {
	return Stage{Kind: StageFailed, Label: label, Err: err}
}

// Job is a unit of setup work. Run must only read c; mutations belong in the
// finalizer of the Completed stage.
type Job struct {
	Label string
	Run   func(ctx context.Context, c *Context) iter.Seq[Stage]
}

// Once returns a job with a single terminal stage: Failed when fn returns an
// error, Completed with the returned finalizer otherwise.
func Once(label string, fn func(ctx context.Context, c *Context) (Finalizer, error)) Job {
	return Job{
		Label: label,
		Run: func(ctx context.Context, c *Context) iter.Seq[Stage] {
			return func(yield func(Stage) bool) {
				fin, err := fn(ctx, c)
				if err != nil {
					yield(Failed(label, err))
					return
				}
				yield(Completed(label, fin))
			}
		},
	}
}

// Finalize returns a job that completes immediately with fin.
func Finalize(label string, fin Finalizer) Job {
	return Once(label, func(context.Context, *Context) (Finalizer, error) { return fin, nil })
}
