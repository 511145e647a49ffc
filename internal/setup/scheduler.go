package setup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vk/tickgrid/internal/ctxlog"
)

// Policy decides which finalizers are applied when a job fails.
type Policy int

const (
	// PartialApply applies the finalizers of the jobs that precede the first
	// failed job, then reports the failure.
	PartialApply Policy = iota
	// AllOrNothing applies finalizers only when every job completed, and
	// commits their combined effect only when every finalizer succeeded.
	AllOrNothing
)

func (p Policy) String() string {
	if p == AllOrNothing {
		return "all-or-nothing"
	}
	return "partial"
}

// ParsePolicy parses "partial" or "all-or-nothing".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "partial":
		return PartialApply, nil
	case "all-or-nothing", "atomic":
		return AllOrNothing, nil
	}
	return 0, fmt.Errorf("unknown setup policy %q (want partial or all-or-nothing)", s)
}

// Event is reported to the scheduler observer for every stage a job yields.
type Event struct {
	JobID string
	Job   string
	Stage Stage
}

// Scheduler runs setup jobs.
type Scheduler struct {
	// Workers limits how many jobs run at once. Zero means no limit, so no job
	// ever waits for a sibling.
	Workers  int
	Policy   Policy
	Observer func(Event)
}

type outcome struct {
	label     string
	finalizer Finalizer
	err       *Error
}

// Run drives jobs to their terminal stage and then applies the finalizers to
// c in job order, according to the scheduler policy. The first failure in job
// order is returned.
func (s *Scheduler) Run(ctx context.Context, c *Context, jobs []Job) error {
	if c.Frozen() {
		return ErrFrozen
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Setup started.", "jobs", len(jobs), "policy", s.Policy.String())

	results := make([]outcome, len(jobs))
	var g errgroup.Group
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = s.drive(ctx, c, job)
			return nil
		})
	}
	_ = g.Wait()

	failed := len(results)
	for i, r := range results {
		if r.err != nil {
			failed = i
			break
		}
	}

	switch {
	case s.Policy == AllOrNothing && failed < len(results):
		logger.Warn("Setup job failed, discarding all finalizers.", "job", results[failed].label)
		return results[failed].err
	case s.Policy == AllOrNothing:
		staged := c.stage()
		if err := apply(ctx, staged, results); err != nil {
			staged.releaseFrom(len(c.bindings))
			return err
		}
		c.commit(staged)
		logger.Debug("Setup finished.", "applied", len(results))
		return nil
	}

	if err := apply(ctx, c, results[:failed]); err != nil {
		return err
	}
	if failed < len(results) {
		logger.Warn("Setup job failed.", "job", results[failed].label, "applied", failed)
		return results[failed].err
	}
	logger.Debug("Setup finished.", "applied", len(results))
	return nil
}

func apply(ctx context.Context, c *Context, results []outcome) error {
	logger := ctxlog.FromContext(ctx)
	for _, r := range results {
		if r.finalizer == nil {
			continue
		}
		if err := r.finalizer(c); err != nil {
			logger.Error("Setup finalizer failed.", "job", r.label, "error", err)
			return asError(r.label, err)
		}
	}
	return nil
}

// drive consumes one job's stages on the calling goroutine.
func (s *Scheduler) drive(ctx context.Context, c *Context, job Job) (out outcome) {
	id := uuid.NewString()
	ctx, logger := ctxlog.With(ctx, "job_id", id, "job", job.Label)
	out.label = job.Label

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Setup job panicked.", "panic", r)
			out = outcome{label: job.Label, err: &Error{Kind: JobFailed, Label: job.Label, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	if job.Run == nil {
		logger.Warn("Setup job has no body, treating it as completed.")
		return out
	}

	for stage := range job.Run(ctx, c) {
		if s.Observer != nil {
			s.Observer(Event{JobID: id, Job: job.Label, Stage: stage})
		}
		switch stage.Kind {
		case StageProgress:
			logger.Debug("Setup job progress.", "stage", stage.Label, "fraction", stage.Fraction)
			continue
		case StageCompleted:
			logger.Debug("Setup job completed.", "stage", stage.Label)
			out.finalizer = stage.Finalizer
			if stage.Label != "" {
				out.label = stage.Label
			}
		case StageFailed:
			logger.Warn("Setup job failed.", "stage", stage.Label, slog.Any("error", stage.Err))
			label := stage.Label
			if label == "" {
				label = job.Label
			}
			out.label = label
			if stage.Err == nil {
				out.err = &Error{Kind: JobFailed, Label: label}
			} else {
				out.err = asError(label, stage.Err)
			}
		}
		return out
	}

	logger.Warn("Setup job ended without a terminal stage, treating it as completed.")
	return out
}
