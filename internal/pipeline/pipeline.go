package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/webdetect/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the job
// as left by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// A failing step returns an *Error so the caller can classify it.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It holds no per-request state and may be shared between goroutines
// once all steps have been added.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence and stops at the first failure.
// Context cancellation is checked before each step and is reported as
// KindRemote.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return &Error{Kind: KindRemote, Step: step.Name(), Err: ctx.Err()}
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"ref", job.Ref,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"ref", job.Ref,
				"error", err,
			)

			// Steps should return *Error; anything else is treated as remote.
			var pe *Error
			if !errors.As(err, &pe) {
				err = &Error{Kind: KindRemote, Step: step.Name(), Err: err}
			}
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"ref", job.Ref,
		)

		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}

	return nil
}

// Run executes the pipeline for ref and returns the result.
// On failure the partial job is discarded and only the error is returned.
func (p *Pipeline) Run(ctx context.Context, ref string) (*model.Result, error) {
	job := NewJob(ref)
	if err := p.Execute(ctx, job); err != nil {
		return nil, err
	}
	if job.Result == nil {
		return model.NewResult(), nil
	}
	return job.Result, nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
