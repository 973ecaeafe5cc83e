package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/webdetect/internal/annotator"
	"github.com/nao1215/webdetect/internal/model"
)

// Resolver classifies an image reference and loads local content.
// *source.Resolver implements it.
type Resolver interface {
	Resolve(ref string) (model.Source, error)
}

// ValidateStep rejects empty image references.
type ValidateStep struct{}

// NewValidateStep creates a new validation step.
func NewValidateStep() *ValidateStep {
	return &ValidateStep{}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do fails with KindValidation when the reference is empty.
// A reference made only of whitespace is not empty and is left to the resolver.
func (s *ValidateStep) Do(_ context.Context, job *Job) error {
	if job.Ref == "" {
		return &Error{Kind: KindValidation, Step: s.Name(), Err: ErrImagePathRequired}
	}
	return nil
}

// ResolveStep turns the reference into a model.Source.
type ResolveStep struct {
	resolver Resolver
	logger   *slog.Logger
}

// NewResolveStep creates a new resolve step.
func NewResolveStep(resolver Resolver, logger *slog.Logger) *ResolveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveStep{
		resolver: resolver,
		logger:   logger,
	}
}

// Name returns the step name.
func (s *ResolveStep) Name() string {
	return "resolve"
}

// Do resolves job.Ref and stores the source. Failures are KindIO.
func (s *ResolveStep) Do(_ context.Context, job *Job) error {
	src, err := s.resolver.Resolve(job.Ref)
	if err != nil {
		return &Error{Kind: KindIO, Step: s.Name(), Err: err}
	}

	s.logger.Debug("image resolved", "source", src.Describe())
	job.Source = src
	return nil
}

// DetectStep runs web detection on the resolved source.
type DetectStep struct {
	annotator annotator.Annotator
}

// NewDetectStep creates a new detect step.
func NewDetectStep(a annotator.Annotator) *DetectStep {
	return &DetectStep{annotator: a}
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do calls the annotator and stores the result. Failures are KindRemote.
func (s *DetectStep) Do(ctx context.Context, job *Job) error {
	result, err := s.annotator.Detect(ctx, job.Source)
	if err != nil {
		return &Error{Kind: KindRemote, Step: s.Name(), Err: err}
	}
	job.Result = result
	return nil
}

// NewWebDetection builds the standard pipeline: validate, resolve, detect.
func NewWebDetection(resolver Resolver, a annotator.Annotator, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewValidateStep(),
		NewResolveStep(resolver, p.logger),
		NewDetectStep(a),
	)
	return p
}
