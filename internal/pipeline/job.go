package pipeline

import "github.com/nao1215/webdetect/internal/model"

// Job carries one image reference through the pipeline.
// Each step reads what earlier steps produced and fills in its own part.
// A Job is used for a single request and then discarded.
type Job struct {
	// Ref is the image reference as given by the caller.
	Ref string

	// Source is set by the resolve step.
	Source model.Source

	// Result is set by the detect step.
	Result *model.Result

	// PerformedSteps lists the names of the steps that completed.
	PerformedSteps []string
}

// NewJob creates a Job for ref.
func NewJob(ref string) *Job {
	return &Job{
		Ref:            ref,
		PerformedSteps: make([]string, 0),
	}
}
