package activities

import (
	"context"
	"errors"
	"wither/internal/job"
	"wither/pkg/names"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

type DiscoverSpecsActivityInput struct{}

type DiscoverSpecsActivityOutput struct {
	SpecFiles []string `json:"spec_files"`
}

func (a *Activities) DiscoverSpecsActivity(ctx context.Context, input DiscoverSpecsActivityInput) (*DiscoverSpecsActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("DiscoverSpecsActivity started", "root", a.Config.Discovery.Root)

	specs := job.Discover(job.DiscoveryOptions{
		Root:    a.Config.Discovery.Root,
		Exclude: a.Config.Discovery.Exclude,
		Skip:    a.Config.Discovery.Skip,
	})

	logger.Info("DiscoverSpecsActivity completed", "count", len(specs))
	return &DiscoverSpecsActivityOutput{SpecFiles: specs}, nil
}

type LoadSpecsActivityInput struct {
	SpecFiles []string `json:"spec_files"`
}

type LoadSpecsActivityOutput struct {
	Jobs []job.Job `json:"jobs"`
}

// LoadSpecsActivity validates every specification. An invalid one fails the
// activity without retry.
func (a *Activities) LoadSpecsActivity(ctx context.Context, input LoadSpecsActivityInput) (*LoadSpecsActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("LoadSpecsActivity started", "count", len(input.SpecFiles))

	loaded, err := job.LoadAll(input.SpecFiles, a.Logger)
	if err != nil {
		logger.Error("Invalid job specification", "error", err)
		var specErr *job.SpecificationError
		if errors.As(err, &specErr) {
			return nil, temporal.NewNonRetryableApplicationError(specErr.Error(), names.ErrorTypeSpecification, specErr)
		}
		return nil, err
	}

	out := &LoadSpecsActivityOutput{Jobs: make([]job.Job, 0, len(loaded))}
	for _, j := range loaded {
		out.Jobs = append(out.Jobs, *j)
	}
	return out, nil
}
