package workflows

import (
	"wither/internal/temporal/activities"
	"wither/pkg/names"

	"go.temporal.io/sdk/workflow"
)

// BackupRunWorkflow discovers and validates every job specification, then
// runs each job in discovery order. It fails at the first invalid
// specification, before any job runs, or at the first failed job.
func BackupRunWorkflow(ctx workflow.Context, input BackupRunInput) (*BackupRunOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("BackupRunWorkflow started")

	ctx = withActivityOptions(ctx)

	// 1. Discover specifications
	var discovered activities.DiscoverSpecsActivityOutput
	err := workflow.ExecuteActivity(ctx, names.ActivityNameDiscoverSpecs, activities.DiscoverSpecsActivityInput{}).Get(ctx, &discovered)
	if err != nil {
		logger.Error("Failed to discover job specifications", "error", err)
		return nil, err
	}

	// 2. Validate all of them
	var loaded activities.LoadSpecsActivityOutput
	err = workflow.ExecuteActivity(ctx, names.ActivityNameLoadSpecs, activities.LoadSpecsActivityInput{SpecFiles: discovered.SpecFiles}).Get(ctx, &loaded)
	if err != nil {
		logger.Error("Failed to load job specifications", "error", err)
		return nil, err
	}
	logger.Info("Job specifications loaded", "count", len(loaded.Jobs))

	// 3. Execute
	result := &BackupRunOutput{Jobs: []JobOutcome{}}
	for _, j := range loaded.Jobs {
		outcome, err := runPipeline(ctx, j)
		if err != nil {
			return nil, err
		}
		result.Jobs = append(result.Jobs, outcome)
	}

	logger.Info("BackupRunWorkflow completed", "jobs", len(result.Jobs))
	return result, nil
}
