package workflows

import (
	"wither/internal/temporal/activities"
	"wither/pkg/names"

	"go.temporal.io/sdk/workflow"
)

// BackupJobWorkflow validates a single specification file and runs its job
func BackupJobWorkflow(ctx workflow.Context, input BackupJobInput) (*BackupJobOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("BackupJobWorkflow started", "spec", input.SpecFile)

	ctx = withActivityOptions(ctx)

	var loaded activities.LoadSpecsActivityOutput
	err := workflow.ExecuteActivity(ctx, names.ActivityNameLoadSpecs, activities.LoadSpecsActivityInput{SpecFiles: []string{input.SpecFile}}).Get(ctx, &loaded)
	if err != nil {
		logger.Error("Failed to load job specification", "error", err)
		return nil, err
	}

	outcome, err := runPipeline(ctx, loaded.Jobs[0])
	if err != nil {
		return nil, err
	}

	logger.Info("BackupJobWorkflow completed", "spec", input.SpecFile, "status", outcome.Status)
	return &BackupJobOutput{Job: outcome}, nil
}
