package workflows

import (
	"time"
	"wither/internal/backup"
	"wither/internal/job"
	"wither/internal/temporal/activities"
	"wither/pkg/names"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// withActivityOptions disables retries: every failure here is a
// configuration or external-command fault.
func withActivityOptions(ctx workflow.Context) workflow.Context {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 24 * time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	return workflow.WithActivityOptions(ctx, ao)
}

func outcomeOf(j job.Job) JobOutcome {
	return JobOutcome{
		SpecFile:   j.SpecFile,
		Identifier: j.Identifier,
		Type:       j.Type,
		Daily:      j.Daily,
		Hourly:     j.Hourly,
	}
}

// runPipeline runs pre hook, helper sequence and post hook for one job.
// The post hook runs even when the helper failed.
func runPipeline(ctx workflow.Context, j job.Job) (JobOutcome, error) {
	logger := workflow.GetLogger(ctx)
	outcome := outcomeOf(j)

	switch j.Type {
	case job.TypeMinecraft:
	case job.TypeSystem:
		logger.Info("Skipping system backup job", "spec", j.SpecFile)
		outcome.Status = backup.StatusSkipped
		return outcome, nil
	default:
		outcome.Status = backup.StatusFailed
		unsupported := &backup.UnsupportedTypeError{Type: j.Type, SpecFile: j.SpecFile}
		return outcome, temporal.NewNonRetryableApplicationError(unsupported.Error(), names.ErrorTypeUnsupported, nil)
	}

	logger.Info("Beginning backup job for Minecraft server", "identifier", j.Identifier)
	rc := backup.NewRunContext(&j)

	// 1. Pre hook
	runHook(ctx, j, job.HookPre, rc)

	// 2. Helper sequence
	var failure *backup.HelperError
	for _, sub := range backup.HelperCommands {
		var out activities.HelperRunActivityOutput
		err := workflow.ExecuteActivity(ctx, names.ActivityNameHelperRun,
			activities.HelperRunActivityInput{Command: sub, Run: rc},
		).Get(ctx, &out)
		if err != nil {
			failure = &backup.HelperError{Command: sub, ExitCode: -1, Stderr: err.Error()}
			break
		}
		if out.ExitCode == 0 {
			continue
		}
		failure = &backup.HelperError{Helper: out.Helper, Command: sub, ExitCode: out.ExitCode, Stderr: out.Stderr}
		break
	}

	// 3. Post hook
	runHook(ctx, j, job.HookPost, rc)

	if failure != nil {
		logger.Error("Backup job failed", "identifier", j.Identifier, "error", failure.Error(), "stderr", failure.Stderr)
		outcome.Status = backup.StatusFailed
		return outcome, temporal.NewNonRetryableApplicationError(failure.Error(), names.ErrorTypeHelperFailure, nil, failure.Stderr)
	}

	logger.Info("Backup job finished", "identifier", j.Identifier)
	outcome.Status = backup.StatusSucceeded
	return outcome, nil
}

func runHook(ctx workflow.Context, j job.Job, name job.HookName, rc backup.RunContext) {
	hook, ok := j.Hook(name)
	if !ok {
		return
	}

	logger := workflow.GetLogger(ctx)
	var out activities.HookRunActivityOutput
	err := workflow.ExecuteActivity(ctx, names.ActivityNameHookRun,
		activities.HookRunActivityInput{Hook: hook, Run: rc},
	).Get(ctx, &out)
	if err != nil {
		logger.Error("Hook activity failed", "hook", hook, "error", err)
		return
	}
	if out.ExitCode != 0 {
		logger.Warn("Hook returned non-zero exit status", "hook", hook, "status", out.ExitCode)
	}
}
