package activities

import (
	"context"
	"wither/internal/backup"

	"go.temporal.io/sdk/activity"
)

type HookRunActivityInput struct {
	Hook string            `json:"hook"`
	Run  backup.RunContext `json:"run"`
}

type HookRunActivityOutput struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// HookRunActivity runs a pre or post hook. A failing hook does not fail the
// activity: hooks never gate a backup.
func (a *Activities) HookRunActivity(ctx context.Context, input HookRunActivityInput) (*HookRunActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("HookRunActivity started", "hook", input.Hook, "identifier", input.Run.Identifier)

	res := backup.NewHookRunner(a.Runner, a.installation(), a.Logger).Run(ctx, input.Hook, input.Run)

	return &HookRunActivityOutput{
		ExitCode: res.ExitCode,
		Stdout:   string(res.Stdout),
		Stderr:   string(res.Stderr),
	}, nil
}
