package activities

import (
	"context"
	"wither/internal/backup"
	"wither/internal/command"

	"go.temporal.io/sdk/activity"
)

type HelperRunActivityInput struct {
	Command string            `json:"command"`
	Run     backup.RunContext `json:"run"`
}

type HelperRunActivityOutput struct {
	Helper   string `json:"helper"`
	ExitCode int    `json:"exit_code"`
	Stderr   string `json:"stderr"`
}

// HelperRunActivity runs one snapshot helper sub-command. The exit status is
// returned to the workflow, which decides whether the job failed.
func (a *Activities) HelperRunActivity(ctx context.Context, input HelperRunActivityInput) (*HelperRunActivityOutput, error) {
	logger := activity.GetLogger(ctx)

	cmd := command.Command{
		Path: a.Config.Path.Helper,
		Args: []string{input.Command},
		Env:  input.Run.Environ(a.installation()),
	}
	logger.Info("Executing helper", "command", cmd.String(), "identifier", input.Run.Identifier)

	res, err := a.Runner.Run(ctx, cmd)
	if err != nil {
		logger.Error("Helper could not be executed", "error", err)
		res = command.Result{ExitCode: -1, Stderr: []byte(err.Error())}
	}

	return &HelperRunActivityOutput{
		Helper:   cmd.Path,
		ExitCode: res.ExitCode,
		Stderr:   string(res.Stderr),
	}, nil
}
