package backup

import (
	"context"
	"fmt"
	"wither/internal/command"
	"wither/internal/job"

	"github.com/rs/zerolog"
)

// HelperCommands are the snapshot helper sub-commands run for a Minecraft
// job, in order. The sequence stops at the first failure.
var HelperCommands = []string{"sync-to-local", "snapshot-create"}

// Status is the terminal disposition of one job
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// HelperError reports a helper sub-command that exited non-zero
type HelperError struct {
	Helper   string
	Command  string
	ExitCode int
	Stderr   string
}

func (e *HelperError) Error() string {
	return fmt.Sprintf("helper %s %s returned non-zero exit status %d", e.Helper, e.Command, e.ExitCode)
}

// UnsupportedTypeError means a job of unknown type reached execution, which
// validation should have made impossible.
type UnsupportedTypeError struct {
	Type     job.Type
	SpecFile string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("internal error -- job type '%s' from %s not supported by executor", e.Type, e.SpecFile)
}

// Executor runs the backup pipeline of a single job
type Executor struct {
	runner command.Runner
	hooks  *HookRunner
	helper string
	inst   Installation
	logger zerolog.Logger
}

// NewExecutor creates an Executor invoking the snapshot helper at helperPath
func NewExecutor(runner command.Runner, helperPath string, inst Installation, logger zerolog.Logger) *Executor {
	return &Executor{
		runner: runner,
		hooks:  NewHookRunner(runner, inst, logger),
		helper: helperPath,
		inst:   inst,
		logger: logger,
	}
}

// Execute runs the pipeline for j. The returned error is a *HelperError when
// the helper failed (after the post hook has run) and an
// *UnsupportedTypeError for a job type without a pipeline.
func (e *Executor) Execute(ctx context.Context, j *job.Job) (Status, error) {
	switch j.Type {
	case job.TypeMinecraft:
		if err := e.backupMinecraft(ctx, j); err != nil {
			return StatusFailed, err
		}
		return StatusSucceeded, nil
	case job.TypeSystem:
		// System backups are accepted by validation but not implemented yet.
		e.logger.Info().Str("spec", j.SpecFile).Str("identifier", j.Identifier).Msg("Skipping system backup job")
		return StatusSkipped, nil
	default:
		return StatusFailed, &UnsupportedTypeError{Type: j.Type, SpecFile: j.SpecFile}
	}
}

func (e *Executor) backupMinecraft(ctx context.Context, j *job.Job) error {
	logger := e.logger.With().Str("spec", j.SpecFile).Str("identifier", j.Identifier).Logger()
	logger.Info().Msg("Beginning backup job for Minecraft server")

	rc := NewRunContext(j)

	// 1. Pre hook
	if pre, ok := j.Hook(job.HookPre); ok {
		e.hooks.Run(ctx, pre, rc)
	}

	// 2. Helper sequence
	failure := e.runHelper(ctx, logger, rc)

	// 3. Post hook, even after a helper failure
	if post, ok := j.Hook(job.HookPost); ok {
		e.hooks.Run(ctx, post, rc)
	}

	if failure != nil {
		return failure
	}

	logger.Info().Msg("Backup job finished")
	return nil
}

// runHelper runs HelperCommands until one of them fails
func (e *Executor) runHelper(ctx context.Context, logger zerolog.Logger, rc RunContext) *HelperError {
	for _, sub := range HelperCommands {
		cmd := command.Command{Path: e.helper, Args: []string{sub}, Env: rc.Environ(e.inst)}
		logger.Info().Str("command", cmd.String()).Msg("Executing helper")

		res, err := e.runner.Run(ctx, cmd)
		if err != nil {
			res = command.Result{ExitCode: -1, Stderr: []byte(err.Error())}
		}
		if res.Success() {
			continue
		}

		failure := &HelperError{
			Helper:   e.helper,
			Command:  sub,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
		helperLogger := logger.With().Str("helper", e.helper).Str("command", sub).Logger()
		helperLogger.Error().Int("status", res.ExitCode).Msg("Helper returned non-zero exit status")
		logOutput(helperLogger, "stderr", res.Stderr)
		return failure
	}
	return nil
}
