package backup

import (
	"context"
	"strings"
	"wither/internal/command"

	"github.com/rs/zerolog"
)

// HookRunner executes pre/post hooks. Hook failures are logged and
// otherwise ignored: hooks never gate a backup.
type HookRunner struct {
	runner command.Runner
	inst   Installation
	logger zerolog.Logger
}

func NewHookRunner(runner command.Runner, inst Installation, logger zerolog.Logger) *HookRunner {
	return &HookRunner{runner: runner, inst: inst, logger: logger}
}

// Run executes the hook at path without arguments and returns its buffered
// result. A hook that cannot be started is reported with exit code -1.
func (h *HookRunner) Run(ctx context.Context, path string, rc RunContext) command.Result {
	logger := h.logger.With().Str("hook", path).Logger()
	logger.Info().Msg("Executing hook")

	res, err := h.runner.Run(ctx, command.Command{Path: path, Env: rc.Environ(h.inst)})
	if err != nil {
		logger.Error().Err(err).Msg("Hook could not be executed")
		return command.Result{ExitCode: -1, Stderr: []byte(err.Error())}
	}

	if !res.Success() {
		logger.Error().Int("status", res.ExitCode).Msg("Hook returned non-zero exit status")
		logOutput(logger, "stdout", res.Stdout)
		logOutput(logger, "stderr", res.Stderr)
	}

	return res
}

// logOutput logs captured output one event per line
func logOutput(logger zerolog.Logger, stream string, output []byte) {
	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		logger.Error().Str("stream", stream).Msg(line)
	}
}
