package activities

import (
	"wither/internal/backup"
	"wither/internal/command"
	"wither/internal/config"

	"github.com/rs/zerolog"
)

// Activities holds all activity implementations for the worker
type Activities struct {
	Config *config.Config
	Runner command.Runner
	Logger zerolog.Logger
}

// NewActivities creates a new Activities instance with required dependencies
func NewActivities(config *config.Config, runner command.Runner, logger zerolog.Logger) *Activities {
	return &Activities{
		Config: config,
		Runner: runner,
		Logger: logger,
	}
}

func (a *Activities) installation() backup.Installation {
	return backup.Installation{RootDir: a.Config.RootDir, LibDir: a.Config.LibDir}
}
