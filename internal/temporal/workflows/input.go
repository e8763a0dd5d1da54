package workflows

import (
	"wither/internal/backup"
	"wither/internal/job"
)

// BackupRunInput starts a full run: discovery, validation, then every job
type BackupRunInput struct{}

// BackupJobInput starts the pipeline for a single specification file
type BackupJobInput struct {
	SpecFile string `json:"spec_file"`
}

// JobOutcome is the disposition of one job
type JobOutcome struct {
	SpecFile   string        `json:"spec_file"`
	Identifier string        `json:"identifier"`
	Type       job.Type      `json:"type"`
	Daily      bool          `json:"daily"`
	Hourly     bool          `json:"hourly"`
	Status     backup.Status `json:"status"`
}

type BackupRunOutput struct {
	Jobs []JobOutcome `json:"jobs"`
}

type BackupJobOutput struct {
	Job JobOutcome `json:"job"`
}
