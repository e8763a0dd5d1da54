package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"
	"wither/internal/backup"
	"wither/internal/job"

	"github.com/google/uuid"
)

// JobResult is the outcome of one executed job
type JobResult struct {
	SpecFile   string        `json:"spec_file"`
	Identifier string        `json:"identifier"`
	Type       job.Type      `json:"type"`
	Status     backup.Status `json:"status"`
	Error      string        `json:"error,omitempty"`
}

// Report summarises one dispatcher run
type Report struct {
	RunID      uuid.UUID   `json:"run_id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at,omitempty"`
	Jobs       []JobResult `json:"jobs"`
	Error      string      `json:"error,omitempty"`
}

// New starts a report for a run with a fresh run id
func New() *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Jobs:      []JobResult{},
	}
}

// Record implements backup.Recorder
func (r *Report) Record(j *job.Job, status backup.Status, err error) {
	result := JobResult{
		SpecFile:   j.SpecFile,
		Identifier: j.Identifier,
		Type:       j.Type,
		Status:     status,
	}
	if err != nil {
		result.Error = err.Error()
	}
	r.Jobs = append(r.Jobs, result)
}

// Finish stamps the end of the run and the error that ended it, if any
func (r *Report) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Error = err.Error()
	}
}

// Failed reports whether the run ended with an error
func (r *Report) Failed() bool {
	return r.Error != ""
}

func (r *Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Save writes the report as JSON to file, creating its directory
func (r *Report) Save(file string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Key is the object key of the report under prefix
func (r *Report) Key(prefix string) string {
	return path.Join(prefix, r.RunID.String()+".json")
}
