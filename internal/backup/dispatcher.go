package backup

import (
	"context"
	"wither/internal/job"

	"github.com/rs/zerolog"
)

// JobExecutor runs the pipeline of one validated job
type JobExecutor interface {
	Execute(ctx context.Context, j *job.Job) (Status, error)
}

// Recorder receives the outcome of every executed job
type Recorder interface {
	Record(j *job.Job, status Status, err error)
}

// Dispatcher drives discovery, validation of every specification, then
// execution of each job in discovery order.
type Dispatcher struct {
	discovery job.DiscoveryOptions
	executor  JobExecutor
	recorder  Recorder
	logger    zerolog.Logger
}

// NewDispatcher creates a Dispatcher. recorder may be nil.
func NewDispatcher(discovery job.DiscoveryOptions, executor JobExecutor, recorder Recorder, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		discovery: discovery,
		executor:  executor,
		recorder:  recorder,
		logger:    logger,
	}
}

// Load discovers and validates every job specification. The first invalid
// specification aborts the load.
func (d *Dispatcher) Load() ([]*job.Job, error) {
	d.logger.Info().Str("root", d.discovery.Root).Msg("Searching for job specifications")
	specs := job.Discover(d.discovery)
	d.logger.Info().Int("count", len(specs)).Msg("Job specifications found")

	return job.LoadAll(specs, d.logger)
}

// Run loads every job and executes them one at a time. Nothing executes
// unless every specification is valid, and the run stops after the first
// job that fails.
func (d *Dispatcher) Run(ctx context.Context) error {
	jobs, err := d.Load()
	if err != nil {
		return err
	}

	for _, j := range jobs {
		status, err := d.executor.Execute(ctx, j)
		if d.recorder != nil {
			d.recorder.Record(j, status, err)
		}
		if err != nil {
			return err
		}
	}

	d.logger.Info().Int("jobs", len(jobs)).Msg("All backup jobs completed")
	return nil
}
