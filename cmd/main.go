package main

import (
	"context"
	"errors"
	"log"
	"os"
	"wither/internal/backup"
	"wither/internal/command"
	"wither/internal/config"
	"wither/internal/job"
	"wither/internal/report"
	applog "wither/pkg/log"
	s3client "wither/pkg/s3"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every sub-command needs once configuration is loaded
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:           "wither",
		Short:         "Discover per-directory backup jobs and run them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.NewConfig(cmd.Context(), a.configPath)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
			a.cfg = cfg
			a.logger = applog.New(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Validate every job specification, then run every job",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Discover and validate job specifications without running them",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.validate()
			},
		},
		newWorkerCommand(a),
		newPlayersCommand(a),
		newServersCommand(a),
	)

	return root
}

func (a *app) discoveryOptions() job.DiscoveryOptions {
	return job.DiscoveryOptions{
		Root:    a.cfg.Discovery.Root,
		Exclude: a.cfg.Discovery.Exclude,
		Skip:    a.cfg.Discovery.Skip,
	}
}

func (a *app) installation() backup.Installation {
	return backup.Installation{RootDir: a.cfg.RootDir, LibDir: a.cfg.LibDir}
}

func (a *app) run(ctx context.Context) error {
	rep := report.New()
	logger := a.logger.With().Str("run_id", rep.RunID.String()).Logger()

	executor := backup.NewExecutor(command.NewExecRunner(), a.cfg.Path.Helper, a.installation(), logger)
	dispatcher := backup.NewDispatcher(a.discoveryOptions(), executor, rep, logger)

	err := dispatcher.Run(ctx)
	rep.Finish(err)
	a.publishReport(ctx, rep, logger)
	logger.Info().Int("jobs", len(rep.Jobs)).Bool("failed", rep.Failed()).Msg("Backup run finished")

	if err != nil {
		logFailure(logger, err)
		return err
	}
	return nil
}

func (a *app) validate() error {
	dispatcher := backup.NewDispatcher(a.discoveryOptions(), nil, nil, a.logger)

	jobs, err := dispatcher.Load()
	if err != nil {
		logFailure(a.logger, err)
		return err
	}

	for _, j := range jobs {
		a.logger.Info().
			Str("spec", j.SpecFile).
			Str("identifier", j.Identifier).
			Str("type", j.Type.String()).
			Bool("daily", j.Daily).
			Bool("hourly", j.Hourly).
			Int("hooks", len(j.Hooks)).
			Msg("Job specification is valid")
	}
	return nil
}

func logFailure(logger zerolog.Logger, err error) {
	var specErr *job.SpecificationError
	var helperErr *backup.HelperError
	var typeErr *backup.UnsupportedTypeError
	switch {
	case errors.As(err, &specErr):
		logger.Error().Str("spec", specErr.File).Str("field", specErr.Field).Msg(specErr.Error())
	case errors.As(err, &helperErr):
		logger.Error().Err(err).Msg("error(s) encountered, exiting")
	case errors.As(err, &typeErr):
		logger.Error().Err(err).Msg("internal error, exiting")
	default:
		logger.Error().Err(err).Msg("run failed")
	}
}

// publishReport writes and uploads the run report. Failures are logged only.
func (a *app) publishReport(ctx context.Context, rep *report.Report, logger zerolog.Logger) {
	if a.cfg.Report.Path != "" {
		if err := rep.Save(a.cfg.Report.Path); err != nil {
			logger.Error().Err(err).Msg("Failed to save run report")
		}
	}

	s3cfg := a.cfg.Report.S3
	if !s3cfg.Enabled() {
		return
	}
	client, err := s3client.NewClient(ctx, s3cfg.Region, s3cfg.Endpoint, s3cfg.AccessKeyID, s3cfg.SecretAccessKey)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create S3 client")
		return
	}
	if err := rep.Publish(ctx, report.NewS3Uploader(client, s3cfg.Bucket), s3cfg.Prefix); err != nil {
		logger.Error().Err(err).Msg("Failed to upload run report")
		return
	}
	logger.Info().Str("bucket", s3cfg.Bucket).Str("key", rep.Key(s3cfg.Prefix)).Msg("Run report uploaded")
}
