package main

import (
	"context"
	"crypto/tls"
	"wither/internal/command"
	"wither/internal/temporal/activities"
	"wither/internal/temporal/workflows"
	applog "wither/pkg/log"
	"wither/pkg/names"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/activity"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/contrib/envconfig"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

func newWorkerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Serve the backup workflows on a Temporal task queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serveWorker(cmd.Context())
		},
	}
}

func (a *app) serveWorker(ctx context.Context) error {
	clientOptions := envconfig.MustLoadDefaultClientOptions()

	if a.cfg.Temporal.HostPort != "" {
		clientOptions.HostPort = a.cfg.Temporal.HostPort
	}
	if a.cfg.Temporal.Namespace != "" {
		clientOptions.Namespace = a.cfg.Temporal.Namespace
	}
	if a.cfg.Temporal.TLS {
		clientOptions.ConnectionOptions = temporalclient.ConnectionOptions{
			TLS: &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	clientOptions.Logger = applog.NewTemporalAdapter(a.logger)

	c, err := temporalclient.DialContext(ctx, clientOptions)
	if err != nil {
		a.logger.Error().Err(err).Msg("Unable to create Temporal client")
		return err
	}
	defer c.Close()
	a.logger.Info().Str("namespace", clientOptions.Namespace).Str("queue", a.cfg.Temporal.Queue).Msg("Connected to Temporal")

	w := worker.New(c, a.cfg.Temporal.Queue, worker.Options{})

	w.RegisterWorkflowWithOptions(workflows.BackupRunWorkflow, workflow.RegisterOptions{Name: names.WorkflowNameBackupRun})
	w.RegisterWorkflowWithOptions(workflows.BackupJobWorkflow, workflow.RegisterOptions{Name: names.WorkflowNameBackupJob})

	acts := activities.NewActivities(a.cfg, command.NewExecRunner(), a.logger)

	w.RegisterActivityWithOptions(acts.DiscoverSpecsActivity, activity.RegisterOptions{Name: names.ActivityNameDiscoverSpecs})
	w.RegisterActivityWithOptions(acts.LoadSpecsActivity, activity.RegisterOptions{Name: names.ActivityNameLoadSpecs})
	w.RegisterActivityWithOptions(acts.HookRunActivity, activity.RegisterOptions{Name: names.ActivityNameHookRun})
	w.RegisterActivityWithOptions(acts.HelperRunActivity, activity.RegisterOptions{Name: names.ActivityNameHelperRun})

	// Start listening to the Task Queue.
	if err := w.Run(worker.InterruptCh()); err != nil {
		a.logger.Error().Err(err).Msg("Unable to start worker")
		return err
	}
	return nil
}
