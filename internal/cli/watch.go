package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/linkedscout/linkedscout/internal/domain/events"
	"github.com/linkedscout/linkedscout/internal/logger"
	"github.com/linkedscout/linkedscout/internal/metrics"
	"github.com/linkedscout/linkedscout/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {

	var onlyNew bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run enabled alerts on an interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metrics.StartMetricsServer(cfg.Watch.MetricsAddress)

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			cleaner, err := services.NewHistoryCleaner(rt.jobsRepo, cfg.Storage.ExpirationInDays)
			if err != nil {
				return err
			}
			defer cleaner.Stop()

			bus := EventBus.New()
			if err := bus.Subscribe(events.JobsFoundTopic, exportFoundJobs(rt)); err != nil {
				return err
			}

			runner, err := services.NewAlertRunner(bus, rt.jobService, alertService(),
				cfg.Watch.Interval, onlyNew)
			if err != nil {
				return err
			}

			go runner.Start()

			<-ctx.Done()
			log.Info("Shutting down...")
			runner.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&onlyNew, "new", true, "only listings not seen in previous runs")

	return cmd
}

// exportFoundJobs writes each alert's latest findings under the output
// directory as <alert>.json.
func exportFoundJobs(rt *runtime) func(events.JobsFound) {
	return func(event events.JobsFound) {
		path, err := rt.jsonStore.Save(event.Result.Jobs, filepath.Base(event.AlertName))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
				Errorf("failed to export alert %q results: %v", event.AlertName, err)
			return
		}
		log.Infof("exported %d jobs for alert %q to %s", len(event.Result.Jobs), event.AlertName, path)
	}
}
