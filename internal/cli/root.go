// Package cli implements the linkedscout command-line interface.
package cli

import (
	"github.com/linkedscout/linkedscout/internal/clients/linkedin"
	"github.com/linkedscout/linkedscout/internal/config"
	"github.com/linkedscout/linkedscout/internal/logger"
	"github.com/linkedscout/linkedscout/internal/ratelimit"
	"github.com/linkedscout/linkedscout/internal/repositories"
	"github.com/linkedscout/linkedscout/internal/services"
	"github.com/linkedscout/linkedscout/internal/storage"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "linkedscout",
	Short:        "Collect job offers from LinkedIn based on search criteria",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Get()
		logger.Setup(cfg.Logger)
	},
}

func Execute() error {
	defer logger.Cleanup()
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newAlertsCmd())
	rootCmd.AddCommand(newJobsCmd())
	rootCmd.AddCommand(newWatchCmd())
}

// runtime bundles everything a command needs to execute searches against
// the shared rate limiter and the history database.
type runtime struct {
	jobService *services.JobService
	jobsRepo   *repositories.Jobs
	jsonStore  *storage.JsonStore
	dbContext  *repositories.DbContext
}

func newRuntime() (*runtime, error) {

	limiter := ratelimit.New(cfg.Scraper.MinRequestInterval, cfg.Scraper.MaxJitter)

	client := linkedin.NewClient(limiter)
	client.SetHTTPClient(linkedin.NewHTTPClient(cfg.Scraper.Timeout))
	client.SetRetryPolicy(cfg.Scraper.MaxRetries, cfg.Scraper.RetryBaseDelay)
	if cfg.Scraper.BaseURL != "" {
		client.SetBaseURL(cfg.Scraper.BaseURL)
	}
	if cfg.Scraper.UserAgent != "" {
		client.SetUserAgent(cfg.Scraper.UserAgent)
	}

	dbContext, err := repositories.NewDbContext(cfg.Storage.DbPath)
	if err != nil {
		return nil, err
	}
	if err := dbContext.Migrate(); err != nil {
		dbContext.Close()
		return nil, err
	}

	jobsRepo := repositories.NewJobsRepository(dbContext.DB)
	pipeline := services.NewSearchPipeline(client, linkedin.NewParser(), jobsRepo)

	return &runtime{
		jobService: services.NewJobService(pipeline, jobsRepo),
		jobsRepo:   jobsRepo,
		jsonStore:  storage.NewJsonStore(cfg.Storage.OutputDir),
		dbContext:  dbContext,
	}, nil
}

func (r *runtime) close() {
	_ = r.dbContext.Close()
}
