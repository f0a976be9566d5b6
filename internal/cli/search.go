package cli

import (
	"fmt"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/services"
	"github.com/spf13/cobra"
)

type criteriaFlags struct {
	keywords   string
	location   string
	timeWindow string
	remote     bool
	hybrid     bool
	onSite     bool
	fullTime   bool
	partTime   bool
	contract   bool
	internship bool
	maxResults int
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keywords, "keywords", "k", "", "search keywords")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "location to search in")
	cmd.Flags().StringVarP(&f.timeWindow, "time", "t", "7d", "time window (24h, 7d, 30d, any)")
	cmd.Flags().BoolVarP(&f.remote, "remote", "r", false, "only remote jobs")
	cmd.Flags().BoolVar(&f.hybrid, "hybrid", false, "only hybrid jobs")
	cmd.Flags().BoolVar(&f.onSite, "on-site", false, "only on-site jobs")
	cmd.Flags().BoolVarP(&f.fullTime, "full-time", "f", false, "full-time only")
	cmd.Flags().BoolVar(&f.partTime, "part-time", false, "part-time only")
	cmd.Flags().BoolVarP(&f.contract, "contract", "c", false, "contract only")
	cmd.Flags().BoolVar(&f.internship, "internship", false, "internships only")
	cmd.Flags().IntVarP(&f.maxResults, "max", "m", models.DefaultMaxResults, "maximum results (1-1000)")
}

func (f *criteriaFlags) toCriteria() (models.SearchCriteria, error) {

	window, err := models.ToTimeWindow(f.timeWindow)
	if err != nil {
		return models.SearchCriteria{}, err
	}

	var workModels []models.WorkModel
	if f.remote {
		workModels = append(workModels, models.Remote)
	}
	if f.hybrid {
		workModels = append(workModels, models.Hybrid)
	}
	if f.onSite {
		workModels = append(workModels, models.OnSite)
	}

	var jobTypes []models.JobType
	if f.fullTime {
		jobTypes = append(jobTypes, models.FullTime)
	}
	if f.partTime {
		jobTypes = append(jobTypes, models.PartTime)
	}
	if f.contract {
		jobTypes = append(jobTypes, models.Contract)
	}
	if f.internship {
		jobTypes = append(jobTypes, models.Internship)
	}

	return models.NewSearchCriteria(f.keywords, f.location, window, workModels, jobTypes, f.maxResults)
}

func newSearchCmd() *cobra.Command {

	flags := criteriaFlags{}
	var output string
	var onlyNew bool
	var noSave bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for jobs matching the given criteria",
		RunE: func(cmd *cobra.Command, args []string) error {

			criteria, err := flags.toCriteria()
			if err != nil {
				return err
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			result, err := rt.jobService.Search(cmd.Context(), criteria,
				services.SearchOptions{OnlyNew: onlyNew, SaveToDb: !noSave})
			if err != nil {
				return err
			}

			return reportRunResult(cmd, rt, result, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file path")
	cmd.Flags().BoolVar(&onlyNew, "new", false, "only listings not seen in previous runs")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record results into history")
	_ = cmd.MarkFlagRequired("keywords")

	return cmd
}

// reportRunResult renders a run and makes the exit status reflect how it
// ended: an empty successful run is not an error, a partial failed run is.
func reportRunResult(cmd *cobra.Command, rt *runtime, result models.RunResult, output string) error {

	if len(result.Jobs) == 0 && !result.Failed() {
		cmd.Println("No jobs found matching your criteria.")
		return nil
	}

	renderJobs(cmd.OutOrStdout(), result.Jobs)

	if result.Status == models.RunTruncated {
		cmd.Println("Note: results were truncated at the source's pagination limit.")
	}

	if output != "" && len(result.Jobs) > 0 {
		if err := rt.jsonStore.SaveToPath(result.Jobs, output); err != nil {
			return err
		}
		cmd.Printf("Saved %d jobs to %s\n", len(result.Jobs), output)
	}

	if result.Failed() {
		return fmt.Errorf("run failed partway with %d listings collected: %w",
			len(result.Jobs), result.Err)
	}

	return nil
}
