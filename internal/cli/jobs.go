package cli

import (
	"github.com/linkedscout/linkedscout/internal/repositories"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/entities"
)

func newJobsCmd() *cobra.Command {

	var limit, offset int
	var company string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs recorded in history",
		RunE: func(cmd *cobra.Command, args []string) error {

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			records, err := rt.jobsRepo.Get(cmd.Context(), limit, offset, company)
			if err != nil {
				return err
			}

			total, err := rt.jobsRepo.Count(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				cmd.Println("No jobs in history.")
				return nil
			}

			jobs := lo.Map(records, func(record entities.JobRecord, _ int) models.JobListing {
				return repositories.ListingFrom(record)
			})

			renderJobs(cmd.OutOrStdout(), jobs)
			cmd.Printf("%d of %d jobs in history\n", len(jobs), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of jobs to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")
	cmd.Flags().StringVar(&company, "company", "", "filter by company name")

	return cmd
}
