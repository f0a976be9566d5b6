package cli

import (
	"fmt"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/services"
	"github.com/spf13/cobra"
)

func newAlertsCmd() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage saved job alerts",
	}

	cmd.AddCommand(newAlertsListCmd())
	cmd.AddCommand(newAlertsCreateCmd())
	cmd.AddCommand(newAlertsDeleteCmd())
	cmd.AddCommand(newAlertsEnableCmd(true))
	cmd.AddCommand(newAlertsEnableCmd(false))
	cmd.AddCommand(newAlertsRunCmd())

	return cmd
}

func alertService() *services.AlertService {
	return services.NewAlertService(cfg.Storage.AlertsFile)
}

func newAlertsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saved alerts",
		RunE: func(cmd *cobra.Command, args []string) error {

			alerts, err := alertService().List()
			if err != nil {
				return err
			}

			if len(alerts) == 0 {
				cmd.Println("No alerts found.")
				cmd.Println("Create one with: linkedscout alerts create <name> --keywords '...'")
				return nil
			}

			renderAlerts(cmd.OutOrStdout(), alerts)
			return nil
		},
	}
}

func newAlertsCreateCmd() *cobra.Command {

	flags := criteriaFlags{}
	var disabled bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			criteria, err := flags.toCriteria()
			if err != nil {
				return err
			}

			service := alertService()
			alert := models.SavedAlert{Name: args[0], Criteria: criteria, Enabled: !disabled}
			if err := service.Create(alert); err != nil {
				return err
			}

			cmd.Printf("Created alert %q\n", alert.Name)
			cmd.Printf("Saved to: %s\n", service.AlertsFile())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&disabled, "disabled", false, "create the alert disabled")
	_ = cmd.MarkFlagRequired("keywords")

	return cmd
}

func newAlertsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if err := alertService().Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted alert %q\n", args[0])
			return nil
		},
	}
}

func newAlertsEnableCmd(enable bool) *cobra.Command {

	use, verb := "enable", "Enabled"
	if !enable {
		use, verb = "disable", "Disabled"
	}

	return &cobra.Command{
		Use:   use + " <name>",
		Short: verb + " an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if err := alertService().SetEnabled(args[0], enable); err != nil {
				return err
			}
			cmd.Printf("%s alert %q\n", verb, args[0])
			return nil
		},
	}
}

func newAlertsRunCmd() *cobra.Command {

	var name string
	var all bool
	var output string
	var onlyNew bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run saved alerts and fetch matching jobs",
		RunE: func(cmd *cobra.Command, args []string) error {

			if name == "" && !all {
				return fmt.Errorf("specify --name or --all")
			}

			service := alertService()

			var alerts []models.SavedAlert
			if name != "" {
				alert, err := service.Get(name)
				if err != nil {
					return err
				}
				if alert == nil {
					return fmt.Errorf("alert %q not found", name)
				}
				alerts = []models.SavedAlert{*alert}
			} else {
				enabled, err := service.EnabledAlerts()
				if err != nil {
					return err
				}
				alerts = enabled
			}

			if len(alerts) == 0 {
				cmd.Println("No alerts to run.")
				return nil
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			merged, failed := runAlerts(cmd, rt, alerts, onlyNew)

			cmd.Printf("Found %d unique jobs\n", len(merged))
			if len(merged) > 0 {
				renderJobs(cmd.OutOrStdout(), merged)
			}

			if output != "" && len(merged) > 0 {
				if err := rt.jsonStore.SaveToPath(merged, output); err != nil {
					return err
				}
				cmd.Printf("Saved %d jobs to %s\n", len(merged), output)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d alerts failed partway", failed, len(alerts))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "run a specific alert")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "run all enabled alerts")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file path")
	cmd.Flags().BoolVar(&onlyNew, "new", false, "only listings not seen in previous runs")

	return cmd
}

// runAlerts runs each alert in turn, merging results across alerts with the
// same identity-based dedup the pipeline uses within a run.
func runAlerts(cmd *cobra.Command, rt *runtime, alerts []models.SavedAlert, onlyNew bool) ([]models.JobListing, int) {

	seen := make(map[string]struct{})
	var merged []models.JobListing
	failed := 0

	for _, alert := range alerts {
		result, err := rt.jobService.RunAlert(cmd.Context(), alert,
			services.SearchOptions{OnlyNew: onlyNew, SaveToDb: true})
		if err != nil {
			cmd.PrintErrf("alert %q: %v\n", alert.Name, err)
			failed++
			continue
		}
		if result.Failed() {
			cmd.PrintErrf("alert %q failed partway: %v\n", alert.Name, result.Err)
			failed++
		}

		cmd.Printf("alert %q: %d jobs\n", alert.Name, len(result.Jobs))

		for _, job := range result.Jobs {
			if _, dup := seen[job.ID]; dup {
				continue
			}
			seen[job.ID] = struct{}{}
			merged = append(merged, job)
		}
	}

	return services.RankByRecency(merged), failed
}
