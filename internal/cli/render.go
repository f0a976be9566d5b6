package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/linkedscout/linkedscout/internal/domain/models"
)

const maxTableRows = 20

func renderJobs(w io.Writer, jobs []models.JobListing) {

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Found %d jobs", len(jobs)))
	t.AppendHeader(table.Row{"Title", "Company", "Location", "Posted"})

	shown := jobs
	if len(shown) > maxTableRows {
		shown = shown[:maxTableRows]
	}

	for _, job := range shown {
		posted := job.PostedRaw
		if job.PostedAt != nil {
			posted = job.PostedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{truncate(job.Title, 40), truncate(job.Company, 25),
			truncate(job.Location, 20), posted})
	}

	t.Render()

	if len(jobs) > maxTableRows {
		fmt.Fprintf(w, "... and %d more jobs\n", len(jobs)-maxTableRows)
	}
}

func renderAlerts(w io.Writer, alerts []models.SavedAlert) {

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Saved Alerts")
	t.AppendHeader(table.Row{"Name", "Keywords", "Location", "Time", "Enabled"})

	for _, alert := range alerts {
		location := alert.Criteria.Location
		if location == "" {
			location = "-"
		}
		enabled := "no"
		if alert.Enabled {
			enabled = "yes"
		}
		t.AppendRow(table.Row{alert.Name, alert.Criteria.Keywords, location,
			string(alert.Criteria.TimeWindow), enabled})
	}

	t.Render()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
