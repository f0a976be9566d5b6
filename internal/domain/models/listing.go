package models

import "time"

// JobListing is one scraped job posting. ID comes from the source's own
// listing reference and is the deduplication key within a run and across
// runs. PostedRaw keeps the recency signal exactly as the source gave it
// (absolute timestamp or relative age text); PostedAt is the normalized
// form and is nil when normalization failed.
type JobListing struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	Location  string     `json:"location"`
	URL       string     `json:"url"`
	WorkModel WorkModel  `json:"work_model,omitempty"`
	PostedRaw string     `json:"posted_raw,omitempty"`
	PostedAt  *time.Time `json:"posted_at,omitempty"`
	Salary    string     `json:"salary,omitempty"`
	JobType   string     `json:"job_type,omitempty"`
	ScrapedAt time.Time  `json:"scraped_at"`
}

// PageResult holds the listings parsed from a single results page.
type PageResult struct {
	Listings []JobListing
	// Anomalies counts listing containers that were present in the markup
	// but could not be turned into a valid listing (missing identity or title).
	Anomalies int
	// LastPage is set when the page looked like the final one: empty body,
	// fewer containers than the source page size, or no valid records.
	LastPage bool
}

type RunStatus string

const (
	RunOK        RunStatus = "ok"
	RunTruncated RunStatus = "truncated"
	RunFailed    RunStatus = "failed"
)

// RunResult is what one pipeline invocation produces: the final ordered,
// deduplicated listings plus metadata about how the run ended. On a failed
// run Jobs still carries everything accumulated before the failure.
type RunResult struct {
	ID             string
	Criteria       SearchCriteria
	Jobs           []JobListing
	Status         RunStatus
	Err            error
	PagesFetched   int
	ParseAnomalies int
	StartedAt      time.Time
	FinishedAt     time.Time
}

func (r RunResult) Failed() bool {
	return r.Status == RunFailed
}
