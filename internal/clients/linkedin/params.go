package linkedin

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the guest job search endpoint; it returns HTML
	// fragments and needs no authentication.
	DefaultBaseURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

	jobViewURL = "https://www.linkedin.com/jobs/view/"

	// PageSize is how many listings the source returns per page.
	PageSize = 25

	// MaxStart is the deepest pagination offset the source serves.
	MaxStart = 1000
)

var ErrTooDeepPagination = errors.New("too deep pagination")

func timeFilterFrom(window models.TimeWindow) (string, error) {
	switch window {
	case models.Last24Hours:
		return "r86400", nil
	case models.LastWeek:
		return "r604800", nil
	case models.LastMonth:
		return "r2592000", nil
	case models.AnyTime, "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid time window: %v", window)
	}
}

func workModelFrom(model models.WorkModel) (string, error) {
	switch model {
	case models.OnSite:
		return "1", nil
	case models.Remote:
		return "2", nil
	case models.Hybrid:
		return "3", nil
	default:
		return "", fmt.Errorf("invalid work model: %v", model)
	}
}

func jobTypeFrom(jobType models.JobType) (string, error) {
	switch jobType {
	case models.FullTime:
		return "F", nil
	case models.PartTime:
		return "P", nil
	case models.Contract:
		return "C", nil
	case models.Internship:
		return "I", nil
	case models.Temporary:
		return "T", nil
	case models.Volunteer:
		return "V", nil
	default:
		return "", fmt.Errorf("invalid job type: %v", jobType)
	}
}

// QueryPlan is the translated form of one SearchCriteria: the fixed query
// parameters plus per-page request descriptors. Translation is deterministic;
// how many pages actually get requested is decided at runtime by the caller.
type QueryPlan struct {
	params     url.Values
	maxResults int
}

// PageRequest describes one page fetch: the full query string for a given
// pagination offset.
type PageRequest struct {
	Query url.Values
	Start int
}

// NewQueryPlan validates criteria and maps them to the source's query
// parameters. Validation happens here, before any network activity.
func NewQueryPlan(criteria models.SearchCriteria) (*QueryPlan, error) {

	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("keywords", criteria.Keywords)

	if criteria.Location != "" {
		params.Set("location", criteria.Location)
	}

	timeFilter, err := timeFilterFrom(criteria.TimeWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidCriteria, err)
	}
	if timeFilter != "" {
		params.Set("f_TPR", timeFilter)
	}

	if len(criteria.WorkModels) > 0 {
		codes := ""
		for i, model := range criteria.WorkModels {
			code, err := workModelFrom(model)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrInvalidCriteria, err)
			}
			if i > 0 {
				codes += ","
			}
			codes += code
		}
		params.Set("f_WT", codes)
	}

	if len(criteria.JobTypes) > 0 {
		codes := ""
		for i, jobType := range criteria.JobTypes {
			code, err := jobTypeFrom(jobType)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrInvalidCriteria, err)
			}
			if i > 0 {
				codes += ","
			}
			codes += code
		}
		params.Set("f_JT", codes)
	}

	return &QueryPlan{params: params, maxResults: criteria.MaxResults}, nil
}

// PageRequest returns the descriptor for the given zero-based page, or
// ErrTooDeepPagination past the source's offset ceiling.
func (q *QueryPlan) PageRequest(page int) (PageRequest, error) {

	if page < 0 {
		return PageRequest{}, fmt.Errorf("page must be non-negative")
	}

	start := page * PageSize
	if start >= MaxStart {
		return PageRequest{}, ErrTooDeepPagination
	}

	query := url.Values{}
	for key, values := range q.params {
		query[key] = values
	}
	query.Set("start", strconv.Itoa(start))

	return PageRequest{Query: query, Start: start}, nil
}

// MaxResults is the caller's cap carried through translation.
func (q *QueryPlan) MaxResults() int {
	return q.maxResults
}

// MaxPages is the hard page-count ceiling implied by the source's offset
// limit. Protects against infinite pagination on a source anomaly.
func (q *QueryPlan) MaxPages() int {
	return MaxStart / PageSize
}
