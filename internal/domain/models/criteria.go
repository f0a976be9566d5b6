package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrInvalidCriteria is returned for criteria that fail validation. It is
// always reported before any network activity happens.
var ErrInvalidCriteria = errors.New("invalid search criteria")

var validate = validator.New()

type TimeWindow string

const (
	Last24Hours TimeWindow = "24h"
	LastWeek    TimeWindow = "7d"
	LastMonth   TimeWindow = "30d"
	AnyTime     TimeWindow = "any"
)

func ToTimeWindow(s string) (TimeWindow, error) {
	switch s {
	case "24h", "1d":
		return Last24Hours, nil
	case "7d", "1w":
		return LastWeek, nil
	case "30d", "1m":
		return LastMonth, nil
	case "any", "":
		return AnyTime, nil
	default:
		return "", fmt.Errorf("%w: unknown time window %q", ErrInvalidCriteria, s)
	}
}

type WorkModel string

const (
	OnSite WorkModel = "on_site"
	Remote WorkModel = "remote"
	Hybrid WorkModel = "hybrid"
)

func ToWorkModel(s string) (WorkModel, error) {
	switch WorkModel(s) {
	case OnSite, Remote, Hybrid:
		return WorkModel(s), nil
	default:
		return "", fmt.Errorf("%w: unknown work model %q", ErrInvalidCriteria, s)
	}
}

type JobType string

const (
	FullTime   JobType = "full_time"
	PartTime   JobType = "part_time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
	Temporary  JobType = "temporary"
	Volunteer  JobType = "volunteer"
)

func ToJobType(s string) (JobType, error) {
	switch JobType(s) {
	case FullTime, PartTime, Contract, Internship, Temporary, Volunteer:
		return JobType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown job type %q", ErrInvalidCriteria, s)
	}
}

const DefaultMaxResults = 100

// SearchCriteria describes one job search. Empty WorkModels or JobTypes means
// "any". MaxResults bounds the number of unique listings returned, not the
// number of pages fetched.
type SearchCriteria struct {
	Keywords   string       `yaml:"keywords"`
	Location   string       `yaml:"location"`
	TimeWindow TimeWindow   `yaml:"time_window"`
	WorkModels []WorkModel  `yaml:"work_models,omitempty"`
	JobTypes   []JobType    `yaml:"job_types,omitempty"`
	MaxResults int          `yaml:"max_results" validate:"min=1,max=1000"`
}

func NewSearchCriteria(keywords, location string, window TimeWindow, workModels []WorkModel,
	jobTypes []JobType, maxResults int) (SearchCriteria, error) {

	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	criteria := SearchCriteria{
		Keywords:   keywords,
		Location:   location,
		TimeWindow: window,
		WorkModels: workModels,
		JobTypes:   jobTypes,
		MaxResults: maxResults,
	}
	if err := criteria.Validate(); err != nil {
		return SearchCriteria{}, err
	}
	return criteria, nil
}

func (c SearchCriteria) Validate() error {

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: max_results must be between 1 and 1000, got %d",
			ErrInvalidCriteria, c.MaxResults)
	}

	if _, err := ToTimeWindow(string(c.TimeWindow)); err != nil {
		return err
	}

	for _, model := range c.WorkModels {
		if _, err := ToWorkModel(string(model)); err != nil {
			return err
		}
	}

	for _, jobType := range c.JobTypes {
		if _, err := ToJobType(string(jobType)); err != nil {
			return err
		}
	}

	return nil
}
