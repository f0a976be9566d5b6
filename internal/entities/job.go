package entities

import "time"

// JobRecord is the run-history row for one listing. FirstSeenAt/LastSeenAt
// track when the identity was first and most recently observed across runs.
type JobRecord struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Company     string
	Location    string
	URL         string
	WorkModel   string
	PostedRaw   string
	PostedAt    *time.Time `gorm:"index"`
	Salary      string
	JobType     string
	ScrapedAt   time.Time
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}
