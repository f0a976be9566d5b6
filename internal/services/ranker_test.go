package services

import (
	"testing"
	"time"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func postedListing(id string, postedAt *time.Time) models.JobListing {
	job := listing(id)
	job.PostedAt = postedAt
	return job
}

func Test_RankByRecency_MostRecentFirst(t *testing.T) {

	day := func(offset int) *time.Time {
		ts := time.Date(2026, 8, 20+offset, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	ranked := RankByRecency([]models.JobListing{
		postedListing("old", day(0)),
		postedListing("new", day(3)),
		postedListing("mid", day(1)),
	})

	assert.Equal(t, []string{"new", "mid", "old"}, jobIDs(ranked))
}

func Test_RankByRecency_UnknownRecencyGoesLastInFetchOrder(t *testing.T) {

	ts := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	ranked := RankByRecency([]models.JobListing{
		postedListing("unknown-1", nil),
		postedListing("dated", &ts),
		postedListing("unknown-2", nil),
	})

	assert.Equal(t, []string{"dated", "unknown-1", "unknown-2"}, jobIDs(ranked))
}

func Test_RankByRecency_IsStableOnTies(t *testing.T) {

	ts := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	ranked := RankByRecency([]models.JobListing{
		postedListing("first", &ts),
		postedListing("second", &ts),
		postedListing("third", &ts),
	})

	assert.Equal(t, []string{"first", "second", "third"}, jobIDs(ranked))
}
