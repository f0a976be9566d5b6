package services

import (
	"sort"

	"github.com/linkedscout/linkedscout/internal/domain/models"
)

// RankByRecency orders listings most recent first. The sort is stable:
// listings with equal normalized recency keep their relative fetch order,
// and listings whose recency could not be normalized go last, in fetch
// order among themselves.
func RankByRecency(listings []models.JobListing) []models.JobListing {

	sort.SliceStable(listings, func(i, j int) bool {
		left, right := listings[i].PostedAt, listings[j].PostedAt
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	return listings
}
