package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJobsRepository(t *testing.T) *Jobs {
	t.Helper()

	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	return NewJobsRepository(dbContext.DB)
}

func historyListing(id, company string) models.JobListing {
	return models.JobListing{
		ID:      id,
		Title:   "Go Developer",
		Company: company,
		URL:     "https://www.linkedin.com/jobs/view/" + id,
	}
}

func Test_Jobs_UpsertCountsNewAndUpdated(t *testing.T) {

	repo := newTestJobsRepository(t)
	ctx := context.Background()

	newCount, updatedCount, err := repo.Upsert(ctx, []models.JobListing{
		historyListing("1", "Initech"),
		historyListing("2", "Globex"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, newCount)
	assert.EqualValues(t, 0, updatedCount)

	newCount, updatedCount, err = repo.Upsert(ctx, []models.JobListing{
		historyListing("2", "Globex"),
		historyListing("3", "Hooli"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, newCount)
	assert.EqualValues(t, 1, updatedCount)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func Test_Jobs_KnownIDs(t *testing.T) {

	repo := newTestJobsRepository(t)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, []models.JobListing{historyListing("1", "Initech")})
	require.NoError(t, err)

	known, err := repo.KnownIDs(ctx, []string{"1", "2"})
	require.NoError(t, err)
	assert.True(t, known["1"])
	assert.False(t, known["2"])

	known, err = repo.KnownIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, known)
}

func Test_Jobs_GetFiltersByCompany(t *testing.T) {

	repo := newTestJobsRepository(t)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, []models.JobListing{
		historyListing("1", "Initech"),
		historyListing("2", "Globex"),
	})
	require.NoError(t, err)

	records, err := repo.Get(ctx, 10, 0, "glob")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Globex", records[0].Company)

	listing := ListingFrom(records[0])
	assert.Equal(t, "2", listing.ID)
	assert.Equal(t, "Globex", listing.Company)
}

func Test_Jobs_RemoveOldPrunesStaleRecords(t *testing.T) {

	repo := newTestJobsRepository(t)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, []models.JobListing{historyListing("1", "Initech")})
	require.NoError(t, err)

	removed, err := repo.RemoveOld(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	removed, err = repo.RemoveOld(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
