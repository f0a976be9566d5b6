package services

import (
	"context"
	"testing"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JobService_ReusesCachedRunForIdenticalCriteria(t *testing.T) {

	source := &scriptedSource{pages: []models.PageResult{
		{Listings: listings("1", "2"), LastPage: true},
	}}
	service := NewJobService(NewSearchPipeline(source, source, nil), nil)

	criteria := searchCriteria(100)
	opts := SearchOptions{}

	first, err := service.Search(context.Background(), criteria, opts)
	require.NoError(t, err)
	require.Equal(t, models.RunOK, first.Status)
	fetchesAfterFirst := source.fetches

	second, err := service.Search(context.Background(), criteria, opts)
	require.NoError(t, err)

	assert.Equal(t, fetchesAfterFirst, source.fetches, "cached run must not re-scrape")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, jobIDs(first.Jobs), jobIDs(second.Jobs))
}

func Test_JobService_DoesNotCacheFailedRuns(t *testing.T) {

	source := &scriptedSource{
		pages:    []models.PageResult{{}},
		fetchErr: map[int]error{0: errors.New("connection reset")},
	}
	service := NewJobService(NewSearchPipeline(source, source, nil), nil)

	criteria := searchCriteria(100)

	first, err := service.Search(context.Background(), criteria, SearchOptions{})
	require.NoError(t, err)
	require.Equal(t, models.RunFailed, first.Status)
	assert.Equal(t, 1, source.fetches)

	second, err := service.Search(context.Background(), criteria, SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, source.fetches, "failed run must be retried, not served from cache")
	assert.Equal(t, models.RunFailed, second.Status)
}

func Test_JobService_CacheKeyDistinguishesOnlyNew(t *testing.T) {

	source := &scriptedSource{pages: []models.PageResult{
		{Listings: listings("1"), LastPage: true},
	}}
	history := &stubHistory{known: map[string]bool{"1": true}}
	service := NewJobService(NewSearchPipeline(source, source, history), nil)

	criteria := searchCriteria(100)

	all, err := service.Search(context.Background(), criteria, SearchOptions{OnlyNew: false})
	require.NoError(t, err)
	assert.Len(t, all.Jobs, 1)

	onlyNew, err := service.Search(context.Background(), criteria, SearchOptions{OnlyNew: true})
	require.NoError(t, err)

	assert.Empty(t, onlyNew.Jobs)
	assert.Equal(t, 2, source.fetches)
}

func Test_JobService_SkipsDisabledAlerts(t *testing.T) {

	source := &scriptedSource{pages: []models.PageResult{
		{Listings: listings("1"), LastPage: true},
	}}
	service := NewJobService(NewSearchPipeline(source, source, nil), nil)

	alert := models.SavedAlert{Name: "paused", Criteria: searchCriteria(100), Enabled: false}

	result, err := service.RunAlert(context.Background(), alert, SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, models.RunOK, result.Status)
	assert.Empty(t, result.Jobs)
	assert.Zero(t, source.fetches)
}
