package linkedin

import (
	"testing"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		Keywords:   "golang",
		Location:   "Berlin",
		TimeWindow: models.LastWeek,
		WorkModels: []models.WorkModel{models.Remote, models.Hybrid},
		JobTypes:   []models.JobType{models.FullTime, models.Contract},
		MaxResults: 50,
	}
}

func Test_QueryPlan_TranslatesCriteria(t *testing.T) {

	plan, err := NewQueryPlan(validCriteria())
	require.NoError(t, err)

	page, err := plan.PageRequest(0)
	require.NoError(t, err)

	assert.Equal(t, "golang", page.Query.Get("keywords"))
	assert.Equal(t, "Berlin", page.Query.Get("location"))
	assert.Equal(t, "r604800", page.Query.Get("f_TPR"))
	assert.Equal(t, "2,3", page.Query.Get("f_WT"))
	assert.Equal(t, "F,C", page.Query.Get("f_JT"))
	assert.Equal(t, "0", page.Query.Get("start"))
	assert.Equal(t, 0, page.Start)
}

func Test_QueryPlan_IsDeterministic(t *testing.T) {

	first, err := NewQueryPlan(validCriteria())
	require.NoError(t, err)
	second, err := NewQueryPlan(validCriteria())
	require.NoError(t, err)

	pageA, _ := first.PageRequest(2)
	pageB, _ := second.PageRequest(2)

	assert.Equal(t, pageA.Query.Encode(), pageB.Query.Encode())
	assert.Equal(t, 50, pageA.Start)
}

func Test_QueryPlan_OmitsEmptyFilters(t *testing.T) {

	criteria := models.SearchCriteria{
		Keywords:   "python",
		TimeWindow: models.AnyTime,
		MaxResults: 10,
	}

	plan, err := NewQueryPlan(criteria)
	require.NoError(t, err)

	page, err := plan.PageRequest(0)
	require.NoError(t, err)

	_, hasTime := page.Query["f_TPR"]
	_, hasWork := page.Query["f_WT"]
	_, hasType := page.Query["f_JT"]
	_, hasLocation := page.Query["location"]
	assert.False(t, hasTime)
	assert.False(t, hasWork)
	assert.False(t, hasType)
	assert.False(t, hasLocation)
}

func Test_QueryPlan_RejectsInvalidCriteria(t *testing.T) {

	criteria := validCriteria()
	criteria.MaxResults = 1001

	_, err := NewQueryPlan(criteria)
	assert.ErrorIs(t, err, models.ErrInvalidCriteria)

	criteria = validCriteria()
	criteria.WorkModels = []models.WorkModel{"space"}

	_, err = NewQueryPlan(criteria)
	assert.ErrorIs(t, err, models.ErrInvalidCriteria)
}

func Test_QueryPlan_EnforcesPaginationCeiling(t *testing.T) {

	plan, err := NewQueryPlan(validCriteria())
	require.NoError(t, err)

	last, err := plan.PageRequest(plan.MaxPages() - 1)
	require.NoError(t, err)
	assert.Equal(t, MaxStart-PageSize, last.Start)

	_, err = plan.PageRequest(plan.MaxPages())
	assert.True(t, errors.Is(err, ErrTooDeepPagination))
}
