package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSearchCriteria_DefaultsMaxResults(t *testing.T) {

	criteria, err := NewSearchCriteria("golang", "", AnyTime, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxResults, criteria.MaxResults)
}

func Test_SearchCriteria_AllowsEmptyKeywordsAndLocation(t *testing.T) {

	_, err := NewSearchCriteria("", "", AnyTime, nil, nil, 10)
	assert.NoError(t, err)
}

func Test_SearchCriteria_RejectsMaxResultsOutOfBounds(t *testing.T) {

	for _, maxResults := range []int{-1, 1001} {
		criteria := SearchCriteria{TimeWindow: AnyTime, MaxResults: maxResults}
		assert.ErrorIs(t, criteria.Validate(), ErrInvalidCriteria)
	}
}

func Test_SearchCriteria_RejectsUnknownEnumValues(t *testing.T) {

	base := SearchCriteria{Keywords: "golang", TimeWindow: AnyTime, MaxResults: 10}

	withWindow := base
	withWindow.TimeWindow = "fortnight"
	assert.ErrorIs(t, withWindow.Validate(), ErrInvalidCriteria)

	withModel := base
	withModel.WorkModels = []WorkModel{"from_home"}
	assert.ErrorIs(t, withModel.Validate(), ErrInvalidCriteria)

	withType := base
	withType.JobTypes = []JobType{"gig"}
	assert.ErrorIs(t, withType.Validate(), ErrInvalidCriteria)
}

func Test_ToTimeWindow_AcceptsAliases(t *testing.T) {

	cases := map[string]TimeWindow{
		"24h": Last24Hours,
		"1d":  Last24Hours,
		"7d":  LastWeek,
		"1w":  LastWeek,
		"30d": LastMonth,
		"1m":  LastMonth,
		"any": AnyTime,
		"":    AnyTime,
	}

	for input, expected := range cases {
		window, err := ToTimeWindow(input)
		require.NoError(t, err)
		assert.Equal(t, expected, window)
	}

	_, err := ToTimeWindow("yesterday")
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}
