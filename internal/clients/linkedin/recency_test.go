package linkedin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseRecency(t *testing.T) {

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw      string
		expected *time.Time
	}{
		{"2026-08-20", timePtr(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))},
		{"2026-08-20T09:30:00Z", timePtr(time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC))},
		{"30 minutes ago", timePtr(now.Add(-30 * time.Minute))},
		{"3 hours ago", timePtr(now.Add(-3 * time.Hour))},
		{"2 days ago", timePtr(now.AddDate(0, 0, -2))},
		{"1 week ago", timePtr(now.AddDate(0, 0, -7))},
		{"4 weeks ago", timePtr(now.AddDate(0, 0, -28))},
		{"2 months ago", timePtr(now.AddDate(0, -2, 0))},
		{"just now", timePtr(now)},
		{"moments ago", timePtr(now)},
		{"Just Now", timePtr(now)},
		{"", nil},
		{"yesterday-ish", nil},
		{"posted recently", nil},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			got := parseRecency(test.raw, now)
			if test.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*test.expected), "got %v, want %v", got, test.expected)
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
