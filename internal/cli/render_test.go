package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_Truncate_KeepsMultiByteRunesIntact(t *testing.T) {

	title := "Développeur Go sénior — équipe plateforme"

	out := truncate(title, 10)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 10, len([]rune(out)))
	assert.Equal(t, "Développe…", out)
}

func Test_Truncate_LeavesShortStringsAlone(t *testing.T) {

	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "", truncate("", 5))
}

func Test_RenderJobs_CapsRowsAndReportsRemainder(t *testing.T) {

	var jobs []models.JobListing
	for i := 0; i < maxTableRows+5; i++ {
		jobs = append(jobs, models.JobListing{
			ID:    string(rune('a' + i)),
			Title: "Go Developer",
		})
	}

	var buf strings.Builder
	renderJobs(&buf, jobs)

	assert.Contains(t, buf.String(), "and 5 more jobs")
}
