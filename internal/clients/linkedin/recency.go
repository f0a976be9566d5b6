package linkedin

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative-age forms the source uses in place of a timestamp. Conversion to
// an absolute time is lossy, which is why the raw value is always kept on
// the listing alongside the normalized one.
var relativePatterns = []struct {
	re       *regexp.Regexp
	subtract func(now time.Time, n int) time.Time
}{
	{regexp.MustCompile(`(\d+)\s*minute`), func(now time.Time, n int) time.Time {
		return now.Add(-time.Duration(n) * time.Minute)
	}},
	{regexp.MustCompile(`(\d+)\s*hour`), func(now time.Time, n int) time.Time {
		return now.Add(-time.Duration(n) * time.Hour)
	}},
	{regexp.MustCompile(`(\d+)\s*day`), func(now time.Time, n int) time.Time {
		return now.AddDate(0, 0, -n)
	}},
	{regexp.MustCompile(`(\d+)\s*week`), func(now time.Time, n int) time.Time {
		return now.AddDate(0, 0, -7*n)
	}},
	{regexp.MustCompile(`(\d+)\s*month`), func(now time.Time, n int) time.Time {
		return now.AddDate(0, -n, 0)
	}},
}

var justNowPattern = regexp.MustCompile(`just now|moments ago`)

// parseRecency normalizes either an absolute timestamp (the datetime
// attribute of a time element) or a relative-age string. Returns nil when
// the value fits neither form.
func parseRecency(raw string, now time.Time) *time.Time {

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t := parseTimestamp(raw); t != nil {
		return t
	}

	return parseRelativeAge(raw, now)
}

func parseTimestamp(raw string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func parseRelativeAge(raw string, now time.Time) *time.Time {

	text := strings.ToLower(raw)

	if justNowPattern.MatchString(text) {
		return &now
	}

	for _, pattern := range relativePatterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		t := pattern.subtract(now, n)
		return &t
	}

	return nil
}
