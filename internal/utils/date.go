package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
)

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
// An empty string yields fallback.
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}

// FormatDate renders t in the YYYY-MM-DD form used by responses.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(constants.DateLayout)
}
