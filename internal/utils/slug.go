package utils

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify turns a display name into the identifier used in project URLs.
// Every run of whitespace becomes a single hyphen.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(name), "-")
}
