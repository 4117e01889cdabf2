package content

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL identifier of a title: lowercase, every run of characters
// outside [a-z0-9] becomes one "-", leading and trailing "-" are trimmed.
// Different titles may collapse to the same slug; nothing here checks uniqueness.
func Slugify(text string) string {
	lowered := strings.ToLower(text)
	return strings.Trim(nonSlugRun.ReplaceAllString(lowered, "-"), "-")
}
