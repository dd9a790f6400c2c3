package utils

import (
	"strings"
)

// Slugify lowercases a course code into the course document id, collapsing
// whitespace runs to single hyphens.
func Slugify(code string) string {
	s := strings.ToLower(strings.TrimSpace(code))
	return strings.Join(strings.Fields(s), "-")
}

// ValidCourseID rejects identifiers that would corrupt the object-storage
// paths derived from them. Must be checked before any write.
func ValidCourseID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, "/\\")
}
