package haiku

import "strings"

// Segment splits text into candidate lines, in order of appearance.
// Lines are separated by runs of '.', '!', '?' and '\n'; each line is
// trimmed and empty lines are dropped. Casing and inner punctuation are kept.
func Segment(text string) []string {
	parts := strings.FieldsFunc(text, isTerminator)

	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '\n':
		return true
	}
	return false
}
