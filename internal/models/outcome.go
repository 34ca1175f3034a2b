package models

import "github.com/harrison/haiku/internal/haiku"

// ScanOutcome is the result of scanning a single input source
type ScanOutcome struct {
	Source    string            // Where the text came from: "stdin", "args" or a file path
	Result    haiku.MatchResult // Scanner result
	Detection *Detection        // Recorded detection, nil when nothing was found
	Err       error             // Error reading or guarding the source
}

// Found reports whether the source produced a haiku
func (o ScanOutcome) Found() bool {
	return o.Err == nil && o.Result.Found
}

// CountFound returns how many outcomes produced a haiku
func CountFound(outcomes []ScanOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Found() {
			n++
		}
	}
	return n
}
