package haiku

import (
	"github.com/harrison/haiku/internal/syllable"
)

const (
	// ShortLine is the syllable target of the first and third lines.
	ShortLine = 5
	// LongLine is the syllable target of the middle line.
	LongLine = 7
	// Tolerance is how far an estimate may stray from its target.
	Tolerance = 1
	// WindowSize is the number of consecutive lines tested together.
	WindowSize = 3
)

// Targets returns the syllable target for each position of a window.
func Targets() [WindowSize]int {
	return [WindowSize]int{ShortLine, LongLine, ShortLine}
}

// MatchResult is the outcome of Scan. The zero value means no haiku was found.
type MatchResult struct {
	Found  bool               `json:"found"`
	Start  int                `json:"start"` // index of the first line among the segmented lines
	Lines  [WindowSize]string `json:"lines"`
	Counts [WindowSize]int    `json:"counts"`
}

// LineCount pairs a segmented line with its estimated syllable count.
type LineCount struct {
	Text      string `json:"text"`
	Syllables int    `json:"syllables"`
}

// Fits reports whether count is within Tolerance of the target for the
// given window position (0, 1 or 2). Out-of-range positions never fit.
func Fits(position, count int) bool {
	if position < 0 || position >= WindowSize {
		return false
	}
	diff := count - Targets()[position]
	if diff < 0 {
		diff = -diff
	}
	return diff <= Tolerance
}

// Scan returns the first window of three consecutive lines in text that
// approximates the 5-7-5 pattern. Windows are tried in ascending start
// order and the first fit wins.
func Scan(text string) MatchResult {
	lines := Segment(text)
	if len(lines) < WindowSize {
		return MatchResult{}
	}

	for start := 0; start+WindowSize <= len(lines); start++ {
		var counts [WindowSize]int
		fits := true
		for pos := range counts {
			counts[pos] = syllable.Estimate(lines[start+pos])
			if !Fits(pos, counts[pos]) {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		result := MatchResult{Found: true, Start: start, Counts: counts}
		copy(result.Lines[:], lines[start:start+WindowSize])
		return result
	}

	return MatchResult{}
}

// Analyze returns every segmented line of text with its syllable estimate.
func Analyze(text string) []LineCount {
	lines := Segment(text)
	counts := make([]LineCount, len(lines))
	for i, line := range lines {
		counts[i] = LineCount{Text: line, Syllables: syllable.Estimate(line)}
	}
	return counts
}
