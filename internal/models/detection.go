package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/haiku/internal/haiku"
)

// ErrNoHaiku is returned when a Detection is built from a result with no match.
var ErrNoHaiku = errors.New("no haiku in result")

// Detection is a recorded haiku found in a piece of text
type Detection struct {
	ID          string    `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	Lines       []string  `json:"lines" yaml:"lines"`
	Counts      []int     `json:"counts" yaml:"counts"`
	WindowStart int       `json:"window_start" yaml:"window_start"`
	DetectedAt  time.Time `json:"detected_at" yaml:"detected_at"`
}

// NewDetection builds a Detection from a found match.
// Returns ErrNoHaiku if the result holds no match.
func NewDetection(source string, result haiku.MatchResult, at time.Time) (*Detection, error) {
	if !result.Found {
		return nil, ErrNoHaiku
	}

	return &Detection{
		ID:          uuid.New().String(),
		Source:      source,
		Lines:       append([]string(nil), result.Lines[:]...),
		Counts:      append([]int(nil), result.Counts[:]...),
		WindowStart: result.Start,
		DetectedAt:  at.UTC(),
	}, nil
}

// Text returns the haiku as three newline-separated lines
func (d *Detection) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Pattern returns the estimated counts formatted as "5-7-5"
func (d *Detection) Pattern() string {
	parts := make([]string, len(d.Counts))
	for i, c := range d.Counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, "-")
}
