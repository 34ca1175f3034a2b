package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/haiku/internal/haiku"
	"github.com/harrison/haiku/internal/models"
)

var pond = haiku.MatchResult{
	Found:  true,
	Start:  2,
	Lines:  [3]string{"An old silent pond", "A frog jumps into the pond", "Splash silence again"},
	Counts: [3]int{5, 7, 5},
}

func TestNewRenderer_FallsBackToText(t *testing.T) {
	assert.Equal(t, FormatText, NewRenderer(&bytes.Buffer{}, "yaml").Format())
	assert.Equal(t, FormatJSON, NewRenderer(&bytes.Buffer{}, "json").Format())
}

func TestOutcomes_SingleFound(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.Outcomes([]models.ScanOutcome{{Source: "stdin", Result: pond}}, nil))

	assert.Equal(t, "An old silent pond\nA frog jumps into the pond\nSplash silence again\n", buf.String())
}

func TestOutcomes_SingleNotFoundWithTally(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	tally := 1245

	require.NoError(t, r.Outcomes([]models.ScanOutcome{{Source: "stdin"}}, &tally))

	assert.Equal(t, NoHaikuMessage+"\n\nHaikus detected: 1245\n", buf.String())
}

func TestOutcomes_MultipleSourcesAreLabelled(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	outcomes := []models.ScanOutcome{
		{Source: "a.txt", Result: pond},
		{Source: "b.txt"},
		{Source: "c.txt", Err: errors.New("permission denied")},
	}
	require.NoError(t, r.Outcomes(outcomes, nil))

	out := buf.String()
	assert.Contains(t, out, "── a.txt\nAn old silent pond\n")
	assert.Contains(t, out, "── b.txt\n"+NoHaikuMessage+"\n")
	assert.Contains(t, out, "── c.txt\nError: permission denied\n")
	assert.Less(t, strings.Index(out, "a.txt"), strings.Index(out, "b.txt"))
}

func TestOutcomes_Color(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	r.SetColor(true)

	require.NoError(t, r.Outcomes([]models.ScanOutcome{{Source: "stdin", Result: pond}}, nil))

	assert.Contains(t, buf.String(), "\x1b[1m")
	assert.Contains(t, buf.String(), "An old silent pond")
}

func TestOutcomes_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatJSON)
	tally := 1246

	outcomes := []models.ScanOutcome{
		{Source: "a.txt", Result: pond, Detection: &models.Detection{ID: "abc"}},
		{Source: "b.txt"},
		{Source: "c.txt", Err: errors.New("boom")},
	}
	require.NoError(t, r.Outcomes(outcomes, &tally))

	var doc struct {
		Results []struct {
			Source string   `json:"source"`
			Found  bool     `json:"found"`
			Lines  []string `json:"lines"`
			Counts []int    `json:"counts"`
			Start  *int     `json:"start"`
			ID     string   `json:"id"`
			Error  string   `json:"error"`
		} `json:"results"`
		Tally *int `json:"tally"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 3)

	first := doc.Results[0]
	assert.True(t, first.Found)
	assert.Equal(t, pond.Lines[:], first.Lines)
	assert.Equal(t, []int{5, 7, 5}, first.Counts)
	require.NotNil(t, first.Start)
	assert.Equal(t, 2, *first.Start)
	assert.Equal(t, "abc", first.ID)

	assert.False(t, doc.Results[1].Found)
	assert.Nil(t, doc.Results[1].Start)
	assert.Empty(t, doc.Results[1].Lines)

	assert.Equal(t, "boom", doc.Results[2].Error)

	require.NotNil(t, doc.Tally)
	assert.Equal(t, 1246, *doc.Tally)
}

func TestCounts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.Counts(haiku.Analyze("An old silent pond. Splash!")))

	assert.Equal(t, "  1   5  An old silent pond\n  2   1  Splash\n", buf.String())
}

func TestCounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Counts(nil))
	assert.Equal(t, "No lines found\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).Counts(nil))
	assert.JSONEq(t, `{"lines": []}`, buf.String())
}

func TestCounts_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).Counts(haiku.Analyze("Hello there")))
	assert.JSONEq(t, `{"lines": [{"text": "Hello there", "syllables": 3}]}`, buf.String())
}

func TestDetections(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	d := models.Detection{
		ID:         "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		Source:     "poem.txt",
		Lines:      pond.Lines[:],
		Counts:     []int{5, 7, 5},
		DetectedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, r.Detections([]models.Detection{d}, 1246))

	out := buf.String()
	assert.Contains(t, out, "1b4e28ba  5-7-5  poem.txt")
	assert.Contains(t, out, "  A frog jumps into the pond\n")
	assert.True(t, strings.HasSuffix(out, "Haikus detected: 1246\n"))
}

func TestDetections_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Detections(nil, 1245))
	assert.Equal(t, "No haiku recorded yet\n\nHaikus detected: 1245\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).Detections(nil, 1245))
	assert.JSONEq(t, `{"detections": [], "tally": 1245}`, buf.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1b4e28ba", shortID("1b4e28ba-2fa1-11d2-883f-0016d3cca427"))
	assert.Equal(t, "plain", shortID("plain"))
}

func TestColorEnabled_NonTerminals(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var nilFile *os.File
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
	assert.False(t, ColorEnabled(w), "a pipe is not a terminal")
	assert.False(t, ColorEnabled(nilFile))
	assert.False(t, ColorEnabled(nil))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(w))
}
