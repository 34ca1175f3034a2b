package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/haiku/internal/haiku"
	"github.com/harrison/haiku/internal/models"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NoHaikuMessage is shown when a source holds no haiku.
const NoHaikuMessage = "No haiku found, but continue seeking poetry in everything around you."

// Renderer writes results to an output stream in one format.
type Renderer struct {
	out    io.Writer
	format string
	color  bool
}

// NewRenderer creates a Renderer. Unknown formats fall back to text.
// Color is enabled when out is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer, format string) *Renderer {
	if format != FormatJSON {
		format = FormatText
	}
	return &Renderer{
		out:    out,
		format: format,
		color:  ColorEnabled(out),
	}
}

// SetColor forces color output on or off.
func (r *Renderer) SetColor(enabled bool) {
	r.color = enabled
}

// Format returns the output format in use.
func (r *Renderer) Format() string {
	return r.format
}

// ColorEnabled reports whether w is itself a color-capable terminal.
// Only w's own descriptor is checked, so piping stdout leaves stderr
// colored and redirecting stderr keeps escape codes out of the file.
// NO_COLOR and TERM=dumb turn color off everywhere.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint applies attributes when color is enabled.
func (r *Renderer) paint(s string, attrs ...color.Attribute) string {
	if !r.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

type outcomeJSON struct {
	Source string   `json:"source"`
	Found  bool     `json:"found"`
	Lines  []string `json:"lines,omitempty"`
	Counts []int    `json:"counts,omitempty"`
	Start  *int     `json:"start,omitempty"`
	ID     string   `json:"id,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type outcomesJSON struct {
	Results []outcomeJSON `json:"results"`
	Tally   *int          `json:"tally,omitempty"`
}

// Outcomes renders one result per scanned source. Sources are labelled
// only when there is more than one. tally, when non-nil, is printed last.
func (r *Renderer) Outcomes(outcomes []models.ScanOutcome, tally *int) error {
	if r.format == FormatJSON {
		doc := outcomesJSON{Results: make([]outcomeJSON, 0, len(outcomes)), Tally: tally}
		for _, o := range outcomes {
			doc.Results = append(doc.Results, toOutcomeJSON(o))
		}
		return r.writeJSON(doc)
	}

	var b strings.Builder
	for i, o := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(r.paint("── "+o.Source, color.FgCyan))
			b.WriteString("\n")
		}
		switch {
		case o.Err != nil:
			b.WriteString(r.paint(fmt.Sprintf("Error: %v", o.Err), color.FgRed))
			b.WriteString("\n")
		case o.Result.Found:
			for _, line := range o.Result.Lines {
				b.WriteString(r.paint(line, color.Bold))
				b.WriteString("\n")
			}
		default:
			b.WriteString(r.paint(NoHaikuMessage, color.FgHiBlack))
			b.WriteString("\n")
		}
	}
	if tally != nil {
		b.WriteString("\n")
		b.WriteString(r.paint(fmt.Sprintf("Haikus detected: %d", *tally), color.Faint))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func toOutcomeJSON(o models.ScanOutcome) outcomeJSON {
	j := outcomeJSON{Source: o.Source}
	if o.Err != nil {
		j.Error = o.Err.Error()
		return j
	}
	if !o.Result.Found {
		return j
	}

	start := o.Result.Start
	j.Found = true
	j.Lines = o.Result.Lines[:]
	j.Counts = o.Result.Counts[:]
	j.Start = &start
	if o.Detection != nil {
		j.ID = o.Detection.ID
	}
	return j
}

type countsJSON struct {
	Lines []haiku.LineCount `json:"lines"`
}

// Counts renders the syllable estimate of every segmented line. Estimates
// that fit any window position are highlighted.
func (r *Renderer) Counts(lines []haiku.LineCount) error {
	if r.format == FormatJSON {
		if lines == nil {
			lines = []haiku.LineCount{}
		}
		return r.writeJSON(countsJSON{Lines: lines})
	}

	if len(lines) == 0 {
		_, err := fmt.Fprintln(r.out, "No lines found")
		return err
	}

	var b strings.Builder
	for i, lc := range lines {
		count := fmt.Sprintf("%2d", lc.Syllables)
		if haiku.Fits(0, lc.Syllables) || haiku.Fits(1, lc.Syllables) {
			count = r.paint(count, color.FgGreen)
		}
		fmt.Fprintf(&b, "%3d  %s  %s\n", i+1, count, lc.Text)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

type detectionsJSON struct {
	Detections []models.Detection `json:"detections"`
	Tally      int                `json:"tally"`
}

// Detections renders recorded history followed by the tally.
func (r *Renderer) Detections(detections []models.Detection, tally int) error {
	if r.format == FormatJSON {
		if detections == nil {
			detections = []models.Detection{}
		}
		return r.writeJSON(detectionsJSON{Detections: detections, Tally: tally})
	}

	var b strings.Builder
	if len(detections) == 0 {
		b.WriteString("No haiku recorded yet\n")
	}
	for i, d := range detections {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("%s  %s  %s  %s", d.DetectedAt.Local().Format("2006-01-02 15:04"), shortID(d.ID), d.Pattern(), d.Source)
		b.WriteString(r.paint(header, color.FgCyan))
		b.WriteString("\n")
		for _, line := range d.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(r.paint(fmt.Sprintf("Haikus detected: %d", tally), color.Faint))
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

// shortID trims a uuid to its first group for compact listings.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func (r *Renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
