// Package detector runs the haiku scanner over user inputs and records what
// it finds. It sits between the CLI and the pure scanner: reading files,
// fanning work out across goroutines and writing detections to history.
package detector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/haiku/internal/haiku"
	"github.com/harrison/haiku/internal/models"
	"github.com/harrison/haiku/internal/source"
)

// Recorder persists detections.
type Recorder interface {
	Record(ctx context.Context, d *models.Detection) error
}

// Logger receives one entry per scanned source.
type Logger interface {
	LogScan(outcome models.ScanOutcome)
}

// Detector scans inputs and records detections.
type Detector struct {
	recorder       Recorder // nil disables recording
	logger         Logger   // nil disables logging
	maxTextLength  int
	maxConcurrency int
	now            func() time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithRecorder records every detection through r.
func WithRecorder(r Recorder) Option {
	return func(d *Detector) { d.recorder = r }
}

// WithLogger logs every scan outcome through l.
func WithLogger(l Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithMaxTextLength bounds the size of each input in bytes (0 = unlimited).
func WithMaxTextLength(n int) Option {
	return func(d *Detector) { d.maxTextLength = n }
}

// WithMaxConcurrency bounds how many files are scanned at once.
func WithMaxConcurrency(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.maxConcurrency = n
		}
	}
}

// WithClock overrides the time source for detection timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		maxConcurrency: 1,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ScanInput guards and scans a single input. A guard failure is returned
// in the outcome's Err; finding nothing is not an error.
func (d *Detector) ScanInput(in source.Input) models.ScanOutcome {
	outcome := models.ScanOutcome{Source: in.Name}
	if err := source.Guard(in.Text, d.maxTextLength); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Result = haiku.Scan(in.Text)
	return outcome
}

// ScanFiles reads and scans every path concurrently. Outcomes are returned
// in the order of paths regardless of completion order. Per-file failures
// are reported in each outcome's Err; a cancelled ctx marks files that had
// not started with ctx.Err().
func (d *Detector) ScanFiles(ctx context.Context, paths []string) []models.ScanOutcome {
	outcomes := make([]models.ScanOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(d.maxConcurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = models.ScanOutcome{Source: path, Err: err}
				return nil
			}
			in, err := source.ReadFile(path, d.maxTextLength)
			if err != nil {
				outcomes[i] = models.ScanOutcome{Source: path, Err: err}
				return nil
			}
			outcomes[i] = d.ScanInput(in)
			return nil
		})
	}
	// workers never return an error
	_ = g.Wait()

	return outcomes
}

// Record turns each found outcome into a Detection, persists it when a
// Recorder is configured and logs every outcome. Outcomes are updated in
// place. The first recording error stops the pass and is returned.
func (d *Detector) Record(ctx context.Context, outcomes []models.ScanOutcome) error {
	for i := range outcomes {
		o := &outcomes[i]
		if o.Found() && o.Detection == nil {
			det, err := models.NewDetection(o.Source, o.Result, d.now())
			if err != nil {
				return err
			}
			if d.recorder != nil {
				if err := d.recorder.Record(ctx, det); err != nil {
					return fmt.Errorf("record detection from %s: %w", o.Source, err)
				}
			}
			o.Detection = det
		}
		if d.logger != nil {
			d.logger.LogScan(*o)
		}
	}
	return nil
}
