package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/haiku/internal/detector"
	"github.com/harrison/haiku/internal/display"
	"github.com/harrison/haiku/internal/models"
	"github.com/harrison/haiku/internal/source"
)

var (
	// ErrNoSourcesScanned is returned when every requested source failed.
	ErrNoSourcesScanned = errors.New("no sources could be scanned")
	// ErrNoHaikuFound is returned by --fail-on-miss when nothing matched.
	ErrNoHaikuFound = errors.New("no haiku found")
)

type detectOptions struct {
	files      []string
	pattern    string
	failOnMiss bool
}

// NewDetectCommand creates the 'haiku detect' command
func NewDetectCommand() *cobra.Command {
	var opts detectOptions

	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Find a 5-7-5 haiku hidden in text",
		Long: `Scan text for three consecutive lines that read as a haiku.

Text is split into lines at '.', '!', '?' and line breaks. Each argument
becomes its own line. With no arguments and no --file, text is read from
standard input.

Examples:
  haiku detect "An old silent pond" "A frog jumps into the pond" "Splash silence again"
  cat notes.txt | haiku detect
  haiku detect -f poems/ -f README.md
  haiku detect -f docs --pattern "**/*.md" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "File, directory or glob to scan (repeatable)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", source.DefaultPattern, "Glob used to select files inside directories")
	cmd.Flags().BoolVar(&opts.failOnMiss, "fail-on-miss", false, "Exit with an error when no haiku is found")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts detectOptions) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	det := a.detector()
	outcomes, err := gatherOutcomes(ctx, cmd, det, args, opts, a.cfg.MaxTextLength)
	if err != nil {
		return err
	}

	if err := det.Record(ctx, outcomes); err != nil {
		return err
	}

	tally, err := a.tally(ctx)
	if err != nil {
		return err
	}

	if err := a.renderer(cmd).Outcomes(outcomes, tally); err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	var failed []string
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o.Source)
		}
	}
	if len(failed) > 0 && len(outcomes) > 1 {
		a.warnings(cmd).Warn(display.WarnFailedSources(failed))
	}

	found := models.CountFound(outcomes)
	a.log.LogDebug(fmt.Sprintf("scanned %d source(s), %d haiku found", len(outcomes), found))

	switch {
	case len(outcomes) > 0 && len(failed) == len(outcomes):
		if len(outcomes) == 1 {
			return outcomes[0].Err
		}
		return ErrNoSourcesScanned
	case opts.failOnMiss && found == 0:
		return ErrNoHaikuFound
	}
	return nil
}

// gatherOutcomes scans arguments, files and, when neither is given, stdin.
// Blank argument or stdin text is rejected before anything is scanned.
func gatherOutcomes(ctx context.Context, cmd *cobra.Command, det *detector.Detector, args []string, opts detectOptions, maxLen int) ([]models.ScanOutcome, error) {
	var outcomes []models.ScanOutcome

	if len(args) > 0 {
		in, err := source.FromArgs(args, maxLen)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, det.ScanInput(in))
	}

	if len(opts.files) > 0 {
		paths, err := source.ExpandPaths(opts.files, opts.pattern)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, det.ScanFiles(ctx, paths)...)
	}

	if len(args) == 0 && len(opts.files) == 0 {
		in, err := source.FromReader(source.NameStdin, cmd.InOrStdin(), maxLen)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, det.ScanInput(in))
	}

	return outcomes, nil
}
