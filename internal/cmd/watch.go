package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/haiku/internal/config"
	"github.com/harrison/haiku/internal/detector"
	"github.com/harrison/haiku/internal/display"
	"github.com/harrison/haiku/internal/haiku"
	"github.com/harrison/haiku/internal/models"
	"github.com/harrison/haiku/internal/source"
	"github.com/harrison/haiku/internal/watch"
)

// NewWatchCommand creates the 'haiku watch' command
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Rescan a file every time it is saved",
		Long: `Watch a text or Markdown file and rescan it on every save, printing the
result each time. A haiku is recorded in history only when it differs
from the last one found. Stop with Ctrl+C.

Examples:
  haiku watch draft.md
  haiku watch notes.txt --debounce 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Delay used to coalesce rapid saves (default from config)")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, debounce time.Duration) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !cmd.Flags().Changed("debounce") {
		debounce = a.cfg.Watch.Debounce
	}

	fw, err := watch.New(path, debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	r := a.renderer(cmd)
	rescan := newRescanner(a.detector(), a.log, a.cfg, fw.Path())

	a.log.LogInfo(fmt.Sprintf("watching %s", fw.Path()))

	onChange := func() {
		outcome := rescan.scan(ctx)
		if r.Format() == display.FormatText {
			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Faint).Sprintf("[%s] %s", time.Now().Format("15:04:05"), path))
		}
		if err := r.Outcomes([]models.ScanOutcome{outcome}, nil); err != nil {
			a.log.LogError(fmt.Sprintf("render results: %v", err))
		}
	}
	onError := func(err error) {
		a.log.LogWarn(err.Error())
	}

	return fw.Run(ctx, onChange, onError)
}

// rescanner scans one file repeatedly and records a haiku only when it
// differs from the previous one.
type rescanner struct {
	det  *detector.Detector
	log  Logger
	cfg  *config.Config
	path string
	last [haiku.WindowSize]string
	seen bool
}

func newRescanner(det *detector.Detector, log Logger, cfg *config.Config, path string) *rescanner {
	return &rescanner{det: det, log: log, cfg: cfg, path: path}
}

func (rs *rescanner) scan(ctx context.Context) models.ScanOutcome {
	in, err := source.ReadFile(rs.path, rs.cfg.MaxTextLength)
	var outcome models.ScanOutcome
	if err != nil {
		outcome = models.ScanOutcome{Source: rs.path, Err: err}
	} else {
		outcome = rs.det.ScanInput(in)
	}

	if outcome.Found() && rs.seen && outcome.Result.Lines == rs.last {
		rs.log.LogScan(outcome)
		return outcome
	}

	outcomes := []models.ScanOutcome{outcome}
	if err := rs.det.Record(ctx, outcomes); err != nil {
		// not remembered, so the next save retries the record
		rs.log.LogError(err.Error())
		return outcomes[0]
	}
	if outcomes[0].Detection != nil {
		rs.last = outcome.Result.Lines
		rs.seen = true
	}
	return outcomes[0]
}
