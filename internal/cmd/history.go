package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'haiku history' command group
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded haiku",
		Long: `List haiku recorded by detect and watch, newest first, followed by the
running tally.

Examples:
  haiku history
  haiku history --limit 5 --json
  haiku history clear --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show (0 = all)")

	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	if limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", limit)
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return ErrHistoryDisabled
	}

	ctx := cmd.Context()
	detections, err := a.store.List(ctx, limit)
	if err != nil {
		return err
	}
	tally, err := a.tally(ctx)
	if err != nil {
		return err
	}

	return a.renderer(cmd).Detections(detections, *tally)
}

// newHistoryClearCommand creates the 'haiku history clear' command
func newHistoryClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded haiku",
		Long: `Delete every recorded haiku. The tally returns to its configured
starting value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runHistoryClear(cmd *cobra.Command, yes bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return ErrHistoryDisabled
	}

	output := cmd.OutOrStdout()
	if !yes {
		fmt.Fprintf(output, "This will delete all recorded haiku from %s.\n", a.store.Path())
		if !confirmAction(cmd.InOrStdin(), output) {
			fmt.Fprintln(output, "Operation cancelled.")
			return nil
		}
	}

	deleted, err := a.store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	a.log.LogInfo(fmt.Sprintf("cleared %d detection(s) from history", deleted))
	fmt.Fprintf(output, "Deleted %d recorded haiku.\n", deleted)
	return nil
}

// confirmAction prompts for confirmation on output and reads the answer from in
func confirmAction(in io.Reader, output io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(output, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
