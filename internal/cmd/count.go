package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/haiku/internal/haiku"
	"github.com/harrison/haiku/internal/source"
)

// NewCountCommand creates the 'haiku count' command
func NewCountCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "count [text...]",
		Short: "Show the estimated syllables of every line",
		Long: `Split text into lines the same way detect does and print the syllable
estimate for each one. Counts that could start or end a haiku are
highlighted on a terminal.

Examples:
  haiku count "An old silent pond" "A frog jumps into the pond"
  haiku count -f draft.md --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File to read instead of arguments or stdin")

	return cmd
}

func runCount(cmd *cobra.Command, args []string, file string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if file != "" && len(args) > 0 {
		return fmt.Errorf("cannot combine --file with text arguments")
	}

	var in source.Input
	switch {
	case file != "":
		in, err = source.ReadFile(file, a.cfg.MaxTextLength)
	case len(args) > 0:
		in, err = source.FromArgs(args, a.cfg.MaxTextLength)
	default:
		in, err = source.FromReader(source.NameStdin, cmd.InOrStdin(), a.cfg.MaxTextLength)
	}
	if err != nil {
		return err
	}

	lines := haiku.Analyze(in.Text)
	a.log.LogDebug(fmt.Sprintf("counted %d line(s) from %s", len(lines), in.Name))

	return a.renderer(cmd).Counts(lines)
}
