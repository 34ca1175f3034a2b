package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for haiku
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haiku",
		Short: "Find accidental haiku hiding in ordinary text",
		Long: `Haiku splits text into lines at sentence punctuation and line breaks,
estimates the syllables in each line, and looks for three consecutive
lines that fit the 5-7-5 pattern (each within one syllable).

Text can come from arguments, standard input, or files (plain text and
Markdown). Detections are kept in a local history database.`,
		Version: Version,
		// main prints the error; silence cobra's copy and the usage text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: $HAIKU_HOME/.haiku/config.yaml)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringP("output", "o", "", "Output format: text, json")
	flags.Bool("json", false, "Shorthand for --output json")
	flags.Int("max-concurrency", 0, "Maximum number of files scanned at once")
	flags.Bool("no-history", false, "Do not record or read detection history")

	// Add subcommands
	cmd.AddCommand(NewDetectCommand())
	cmd.AddCommand(NewCountCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}
