package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/haiku/internal/filelock"
	"github.com/harrison/haiku/internal/models"
)

// Export formats
const (
	ExportYAML = "yaml"
	ExportJSON = "json"
)

// exportDocument is the file written by 'haiku export'
type exportDocument struct {
	Tally      int                `json:"tally" yaml:"tally"`
	Detections []models.Detection `json:"detections" yaml:"detections"`
}

// NewExportCommand creates the 'haiku export' command
func NewExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write recorded haiku to a YAML or JSON file",
		Long: `Write every recorded haiku and the tally to a file. The format follows
the file extension (.json for JSON, anything else for YAML) unless
--format is given. The file is written atomically under a lock so
concurrent exports never interleave.

Examples:
  haiku export haiku.yaml
  haiku export backup.out --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Export format: yaml, json (default from extension)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, format string) error {
	format, err := exportFormat(path, format)
	if err != nil {
		return err
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
	detections, err := a.store.List(ctx, 0)
	if err != nil {
		return err
	}
	if detections == nil {
		detections = []models.Detection{}
	}
	tally, err := a.tally(ctx)
	if err != nil {
		return err
	}

	data, err := encodeExport(exportDocument{Tally: *tally, Detections: detections}, format)
	if err != nil {
		return err
	}

	if err := filelock.Write(ctx, path, data); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}

	a.log.LogInfo(fmt.Sprintf("exported %d detection(s) to %s", len(detections), path))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d haiku to %s\n", len(detections), path)
	return nil
}

// exportFormat picks the export format from the flag or the file extension
func exportFormat(path, format string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return ExportJSON, nil
		}
		return ExportYAML, nil
	}

	switch strings.ToLower(format) {
	case ExportYAML, "yml":
		return ExportYAML, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q, must be one of: yaml, json", format)
	}
}

func encodeExport(doc exportDocument, format string) ([]byte, error) {
	if format == ExportJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}
