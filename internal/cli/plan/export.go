package plan

import (
	"fmt"
	"io"
	"os"

	"github.com/pablasso/teco/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a plan as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.OutOrStdout(), args[0], exportFormat, exportOutput)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}

func runExport(out io.Writer, name, formatName, outputPath string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	_, rec, err := loadPlan(ws, name)
	if err != nil {
		return err
	}

	if outputPath == "" {
		return export.Encode(out, rec.Plan, format)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	if err := export.Encode(f, rec.Plan, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	ws.Logger.WithCommand("plan export").WithPlan(name).Info("plan exported", "format", string(format), "path", outputPath)
	fmt.Fprintf(out, "Exported %s to %s\n", name, outputPath)
	return nil
}
