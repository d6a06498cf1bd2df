package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/chart"
	"github.com/leapstack-labs/samplechart/internal/export"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	SampleSize string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Load a dataset and write it to a file",
		Long: `Load a dataset and write it out. The format follows the file extension:

  .xlsx  workbook with the points and a native line chart
  .svg   the rendered chart
  .png   the rendered chart`,
		Example: `  # Workbook for the medium dataset
  samplechart export medium.xlsx --size medium

  # Chart image of the default size
  samplechart export chart.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SampleSize, "size", "s", "", "Sample size to export (default: default_sample_size)")
	_ = cmd.RegisterFlagCompletionFunc("size", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return getConfig().SampleSizes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command, path string, opts *ExportOptions) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "xlsx" {
		if _, err := chart.ParseFormat(ext); err != nil {
			return fmt.Errorf("cannot export to %s: %w", path, err)
		}
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := loadSize(cmd.Context(), cmdCtx.Widget, opts.SampleSize)
	if err != nil {
		return err
	}

	if err := writeExport(path, ext, cmdCtx.Widget, st); err != nil {
		return err
	}

	cmdCtx.Logger.Debug("exported dataset", "path", path, "points", len(st.Points))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d points (%s) to %s\n", len(st.Points), st.SampleSize, path)
	return nil
}

func writeExport(path, ext string, w *widget.Widget, st widget.State) error {
	if ext == "xlsx" {
		return export.WriteFile(path, export.Data{
			SampleSize: st.SampleSize,
			Points:     st.Points,
			Bounds:     st.Bounds,
		})
	}

	format, err := chart.ParseFormat(ext)
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is the user's chosen output file
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := w.Chart().Render(f, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
