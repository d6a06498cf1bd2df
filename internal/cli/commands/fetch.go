package commands

import (
	"github.com/spf13/cobra"
)

// FetchOptions holds options for the fetch command.
type FetchOptions struct {
	Format string
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch [sample-size]",
		Short: "Fetch a dataset and print its points",
		Long: `Fetch the dataset for a sample size from the configured data source,
pair its columns into points and print them with the axis bounds.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown format

Use --output to override: auto, text, markdown, json, csv`,
		Example: `  # Fetch the default sample size
  samplechart fetch

  # Fetch the large dataset as JSON
  samplechart fetch large --output json

  # Read from a directory of dataset files
  samplechart fetch medium --source file --dir ./datasets`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSampleSizes,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format for this command (overrides --output)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, opts *FetchOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var size string
	if len(args) > 0 {
		size = args[0]
	}

	st, err := loadSize(cmd.Context(), cmdCtx.Widget, size)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = cmdCtx.Cfg.OutputFormat
	}
	return renderState(cmd.OutOrStdout(), st, resolveFormat(format, cmd.OutOrStdout()))
}
