package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the chart widget in the terminal",
		Long: `Run the chart widget as a full-screen terminal application.

Keys:
  left/right, tab  change the sample size
  enter, r         load data for the selected size
  q, esc           quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(cmd.Context(), cmdCtx.Widget)
		},
	}
}
