// Package cli provides the command-line interface for samplechart.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/cli/commands"
	"github.com/leapstack-labs/samplechart/internal/cli/config"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "samplechart",
		Short: "samplechart - sample size chart widget",
		Long: `samplechart fetches an (x, y) dataset for a chosen sample size and draws
it as a line chart, optionally listing the points in a table.

The widget runs in the browser (serve), in the terminal (tui, shell) or
as one-shot commands (fetch, export).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", slog.String("path", configFile))
			}
			logger.Debug("data source", slog.String("type", cfg.Source.Type))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./samplechart.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json|csv)")
	pf.String("source", "", "Data source type")
	pf.String("url", "", "Base URL of the http data source")
	pf.String("dir", "", "Dataset directory of the file source")
	pf.String("path", "", "Workbook path of the xlsx source")
	pf.String("script", "", "Script path of the starlark source")
	pf.String("driver", "", "SQL driver (sqlite|postgres|duckdb)")
	pf.String("dsn", "", "SQL data source name")
	pf.Int64("seed", 0, "Seed for generated datasets")
	pf.String("sample-size", "", "Initially selected sample size")
	pf.StringSlice("sample-sizes", nil, "Sample sizes offered by the selector")
	pf.Duration("timeout", 0, "Timeout for each dataset fetch")
	pf.Bool("strict-columns", true, "Reject datasets whose columns differ in length")
	pf.Bool("show-table", true, "List the points in a table under the chart")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for source flag
	_ = rootCmd.RegisterFlagCompletionFunc("source", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return source.List(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewFetchCommand())
	rootCmd.AddCommand(commands.NewTUICommand())
	rootCmd.AddCommand(commands.NewShellCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger builds the text logger written to the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command; cancelling ctx stops long-running commands.
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for samplechart.

To load completions:

Bash:
  $ source <(samplechart completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ samplechart completion bash > /etc/bash_completion.d/samplechart
  # macOS:
  $ samplechart completion bash > $(brew --prefix)/etc/bash_completion.d/samplechart

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ samplechart completion zsh > "${fpath[1]}/_samplechart"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ samplechart completion fish | source

  # To load completions for each session, execute once:
  $ samplechart completion fish > ~/.config/fish/completions/samplechart.fish

PowerShell:
  PS> samplechart completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> samplechart completion powershell > samplechart.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
