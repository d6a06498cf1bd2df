package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/tui"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

const shellPrompt = "samplechart> "

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Drive the chart widget from an interactive prompt",
		Long: `Start an interactive prompt bound to one chart widget.

Select a sample size, load it, then inspect the points, bounds or an
ASCII rendition of the chart. Type help for the list of commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return runShell(cmd, cmdCtx.Widget)
		},
	}
}

func runShell(cmd *cobra.Command, w *widget.Widget) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     shellHistoryFile(),
		AutoComplete:    newShellCompleter(w.SampleSizes()),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "samplechart shell")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type help for commands, quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	sh := &shell{widget: w, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := sh.exec(ctx, line); quit {
			return nil
		}
	}
}

// shell interprets one line at a time against a widget.
type shell struct {
	widget *widget.Widget
	out    io.Writer
	errOut io.Writer
}

// exec runs line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch strings.ToLower(parts[0]) {
	case "quit", "exit":
		return true

	case "help":
		printShellHelp(s.out)

	case "sizes":
		current := s.widget.SampleSize()
		for _, size := range s.widget.SampleSizes() {
			marker := " "
			if size == current {
				marker = "*"
			}
			_, _ = fmt.Fprintf(s.out, "%s %s\n", marker, size)
		}

	case "size":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "sample size: %s\n", s.widget.SampleSize())
			return false
		}
		s.widget.SelectSampleSize(parts[1])

	case "load":
		if len(parts) > 1 {
			s.widget.SelectSampleSize(parts[1])
		}
		st, err := loadSize(ctx, s.widget, "")
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(s.out, "loaded %d points for %s\n", len(st.Points), st.SampleSize)

	case "table":
		st := s.widget.State()
		if !st.HasData {
			_, _ = fmt.Fprintln(s.out, "no data yet: run load first")
			return false
		}
		_ = renderTable(s.out, st)

	case "bounds":
		_, _ = fmt.Fprintln(s.out, formatBounds(s.widget.State().Bounds))

	case "chart":
		st := s.widget.State()
		_, _ = fmt.Fprintln(s.out, tui.Plot(st.Points, st.Bounds, plotConfig(s.out)))

	case "error":
		if msg := s.widget.State().ErrMessage(); msg != "" {
			_, _ = fmt.Fprintln(s.out, msg)
		} else {
			_, _ = fmt.Fprintln(s.out, "no error")
		}

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type help for commands)\n", parts[0])
	}
	return false
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  help            Show this help message
  sizes           List the sample sizes (* marks the selection)
  size [name]     Show or change the selected sample size
  load [name]     Fetch the dataset for the selected (or named) size
  table           List the loaded points
  bounds          Show the axis bounds
  chart           Draw the loaded points
  error           Show the last fetch error
  quit / exit     Exit the shell
`
	_, _ = fmt.Fprintln(w, help)
}

func newShellCompleter(sizes []string) *readline.PrefixCompleter {
	sizeItems := make([]readline.PrefixCompleterInterface, 0, len(sizes))
	for _, size := range sizes {
		sizeItems = append(sizeItems, readline.PcItem(size))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("sizes"),
		readline.PcItem("size", sizeItems...),
		readline.PcItem("load", sizeItems...),
		readline.PcItem("table"),
		readline.PcItem("bounds"),
		readline.PcItem("chart"),
		readline.PcItem("error"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

// plotConfig drops the series color when w does not render ANSI colors.
func plotConfig(w io.Writer) tui.PlotConfig {
	cfg := tui.DefaultPlotConfig()
	if termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		cfg.Color = asciigraph.Default
	}
	return cfg
}

// shellHistoryFile returns the history path under the user cache directory,
// or "" (no history) when there is none.
func shellHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "samplechart")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "shell_history")
}
