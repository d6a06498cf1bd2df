package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/cli/config"
	"github.com/leapstack-labs/samplechart/internal/ui"
	"github.com/leapstack-labs/samplechart/pkg/sources/file"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
	Load      bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the chart widget web UI",
		Long: `Start a local web server hosting the chart widget.

The page offers a sample size selector and a "load data" button. Loaded
points are drawn as a line chart and, when show_table is enabled, listed
in a table underneath. Open pages update live over server-sent events.`,
		Example: `  # Start UI on default port
  samplechart serve

  # Start on custom port without opening a browser
  samplechart serve --port 3000 --no-browser

  # Serve datasets from files and reload them when they change
  samplechart serve --source file --dir ./datasets --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", true, "Reload the displayed dataset when its file changes")
	cmd.Flags().Bool("dev", false, "Serve static assets from disk and enable hot reload")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Load, "load", false, "Load the default sample size before serving")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := *getConfig()
	ctx := cmd.Context()

	watchDir := ""
	if cfg.UI.Watch && cfg.Source.Type == file.Name {
		cfg.Source.Watch = true
		watchDir = cfg.Source.Dir
	}

	cmdCtx, cleanup, err := newCommandContext(ctx, &cfg, config.GetLogger(ctx))
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Load {
		if err := cmdCtx.Widget.Submit(ctx); err != nil {
			// The error stays visible on the page.
			cmdCtx.Logger.Warn("initial load failed", "error", err)
		}
	}

	server := ui.NewServer(ui.Config{
		Widget:   cmdCtx.Widget,
		Port:     cfg.UI.Port,
		Watch:    watchDir != "",
		WatchDir: watchDir,
		Dev:      cfg.UI.Dev,
		Logger:   cmdCtx.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if cfg.UI.AutoOpen && !opts.NoBrowser {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting UI server on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
