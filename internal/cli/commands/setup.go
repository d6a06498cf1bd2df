package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/cli/config"
	"github.com/leapstack-labs/samplechart/internal/widget"
	"github.com/leapstack-labs/samplechart/pkg/source"

	// Register every data source type.
	_ "github.com/leapstack-labs/samplechart/pkg/sources/file"
	_ "github.com/leapstack-labs/samplechart/pkg/sources/generator"
	_ "github.com/leapstack-labs/samplechart/pkg/sources/remote"
	_ "github.com/leapstack-labs/samplechart/pkg/sources/script"
	_ "github.com/leapstack-labs/samplechart/pkg/sources/sqldb"
	_ "github.com/leapstack-labs/samplechart/pkg/sources/xlsx"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Source source.Source
	Widget *widget.Widget
}

// NewCommandContext opens the configured data source and builds an
// initialized widget on top of it.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	return newCommandContext(cmd.Context(), getConfig(), config.GetLogger(cmd.Context()))
}

func newCommandContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*CommandContext, func(), error) {
	src, err := source.New(ctx, cfg.SourceSettings(), logger)
	if err != nil {
		return nil, nil, err
	}

	w, err := newWidget(cfg, src, src.Name(), logger)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := src.Close(); err != nil {
			logger.Warn("failed to close data source", "error", err)
		}
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Source: src,
		Widget: w,
	}, cleanup, nil
}

// newWidget builds and initializes a widget from the configuration.
func newWidget(cfg *config.Config, fetcher source.Fetcher, sourceName string, logger *slog.Logger) (*widget.Widget, error) {
	w := widget.New(fetcher,
		widget.WithLogger(logger),
		widget.WithSourceName(sourceName),
		widget.WithStrictColumns(cfg.StrictColumns),
		widget.WithTable(cfg.ShowTable),
		widget.WithFetchTimeout(cfg.FetchTimeout),
		widget.WithSampleSizes(cfg.SampleSizes, cfg.DefaultSampleSize),
	)
	if err := w.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize widget: %w", err)
	}
	return w, nil
}

// loadSize selects size (when given) and submits once.
func loadSize(ctx context.Context, w *widget.Widget, size string) (widget.State, error) {
	if size != "" {
		w.SelectSampleSize(size)
	}
	if err := w.Submit(ctx); err != nil {
		return w.State(), err
	}
	return w.State(), nil
}

// getConfig returns the current configuration, or the defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// completeSampleSizes offers the configured sample sizes for positional arguments.
func completeSampleSizes(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return getConfig().SampleSizes, cobra.ShellCompDirectiveNoFileComp
}
