package tui

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// PlotConfig holds settings for the terminal line graph.
type PlotConfig struct {
	Width  int
	Height int
	Color  asciigraph.AnsiColor
}

// DefaultPlotConfig returns the graph settings used by the terminal widget.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Width:  60,
		Height: 10,
		Color:  asciigraph.Red,
	}
}

// Plot draws the y values in x order, with the y axis pinned to the bounds.
// The x range is printed in the caption since the graph spaces points evenly.
func Plot(points []core.Point, bounds core.Bounds, cfg PlotConfig) string {
	if len(points) == 0 {
		return mutedStyle.Render("no data yet: press enter to load")
	}

	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}

	opts := []asciigraph.Option{
		asciigraph.Height(cfg.Height),
		asciigraph.LowerBound(bounds.MinY),
		asciigraph.UpperBound(bounds.MaxY),
		asciigraph.SeriesColors(cfg.Color),
		asciigraph.Caption(fmt.Sprintf("x: [%s, %s]  y: [%s, %s]",
			core.FormatValue(bounds.MinX), core.FormatValue(bounds.MaxX),
			core.FormatValue(bounds.MinY), core.FormatValue(bounds.MaxY))),
	}
	if cfg.Width > 0 {
		opts = append(opts, asciigraph.Width(cfg.Width))
	}
	return asciigraph.Plot(ys, opts...)
}
