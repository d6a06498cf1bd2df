package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the image encoding produced by Render.
type Format string

// Supported render formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat converts a string such as "svg" or "png" into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (want svg or png)", s)
	}
}

// Render draws the current configuration to w.
func (c *Chart) Render(w io.Writer, format Format) error {
	cfg := c.Config()
	width, height := c.Size()

	var provider gochart.RendererProvider
	switch format {
	case FormatSVG:
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	graph := buildGraph(cfg, width, height)
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// buildGraph translates the configuration into a go-chart graph.
func buildGraph(cfg Config, width, height int) gochart.Chart {
	scales := cfg.Options.Scales
	xMin, xMax := drawRange(scales.X.Min, scales.X.Max)
	yMin, yMax := drawRange(scales.Y.Min, scales.Y.Max)

	var series []gochart.Series
	for _, ds := range cfg.Data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		xs := make([]float64, len(ds.Data))
		ys := make([]float64, len(ds.Data))
		for i, p := range ds.Data {
			xs[i] = p.X
			ys[i] = p.Y
		}

		style := gochart.Style{
			StrokeColor: parseColor(ds.BorderColor, drawing.ColorRed),
			StrokeWidth: 2,
			DotColor:    parseColor(ds.BackgroundColor, drawing.ColorWhite),
			DotWidth:    3,
		}
		if !ds.ShowLine {
			style.StrokeWidth = 0
		}
		series = append(series, gochart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	// go-chart refuses to draw without a series; an invisible one keeps the
	// empty canvas and its axes.
	if len(series) == 0 {
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{yMin, yMin},
			Style:   gochart.Style{Hidden: true},
		})
	}

	return gochart.Chart{
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Style: gochart.Style{Hidden: !scales.X.Display},
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: !scales.Y.Display},
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
}

// drawRange widens a degenerate range so the renderer has a non-zero span.
// The configured bounds are left untouched.
func drawRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

var namedColors = map[string]drawing.Color{
	"red":   drawing.ColorRed,
	"white": drawing.ColorWhite,
	"black": drawing.ColorBlack,
	"blue":  drawing.ColorBlue,
	"green": drawing.ColorGreen,
}

func parseColor(s string, fallback drawing.Color) drawing.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	}
	return fallback
}
