// Package chart owns the chart instance the widget draws into.
//
// A Chart holds the configuration object (axis ranges and the dataset list),
// recomputes it whenever the point sequence changes and redraws synchronously.
// Drawing is delegated to go-chart (see render.go).
package chart

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// ErrNotRegistered indicates a chart component that Setup has not registered.
var ErrNotRegistered = errors.New("chart component not registered")

// Default canvas size used when rendering to an image.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Chart is a single line chart bound to a drawing surface.
type Chart struct {
	mu       sync.RWMutex
	cfg      Config
	width    int
	height   int
	revision uint64
	redraw   []func(Config)
}

// Option configures a Chart.
type Option func(*Chart)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(c *Chart) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithRedraw registers a hook invoked after every redraw.
func WithRedraw(fn func(Config)) Option {
	return func(c *Chart) {
		c.redraw = append(c.redraw, fn)
	}
}

// New constructs a chart with the default configuration.
// Setup must have run; the components the configuration names are checked.
func New(opts ...Option) (*Chart, error) {
	cfg := DefaultConfig()
	for _, name := range []string{cfg.Type, cfg.Options.Scales.X.Type, cfg.Options.Scales.Y.Type, ElementPoint, ElementLine} {
		if !IsRegistered(name) {
			return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
		}
	}

	c := &Chart{
		cfg:    cfg,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Update replaces the dataset list with one line dataset over points,
// recomputes the axis bounds over the full sequence and redraws.
// An empty sequence resets the bounds to DefaultBounds.
func (c *Chart) Update(points []core.Point) core.Bounds {
	points = slices.Clone(points)
	bounds, _ := core.ComputeBounds(points)

	c.mu.Lock()
	c.cfg.Data = Data{Datasets: []Dataset{LineDataset(points)}}
	c.cfg.setBounds(bounds)
	c.mu.Unlock()

	c.Redraw()
	return bounds
}

// Redraw bumps the render revision and runs the redraw hooks.
func (c *Chart) Redraw() {
	c.mu.Lock()
	c.revision++
	snapshot := c.cfg.clone()
	hooks := slices.Clone(c.redraw)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn(snapshot)
	}
}

// Config returns a copy of the current configuration.
func (c *Chart) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.clone()
}

// Bounds returns the current axis ranges.
func (c *Chart) Bounds() core.Bounds {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Bounds()
}

// Points returns the plotted points, or nil before the first update.
func (c *Chart) Points() []core.Point {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.cfg.Data.Datasets) == 0 {
		return nil
	}
	return slices.Clone(c.cfg.Data.Datasets[0].Data)
}

// Revision counts redraws since construction.
func (c *Chart) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Size returns the canvas size in pixels.
func (c *Chart) Size() (width, height int) {
	return c.width, c.height
}
