// Package widget implements the sample-size chart widget: a sample size
// selector, data acquisition from a Fetcher and the chart (plus optional
// table) that presents the fetched points.
//
// The widget has no rendering of its own. Front ends (web, terminal, shell)
// read State snapshots and subscribe to change notifications.
package widget

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/leapstack-labs/samplechart/internal/chart"
	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// ErrNotInitialized is returned by Submit before Initialize.
var ErrNotInitialized = errors.New("widget not initialized")

// Widget holds the selection, the point sequence and the chart bound to it.
type Widget struct {
	fetcher    source.Fetcher
	sourceName string
	logger     *slog.Logger
	zipMode    core.ZipMode
	showTable  bool
	timeout    time.Duration
	sizes      []string
	defaultSz  string
	chartOpts  []chart.Option

	chart *chart.Chart

	// applyMu serializes applying results so the stored points and the
	// chart always move together.
	applyMu sync.Mutex

	mu          sync.Mutex
	initialized bool
	sampleSize  string
	points      []core.Point
	bounds      core.Bounds
	hasData     bool
	lastErr     error
	lastFetchID string
	issued      uint64
	applied     uint64
	pending     int

	listenersMu sync.Mutex
	listeners   map[int]func(State)
	nextID      int
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSourceName names the data service in errors and logs.
func WithSourceName(name string) Option {
	return func(w *Widget) { w.sourceName = name }
}

// WithStrictColumns controls length mismatch handling. Strict (the default)
// rejects columns of different lengths; otherwise the shorter column wins.
func WithStrictColumns(strict bool) Option {
	return func(w *Widget) {
		if strict {
			w.zipMode = core.ZipStrict
		} else {
			w.zipMode = core.ZipShortest
		}
	}
}

// WithTable enables the table presentation.
func WithTable(show bool) Option {
	return func(w *Widget) { w.showTable = show }
}

// WithFetchTimeout bounds each data service call. Zero means no limit.
func WithFetchTimeout(d time.Duration) Option {
	return func(w *Widget) { w.timeout = d }
}

// WithSampleSizes sets the labels offered by selectors and the initial selection.
func WithSampleSizes(sizes []string, initial string) Option {
	return func(w *Widget) {
		if len(sizes) > 0 {
			w.sizes = slices.Clone(sizes)
		}
		if initial != "" {
			w.defaultSz = initial
		}
	}
}

// WithChartOptions passes options through to chart.New.
func WithChartOptions(opts ...chart.Option) Option {
	return func(w *Widget) { w.chartOpts = append(w.chartOpts, opts...) }
}

// New creates a widget reading from fetcher. Call Initialize before use.
func New(fetcher source.Fetcher, opts ...Option) *Widget {
	w := &Widget{
		fetcher:   fetcher,
		logger:    slog.New(slog.DiscardHandler),
		zipMode:   core.ZipStrict,
		sizes:     core.DefaultSampleSizes(),
		defaultSz: core.DefaultSampleSize,
		bounds:    core.DefaultBounds(),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize runs the one-time chart setup, builds the chart with its
// default configuration and selects the default sample size.
// Calling it again is a no-op.
func (w *Widget) Initialize() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.initialized {
		return nil
	}

	chart.Setup()
	opts := append(slices.Clone(w.chartOpts), chart.WithRedraw(func(chart.Config) { w.notify() }))
	c, err := chart.New(opts...)
	if err != nil {
		return err
	}

	w.chart = c
	w.sampleSize = w.defaultSz
	w.initialized = true
	return nil
}

// SelectSampleSize sets the pending selection. It neither fetches nor redraws.
func (w *Widget) SelectSampleSize(value string) {
	w.mu.Lock()
	w.sampleSize = value
	w.mu.Unlock()
}

// SampleSize returns the pending selection.
func (w *Widget) SampleSize() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sampleSize
}

// SampleSizes returns the labels offered to the user.
func (w *Widget) SampleSizes() []string {
	return slices.Clone(w.sizes)
}

// Chart returns the chart, or nil before Initialize.
func (w *Widget) Chart() *chart.Chart {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chart
}

// Subscribe registers fn to run after every state change.
// fn runs synchronously on the goroutine that changed the state and must
// not call Submit. The returned func removes the subscription.
func (w *Widget) Subscribe(fn func(State)) (unsubscribe func()) {
	w.listenersMu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.listenersMu.Unlock()

	return func() {
		w.listenersMu.Lock()
		delete(w.listeners, id)
		w.listenersMu.Unlock()
	}
}

func (w *Widget) notify() {
	w.listenersMu.Lock()
	fns := make([]func(State), 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.listenersMu.Unlock()

	if len(fns) == 0 {
		return
	}
	state := w.State()
	for _, fn := range fns {
		fn(state)
	}
}
