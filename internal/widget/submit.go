package widget

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// Submit fetches the dataset for the current selection and, on success,
// replaces the stored points and redraws the chart.
//
// Every failure comes back as a *core.DataFetchError and is kept as the
// visible error while the previous points stay on screen. A response that
// completes after a newer submission has been applied is dropped with
// core.ErrStaleResponse.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	if !w.initialized {
		w.mu.Unlock()
		return ErrNotInitialized
	}
	w.issued++
	seq := w.issued
	size := w.sampleSize
	w.pending++
	w.mu.Unlock()

	fetchID := uuid.NewString()
	logger := w.logger.With(slog.String("fetch_id", fetchID), slog.String("sample_size", size))
	logger.Debug("fetching dataset", slog.Uint64("seq", seq))
	w.notify()

	points, err := w.acquire(ctx, size)

	w.applyMu.Lock()
	defer w.applyMu.Unlock()

	w.mu.Lock()
	w.pending--
	if seq < w.applied {
		w.mu.Unlock()
		logger.Warn("discarding stale response", slog.Uint64("seq", seq))
		w.notify()
		return core.ErrStaleResponse
	}
	w.applied = seq
	w.lastFetchID = fetchID

	if err != nil {
		w.lastErr = err
		w.mu.Unlock()
		logger.Error("fetch failed", "error", err)
		w.notify()
		return err
	}
	w.lastErr = nil
	w.mu.Unlock()

	logger.Info("dataset loaded", slog.Int("points", len(points)))
	w.setPoints(points)
	return nil
}

// acquire calls the data service and pairs the columns.
func (w *Widget) acquire(ctx context.Context, size string) ([]core.Point, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	ds, err := w.fetcher.GetDataSet(ctx, size)
	if err != nil {
		return nil, core.NewDataFetchError(size, w.sourceName, err)
	}

	points, err := core.Zip(ds, w.zipMode)
	if err != nil {
		return nil, core.NewDataFetchError(size, w.sourceName, err)
	}
	if len(points) == 0 {
		return nil, core.NewDataFetchError(size, w.sourceName, &core.EmptyDatasetError{SampleSize: size})
	}
	return points, nil
}

// SetPoints replaces the stored points and runs the chart update.
// Listeners are notified through the chart's redraw.
func (w *Widget) SetPoints(points []core.Point) error {
	w.mu.Lock()
	ok := w.initialized
	w.mu.Unlock()
	if !ok {
		return ErrNotInitialized
	}

	w.applyMu.Lock()
	defer w.applyMu.Unlock()
	w.setPoints(points)
	return nil
}

func (w *Widget) setPoints(points []core.Point) {
	points = slices.Clone(points)
	bounds, _ := core.ComputeBounds(points)

	w.mu.Lock()
	w.points = points
	w.bounds = bounds
	w.hasData = true
	c := w.chart
	w.mu.Unlock()

	c.Update(points)
}

// Refresh re-runs the chart update with the stored points.
func (w *Widget) Refresh() {
	w.applyMu.Lock()
	defer w.applyMu.Unlock()

	w.mu.Lock()
	points := w.points
	c := w.chart
	w.mu.Unlock()

	if c != nil {
		c.Update(points)
	}
}

// IsStale reports whether err is a discarded out-of-order response.
func IsStale(err error) bool {
	return errors.Is(err, core.ErrStaleResponse)
}
