// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/samplechart/internal/testutil"
	"github.com/leapstack-labs/samplechart/internal/ui/notifier"
	"github.com/leapstack-labs/samplechart/internal/widget"
	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// FakeService serves fixed datasets and records the labels it was asked for.
type FakeService struct {
	mu       sync.Mutex
	Datasets map[string]*core.Dataset
	Err      error
	calls    []string
}

// GetDataSet implements source.Fetcher.
func (f *FakeService) GetDataSet(_ context.Context, sampleSize string) (*core.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sampleSize)
	if f.Err != nil {
		return nil, f.Err
	}
	ds, ok := f.Datasets[sampleSize]
	if !ok {
		return nil, core.ErrUnknownSampleSize
	}
	return ds, nil
}

// Calls returns the requested labels in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// SetErr makes subsequent calls fail with err.
func (f *FakeService) SetErr(err error) {
	f.mu.Lock()
	f.Err = err
	f.mu.Unlock()
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Widget   *widget.Widget
	Service  *FakeService
	Notifier *notifier.Notifier
}

// DefaultDatasets returns one small dataset per default sample size.
func DefaultDatasets() map[string]*core.Dataset {
	return map[string]*core.Dataset{
		core.SampleSmall:  core.NewDataset([]float64{0, 1, 2}, []float64{5, 3, 9}),
		core.SampleMedium: core.NewDataset([]float64{10, 20, 30, 40}, []float64{1, 2, 3, 4}),
		core.SampleLarge:  core.NewDataset([]float64{-5, 5}, []float64{-1, 1}),
	}
}

// SetupTestFixture creates an initialized widget backed by a FakeService.
// The widget broadcasts on the fixture's notifier after every change.
func SetupTestFixture(t *testing.T, opts ...widget.Option) *TestFixture {
	t.Helper()

	svc := &FakeService{Datasets: DefaultDatasets()}
	var fetcher source.Fetcher = svc

	opts = append([]widget.Option{
		widget.WithLogger(testutil.NewTestLogger(t)),
		widget.WithSourceName("fake"),
		widget.WithTable(true),
	}, opts...)
	w := widget.New(fetcher, opts...)
	require.NoError(t, w.Initialize())

	notify := notifier.New()
	unsubscribe := w.Subscribe(func(widget.State) { notify.Broadcast() })
	t.Cleanup(unsubscribe)

	return &TestFixture{
		Widget:   w,
		Service:  svc,
		Notifier: notify,
	}
}
