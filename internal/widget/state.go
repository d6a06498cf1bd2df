package widget

import (
	"slices"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// State is a point-in-time copy of the widget.
type State struct {
	SampleSize  string
	SampleSizes []string
	Points      []core.Point
	Bounds      core.Bounds
	HasData     bool
	ShowTable   bool
	Loading     bool
	Err         error
	FetchID     string
	Revision    uint64
}

// TableVisible reports whether the table should be drawn.
func (s State) TableVisible() bool {
	return s.ShowTable && s.HasData
}

// ErrMessage returns the visible error text, or "".
func (s State) ErrMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// State returns a snapshot of the widget.
func (w *Widget) State() State {
	w.mu.Lock()
	st := State{
		SampleSize:  w.sampleSize,
		SampleSizes: slices.Clone(w.sizes),
		Points:      slices.Clone(w.points),
		Bounds:      w.bounds,
		HasData:     w.hasData,
		ShowTable:   w.showTable,
		Loading:     w.pending > 0,
		Err:         w.lastErr,
		FetchID:     w.lastFetchID,
	}
	c := w.chart
	w.mu.Unlock()

	if c != nil {
		st.Revision = c.Revision()
	}
	return st
}
