package core

import (
	"fmt"
	"math"
)

// Column is a named, ordered sequence of numeric values.
type Column struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Values []float64 `json:"values" yaml:"values"`
}

// Dataset is the shape returned by a data service: two parallel columns.
// Position i of XColumn pairs with position i of YColumn.
type Dataset struct {
	XColumn Column `json:"xColumn" yaml:"xColumn"`
	YColumn Column `json:"yColumn" yaml:"yColumn"`
}

// NewDataset builds a dataset from parallel x and y slices.
func NewDataset(xs, ys []float64) *Dataset {
	return &Dataset{
		XColumn: Column{Name: "x", Values: xs},
		YColumn: Column{Name: "y", Values: ys},
	}
}

// Len returns the number of values in the x column.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.XColumn.Values)
}

// ZipMode controls how Zip treats columns of different lengths.
type ZipMode int

const (
	// ZipStrict rejects columns of different lengths.
	ZipStrict ZipMode = iota
	// ZipShortest pairs values up to the shorter column and drops the rest.
	ZipShortest
)

// Zip pairs the dataset's columns into a point sequence.
//
// A nil dataset is reported as ErrMissingColumn. Non-finite values are
// rejected with ErrNonFinite since they cannot be plotted. Columns of
// different lengths yield a *LengthMismatchError in ZipStrict mode.
// An empty result is not an error here; callers decide what empty means.
func Zip(d *Dataset, mode ZipMode) ([]Point, error) {
	if d == nil {
		return nil, ErrMissingColumn
	}

	xs, ys := d.XColumn.Values, d.YColumn.Values
	n := len(xs)
	if len(ys) != n {
		if mode == ZipStrict {
			return nil, &LengthMismatchError{XLen: len(xs), YLen: len(ys)}
		}
		n = min(len(xs), len(ys))
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if !isFinite(x) || !isFinite(y) {
			return nil, fmt.Errorf("%w: index %d (%v, %v)", ErrNonFinite, i, x, y)
		}
		points[i] = Point{X: x, Y: y}
	}
	return points, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
