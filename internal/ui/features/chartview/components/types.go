// Package components renders the chart widget's HTML.
package components

import (
	"github.com/leapstack-labs/samplechart/internal/ui/features/common"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

// SizeOption is one entry of the sample size selector.
type SizeOption struct {
	Value    string
	Label    string
	Selected bool
}

// View is everything the widget markup is built from.
type View struct {
	Meta  common.PageMeta
	State widget.State
	// SVG is the rendered chart canvas.
	SVG string
}

// Options returns the selector entries with the current selection marked.
func (v View) Options() []SizeOption {
	opts := make([]SizeOption, 0, len(v.State.SampleSizes)+1)
	found := false
	for _, size := range v.State.SampleSizes {
		sel := size == v.State.SampleSize
		found = found || sel
		opts = append(opts, SizeOption{Value: size, Label: common.SizeLabel(size), Selected: sel})
	}
	if !found && v.State.SampleSize != "" {
		opts = append(opts, SizeOption{Value: v.State.SampleSize, Label: common.SizeLabel(v.State.SampleSize), Selected: true})
	}
	return opts
}

// Signals returns the datastar signals the page starts with.
func (v View) Signals() map[string]string {
	return map[string]string{"sampleSize": v.State.SampleSize}
}
