package core

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indicates a dataset without one of its two columns.
var ErrMissingColumn = errors.New("dataset is missing a column")

// ErrNonFinite indicates a NaN or infinite value in a dataset column.
var ErrNonFinite = errors.New("dataset contains a non-finite value")

// ErrUnknownSampleSize indicates a data source has no dataset for the label.
var ErrUnknownSampleSize = errors.New("unknown sample size")

// ErrStaleResponse indicates a response that arrived after a newer submission
// had already been applied. The response is discarded.
var ErrStaleResponse = errors.New("stale response discarded")

// DataFetchError represents a failed or malformed data service call.
type DataFetchError struct {
	SampleSize string
	Source     string
	Err        error
}

func (e *DataFetchError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("fetch %q failed: %v", e.SampleSize, e.Err)
	}
	return fmt.Sprintf("fetch %q from %s failed: %v", e.SampleSize, e.Source, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// NewDataFetchError creates a new DataFetchError.
func NewDataFetchError(sampleSize, source string, err error) *DataFetchError {
	return &DataFetchError{
		SampleSize: sampleSize,
		Source:     source,
		Err:        err,
	}
}

// EmptyDatasetError indicates a fetched dataset with zero points.
type EmptyDatasetError struct {
	SampleSize string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("dataset %q has no points", e.SampleSize)
}

// LengthMismatchError indicates x and y columns of different lengths.
type LengthMismatchError struct {
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("column length mismatch: x has %d values, y has %d", e.XLen, e.YLen)
}
