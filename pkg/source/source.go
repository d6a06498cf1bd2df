// Package source provides the data service contract behind the chart widget.
//
// A Source answers GetDataSet for a sample size label. Concrete sources live in
// pkg/sources/ subdirectories and register themselves from init().
package source

import (
	"context"
	"time"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// Fetcher retrieves the dataset for a sample size label.
// It is the only call the widget makes against a data service.
type Fetcher interface {
	GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, sampleSize string) (*core.Dataset, error)

// GetDataSet calls f(ctx, sampleSize).
func (f FetcherFunc) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	return f(ctx, sampleSize)
}

// Source is a configurable, closable data service.
type Source interface {
	Fetcher

	// Name returns the registered type name of the source.
	Name() string

	// Open prepares the source (connections, file handles, compiled scripts).
	Open(ctx context.Context, cfg Config) error

	// Close releases resources held by the source.
	Close() error
}

// Config holds the settings shared by all source types.
// Each source reads the fields relevant to it and ignores the rest.
type Config struct {
	Type    string
	URL     string
	Dir     string
	Path    string
	Driver  string
	DSN     string
	Seed    int64
	Timeout time.Duration
	Watch   bool
	Options map[string]string
}
