// Package config provides configuration management for the samplechart CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Default configuration values.
const (
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultSourceType   = "generator"
	DefaultFetchTimeout = 10 * time.Second
	DefaultPort         = 8765
)

// Output formats accepted by the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "csv"}

// SourceConfig selects and configures the data service.
type SourceConfig struct {
	Type    string            `koanf:"type"`
	URL     string            `koanf:"url"`
	Dir     string            `koanf:"dir"`
	Path    string            `koanf:"path"`
	Script  string            `koanf:"script"`
	Driver  string            `koanf:"driver"`
	DSN     string            `koanf:"dsn"`
	Seed    int64             `koanf:"seed"`
	Watch   bool              `koanf:"watch"`
	Options map[string]string `koanf:"options"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port     int  `koanf:"port"`
	AutoOpen bool `koanf:"auto_open"`
	Watch    bool `koanf:"watch"`
	Dev      bool `koanf:"dev"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose           bool          `koanf:"verbose"`
	OutputFormat      string        `koanf:"output"`
	SampleSizes       []string      `koanf:"sample_sizes"`
	DefaultSampleSize string        `koanf:"default_sample_size"`
	ShowTable         bool          `koanf:"show_table"`
	StrictColumns     bool          `koanf:"strict_columns"`
	FetchTimeout      time.Duration `koanf:"fetch_timeout"`
	Source            SourceConfig  `koanf:"source"`
	UI                UIConfig      `koanf:"ui"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		OutputFormat:      DefaultOutput,
		SampleSizes:       core.DefaultSampleSizes(),
		DefaultSampleSize: core.DefaultSampleSize,
		ShowTable:         true,
		StrictColumns:     true,
		FetchTimeout:      DefaultFetchTimeout,
		Source:            SourceConfig{Type: DefaultSourceType},
		UI:                UIConfig{Port: DefaultPort, AutoOpen: true, Watch: true},
	}
}

// SourceSettings converts the source section into the settings a data source opens with.
func (c *Config) SourceSettings() source.Config {
	path := c.Source.Path
	if c.Source.Script != "" {
		path = c.Source.Script
	}
	return source.Config{
		Type:    c.Source.Type,
		URL:     c.Source.URL,
		Dir:     c.Source.Dir,
		Path:    path,
		Driver:  c.Source.Driver,
		DSN:     c.Source.DSN,
		Seed:    c.Source.Seed,
		Timeout: c.FetchTimeout,
		Watch:   c.Source.Watch,
		Options: c.Source.Options,
	}
}
