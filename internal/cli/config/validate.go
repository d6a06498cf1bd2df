package config

import (
	"fmt"
	"slices"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, OutputFormats)
	}
	if len(c.SampleSizes) == 0 {
		return fmt.Errorf("sample_sizes must list at least one size")
	}
	if c.DefaultSampleSize == "" {
		return fmt.Errorf("default_sample_size is required")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must not be negative, got %s", c.FetchTimeout)
	}
	if c.Source.Type == "" {
		return fmt.Errorf("source.type is required")
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	return nil
}
