// Package generator provides a built-in synthetic data source.
//
// This file registers the generator source with the source registry.
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/samplechart/pkg/sources/generator"
package generator

import (
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/source"
)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}
