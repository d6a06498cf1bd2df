// Package script provides a data source computed by a Starlark script.
//
// The script must define a function dataset(size) returning a dict with
// "x" and "y" lists of numbers, or None for an unknown size. The globals
// seed, options and math are predeclared.
//
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/samplechart/pkg/sources/script"
package script

import (
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/source"
)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}
