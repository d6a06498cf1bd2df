// Package file provides a data source reading datasets from a directory.
//
// This file registers the file source with the source registry.
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/samplechart/pkg/sources/file"
package file

import (
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/source"
)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}
