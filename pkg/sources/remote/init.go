// Package remote provides a data source backed by an HTTP data service.
//
// This file registers the remote source with the source registry.
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/samplechart/pkg/sources/remote"
package remote

import (
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/source"
)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}
