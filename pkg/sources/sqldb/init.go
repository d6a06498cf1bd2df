// Package sqldb provides a data source backed by a SQL database.
//
// Points are stored one row per index in a datasets table:
//
//	datasets(sample_size, idx, x, y)
//
// Supported drivers are sqlite (pure Go), pgx (PostgreSQL) and duckdb.
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/leapstack-labs/samplechart/pkg/sources/sqldb"
package sqldb

import (
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/source"
)

func init() {
	source.Register(Name, func(logger *slog.Logger) source.Source { return New(logger) })
}
