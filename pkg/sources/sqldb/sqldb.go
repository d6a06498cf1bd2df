package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"  // pgx driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"              // SQLite driver (pure Go)

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "sql"

// Source reads datasets from the datasets table.
type Source struct {
	DB      *sql.DB
	Dialect Dialect
	Logger  *slog.Logger
}

// New creates a SQL source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{Logger: logger}
}

// NewWithDB wraps an existing connection. The schema is not touched.
func NewWithDB(db *sql.DB, d Dialect, logger *slog.Logger) *Source {
	s := New(logger)
	s.DB = db
	s.Dialect = d
	return s
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open connects using cfg.Driver and cfg.DSN, then applies the schema.
func (s *Source) Open(ctx context.Context, cfg source.Config) error {
	d, err := LookupDialect(cfg.Driver)
	if err != nil {
		return err
	}
	if cfg.DSN == "" {
		return fmt.Errorf("source.dsn is required for the %s source", Name)
	}

	db, err := sql.Open(d.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", d.Name, err)
	}
	if d.Name == "sqlite" && isMemoryDSN(cfg.DSN) {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s database: %w", d.Name, err)
	}

	s.DB = db
	s.Dialect = d
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		s.DB = nil
		return err
	}
	s.Logger.Debug("opened sql source", slog.String("driver", d.Name))
	return nil
}

// Close closes the database connection.
func (s *Source) Close() error {
	if s.DB != nil {
		s.Logger.Debug("closing database connection")
		return s.DB.Close()
	}
	return nil
}

// GetDataSet selects the rows for sampleSize ordered by idx.
// Trailing NULL cells are skipped, so columns may come back with different
// lengths. A NULL followed by a value in the same column is an error.
// A size with no rows yields an empty dataset.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	//nolint:gosec // placeholder comes from the dialect
	query := "SELECT x, y FROM datasets WHERE sample_size = " + s.Dialect.Placeholder(1) + " ORDER BY idx"
	rows, err := s.DB.QueryContext(ctx, query, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ds := core.NewDataset([]float64{}, []float64{})
	var xGap, yGap bool
	for row := 0; rows.Next(); row++ {
		var x, y sql.NullFloat64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		if err := appendCell(&ds.XColumn, x, &xGap, row); err != nil {
			return nil, err
		}
		if err := appendCell(&ds.YColumn, y, &yGap, row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dataset rows: %w", err)
	}
	return ds, nil
}

// appendCell adds v to col unless it is NULL. Once a NULL has been seen,
// a later value is rejected.
func appendCell(col *core.Column, v sql.NullFloat64, gap *bool, row int) error {
	if !v.Valid {
		*gap = true
		return nil
	}
	if *gap {
		return fmt.Errorf("%w: %s has a value at row %d after a NULL", core.ErrMissingColumn, col.Name, row)
	}
	col.Values = append(col.Values, v.Float64)
	return nil
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
