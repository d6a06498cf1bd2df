package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// Seed replaces the stored rows for sampleSize with ds in one transaction.
// Position i of each column becomes row idx i; the shorter column leaves NULLs.
func (s *Source) Seed(ctx context.Context, sampleSize string, ds *core.Dataset) (err error) {
	if s.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if ds == nil {
		return fmt.Errorf("%w: dataset is nil", core.ErrMissingColumn)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	del := "DELETE FROM datasets WHERE sample_size = " + s.Dialect.Placeholder(1)
	if _, err = tx.ExecContext(ctx, del, sampleSize); err != nil {
		return fmt.Errorf("failed to clear dataset %q: %w", sampleSize, err)
	}

	//nolint:gosec // placeholders come from the dialect
	ins := fmt.Sprintf("INSERT INTO datasets (sample_size, idx, x, y) VALUES (%s, %s, %s, %s)",
		s.Dialect.Placeholder(1), s.Dialect.Placeholder(2), s.Dialect.Placeholder(3), s.Dialect.Placeholder(4))
	stmt, err := tx.PrepareContext(ctx, ins)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	xs, ys := ds.XColumn.Values, ds.YColumn.Values
	n := max(len(xs), len(ys))
	for i := 0; i < n; i++ {
		if _, err = stmt.ExecContext(ctx, sampleSize, i, nullable(xs, i), nullable(ys, i)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	s.Logger.Info("seeded dataset", slog.String("sample_size", sampleSize), slog.Int("rows", n))
	return nil
}

func nullable(values []float64, i int) sql.NullFloat64 {
	if i < len(values) {
		return sql.NullFloat64{Float64: values[i], Valid: true}
	}
	return sql.NullFloat64{}
}
