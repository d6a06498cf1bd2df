package sqldb

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

//go:embed schema.sql
var schemaSQL string

// Migrate creates the datasets table. Dialects goose supports run the
// embedded migrations; the rest get the plain schema.
func (s *Source) Migrate(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("database not opened")
	}

	if s.Dialect.Goose == "" {
		if _, err := s.DB.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		return nil
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(s.Dialect.Goose); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the applied goose version.
func (s *Source) MigrationVersion() (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if s.Dialect.Goose == "" {
		return 0, fmt.Errorf("%s schema is not versioned", s.Dialect.Name)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(s.Dialect.Goose); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersion(s.DB)
}
