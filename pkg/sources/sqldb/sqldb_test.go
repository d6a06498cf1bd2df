package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/samplechart/internal/testutil"
	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

func openSQLite(t *testing.T) *Source {
	t.Helper()
	s := New(testutil.NewTestLogger(t))
	dsn := filepath.Join(t.TempDir(), "datasets.db")
	require.NoError(t, s.Open(context.Background(), source.Config{Type: Name, Driver: "sqlite", DSN: dsn}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_SeedAndGet(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, core.SampleSmall, core.NewDataset([]float64{0, 1, 2}, []float64{5, 3, 9})))

	ds, err := s.GetDataSet(ctx, core.SampleSmall)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, ds.XColumn.Values)
	assert.Equal(t, []float64{5, 3, 9}, ds.YColumn.Values)

	// reseeding replaces the rows
	require.NoError(t, s.Seed(ctx, core.SampleSmall, core.NewDataset([]float64{7}, []float64{8})))
	ds, err = s.GetDataSet(ctx, core.SampleSmall)
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, ds.XColumn.Values)
	assert.Equal(t, []float64{8}, ds.YColumn.Values)
}

func TestSQLite_RaggedColumns(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, core.SampleMedium, core.NewDataset([]float64{1, 2, 3}, []float64{4})))

	ds, err := s.GetDataSet(ctx, core.SampleMedium)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, ds.XColumn.Values)
	assert.Equal(t, []float64{4}, ds.YColumn.Values)
}

func TestSQLite_NullInsideColumn(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	_, err := s.DB.ExecContext(ctx, `INSERT INTO datasets (sample_size, idx, x, y) VALUES
		('medium', 0, 1, NULL), ('medium', 1, NULL, 5), ('medium', 2, 3, 7)`)
	require.NoError(t, err)

	_, err = s.GetDataSet(ctx, core.SampleMedium)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingColumn)
	assert.Contains(t, err.Error(), "after a NULL")
}

func TestSQLite_UnseededSizeIsEmpty(t *testing.T) {
	s := openSQLite(t)

	ds, err := s.GetDataSet(context.Background(), core.SampleLarge)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestSQLite_MigrationVersion(t *testing.T) {
	s := openSQLite(t)

	version, err := s.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// migrating again is a no-op
	require.NoError(t, s.Migrate(context.Background()))
}

func TestGetDataSet_Mock(t *testing.T) {
	query := regexp.QuoteMeta("SELECT x, y FROM datasets WHERE sample_size = $1 ORDER BY idx")
	pg, err := LookupDialect("pgx")
	require.NoError(t, err)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantXs    []float64
		wantYs    []float64
		errMsg    string
	}{
		{
			name: "rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("small").
					WillReturnRows(sqlmock.NewRows([]string{"x", "y"}).AddRow(1.0, 2.0).AddRow(3.0, nil))
			},
			wantXs: []float64{1, 3},
			wantYs: []float64{2},
		},
		{
			name: "null inside column",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("small").
					WillReturnRows(sqlmock.NewRows([]string{"x", "y"}).AddRow(1.0, 2.0).AddRow(3.0, nil).AddRow(5.0, 6.0))
			},
			errMsg: "y has a value at row 2 after a NULL",
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("small").WillReturnError(errors.New("connection refused"))
			},
			errMsg: "failed to query dataset",
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("small").
					WillReturnRows(sqlmock.NewRows([]string{"x", "y"}).AddRow("abc", 1.0))
			},
			errMsg: "failed to scan dataset row",
		},
		{
			name: "row error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("small").
					WillReturnRows(sqlmock.NewRows([]string{"x", "y"}).AddRow(1.0, 1.0).RowError(0, errors.New("broken pipe")))
			},
			errMsg: "error iterating dataset rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			s := NewWithDB(db, pg, testutil.NewTestLogger(t))
			ds, err := s.GetDataSet(context.Background(), "small")
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantXs, ds.XColumn.Values)
				assert.Equal(t, tt.wantYs, ds.YColumn.Values)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSeed_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	lite, err := LookupDialect("sqlite")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM datasets WHERE sample_size = ?")).
		WithArgs("small").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO datasets")).
		ExpectExec().WithArgs("small", 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewWithDB(db, lite, nil)
	err = s.Seed(context.Background(), "small", core.NewDataset([]float64{1}, []float64{2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert row 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupDialect(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		numbered bool
		wantErr  bool
	}{
		{in: "", want: "sqlite"},
		{in: "sqlite3", want: "sqlite"},
		{in: "PGX", want: "postgres", numbered: true},
		{in: "postgresql", want: "postgres", numbered: true},
		{in: "duckdb", want: "duckdb"},
		{in: "oracle", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := LookupDialect(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
			assert.Equal(t, tt.numbered, d.Numbered)
		})
	}
}

func TestDialect_Placeholder(t *testing.T) {
	assert.Equal(t, "?", Dialect{}.Placeholder(3))
	assert.Equal(t, "$3", Dialect{Numbered: true}.Placeholder(3))
}

func TestOpen_Errors(t *testing.T) {
	assert.Error(t, New(nil).Open(context.Background(), source.Config{Driver: "sqlite"}))
	assert.Error(t, New(nil).Open(context.Background(), source.Config{Driver: "oracle", DSN: "x"}))
}
