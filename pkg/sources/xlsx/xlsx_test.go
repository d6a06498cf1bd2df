package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/samplechart/internal/testutil"
	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

func openWorkbook(t *testing.T, path string, opts map[string]string) *Source {
	t.Helper()
	s := New(testutil.NewTestLogger(t))
	require.NoError(t, s.Open(context.Background(), source.Config{Type: Name, Path: path, Options: opts}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.xlsx")
	datasets := map[string]*core.Dataset{
		core.SampleSmall:  core.NewDataset([]float64{0, 1, 2}, []float64{5, 3, 9}),
		core.SampleMedium: core.NewDataset([]float64{0.5}, []float64{-1.25}),
	}
	require.NoError(t, WriteWorkbook(path, datasets, []string{core.SampleSmall, core.SampleMedium, core.SampleLarge}))

	s := openWorkbook(t, path, nil)

	ds, err := s.GetDataSet(context.Background(), core.SampleSmall)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, ds.XColumn.Values)
	assert.Equal(t, []float64{5, 3, 9}, ds.YColumn.Values)

	ds, err = s.GetDataSet(context.Background(), core.SampleMedium)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, ds.XColumn.Values)
	assert.Equal(t, []float64{-1.25}, ds.YColumn.Values)

	_, err = s.GetDataSet(context.Background(), core.SampleLarge)
	assert.ErrorIs(t, err, core.ErrUnknownSampleSize)
}

func TestWriteWorkbook_SkipsMissingFirstSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.xlsx")
	datasets := map[string]*core.Dataset{
		core.SampleMedium: core.NewDataset([]float64{1, 2, 3}, []float64{4, 5}),
	}
	require.NoError(t, WriteWorkbook(path, datasets, []string{core.SampleSmall, core.SampleMedium}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{core.SampleMedium}, f.GetSheetList())

	ds, err := openWorkbook(t, path, nil).GetDataSet(context.Background(), core.SampleMedium)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, ds.XColumn.Values)
	assert.Equal(t, []float64{4, 5}, ds.YColumn.Values)
}

func TestGetDataSet_CustomHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "small"))
	require.NoError(t, f.SetSheetRow("small", "A1", &[]any{"label", "Time", "Value"}))
	require.NoError(t, f.SetSheetRow("small", "A2", &[]any{"a", 1, 10}))
	require.NoError(t, f.SetSheetRow("small", "A3", &[]any{"b", 2, 20}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s := openWorkbook(t, path, map[string]string{"x_header": "time", "y_header": "value"})
	ds, err := s.GetDataSet(context.Background(), "small")
	require.NoError(t, err)
	assert.Equal(t, "Time", ds.XColumn.Name)
	assert.Equal(t, []float64{1, 2}, ds.XColumn.Values)
	assert.Equal(t, []float64{10, 20}, ds.YColumn.Values)
}

func TestReadColumns(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantXs  []float64
		wantYs  []float64
		wantErr error
		wantMsg string
	}{
		{
			name:   "basic",
			rows:   [][]string{{"x", "y"}, {"1", "2"}, {"3", "4"}},
			wantXs: []float64{1, 3},
			wantYs: []float64{2, 4},
		},
		{
			name:   "ragged columns",
			rows:   [][]string{{"X", "Y"}, {"1", "2"}, {"3"}},
			wantXs: []float64{1, 3},
			wantYs: []float64{2},
		},
		{
			name:   "header only",
			rows:   [][]string{{"x", "y"}},
			wantXs: []float64{},
			wantYs: []float64{},
		},
		{name: "empty sheet", rows: nil, wantErr: core.ErrMissingColumn},
		{name: "no y header", rows: [][]string{{"x", "z"}}, wantErr: core.ErrMissingColumn},
		{name: "text value", rows: [][]string{{"x", "y"}, {"1", "abc"}}, wantMsg: "B2"},
		{
			name:   "trailing blanks",
			rows:   [][]string{{"x", "y"}, {"1", "2"}, {"3", ""}, {"5", " "}},
			wantXs: []float64{1, 3, 5},
			wantYs: []float64{2},
		},
		{
			name:    "gap inside y column",
			rows:    [][]string{{"x", "y"}, {"1", ""}, {"", "5"}, {"3", "7"}},
			wantErr: core.ErrMissingColumn,
			wantMsg: "B2 is blank but B3 has a value",
		},
		{
			name:    "gap inside x column",
			rows:    [][]string{{"x", "y"}, {"1", "2"}, {"", "5"}, {"3", "7"}},
			wantErr: core.ErrMissingColumn,
			wantMsg: "A3 is blank but A4 has a value",
		},
		{
			name:    "empty row in the middle",
			rows:    [][]string{{"x", "y"}, {"1", "2"}, {}, {"3", "7"}},
			wantErr: core.ErrMissingColumn,
			wantMsg: "A3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := readColumns(tt.rows, DefaultXHeader, DefaultYHeader)
			if tt.wantErr != nil || tt.wantMsg != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantXs, ds.XColumn.Values)
			assert.Equal(t, tt.wantYs, ds.YColumn.Values)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	assert.Error(t, New(nil).Open(context.Background(), source.Config{}))
	assert.Error(t, New(nil).Open(context.Background(), source.Config{Path: filepath.Join(t.TempDir(), "missing.xlsx")}))
}
