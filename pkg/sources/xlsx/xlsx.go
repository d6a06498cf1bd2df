package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "xlsx"

// Default header names for the x and y columns.
const (
	DefaultXHeader = "x"
	DefaultYHeader = "y"
)

// Source reads one sheet per sample size from a workbook. The first row of a
// sheet is a header; the columns titled x and y (case-insensitive) hold the values.
// Blank cells are skipped, so a sheet with ragged columns yields columns of
// different lengths.
type Source struct {
	logger  *slog.Logger
	path    string
	xHeader string
	yHeader string

	mu sync.Mutex
	wb *excelize.File
}

// New creates an xlsx source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger, xHeader: DefaultXHeader, yHeader: DefaultYHeader}
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open opens the workbook at cfg.Path.
// Options "x_header" and "y_header" override the column titles.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("source.path is required for the %s source", Name)
	}
	if h := cfg.Options["x_header"]; h != "" {
		s.xHeader = h
	}
	if h := cfg.Options["y_header"]; h != "" {
		s.yHeader = h
	}

	wb, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	s.path = cfg.Path
	s.wb = wb
	s.logger.Debug("opened workbook", slog.String("path", cfg.Path), slog.Any("sheets", wb.GetSheetList()))
	return nil
}

// Close closes the workbook.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wb == nil {
		return nil
	}
	err := s.wb.Close()
	s.wb = nil
	return err
}

// GetDataSet reads the sheet named sampleSize.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wb == nil {
		return nil, fmt.Errorf("workbook is not open")
	}

	idx, err := s.wb.GetSheetIndex(sampleSize)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q (no sheet in %s)", core.ErrUnknownSampleSize, sampleSize, s.path)
	}

	rows, err := s.wb.GetRows(sampleSize, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sampleSize, err)
	}
	return readColumns(rows, s.xHeader, s.yHeader)
}

func readColumns(rows [][]string, xHeader, yHeader string) (*core.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header row", core.ErrMissingColumn)
	}

	xIdx, yIdx := -1, -1
	for i, title := range rows[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(title), xHeader) && xIdx < 0:
			xIdx = i
		case strings.EqualFold(strings.TrimSpace(title), yHeader) && yIdx < 0:
			yIdx = i
		}
	}
	if xIdx < 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, xHeader)
	}
	if yIdx < 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, yHeader)
	}

	ds := &core.Dataset{
		XColumn: core.Column{Name: rows[0][xIdx], Values: []float64{}},
		YColumn: core.Column{Name: rows[0][yIdx], Values: []float64{}},
	}
	// A blank cell may only start a trailing run; a value after it would
	// pair with the other column's value from a different row.
	gaps := [2]int{}
	for r, row := range rows[1:] {
		for i, c := range []struct {
			idx int
			col *core.Column
		}{{xIdx, &ds.XColumn}, {yIdx, &ds.YColumn}} {
			cell, _ := excelize.CoordinatesToCellName(c.idx+1, r+2)
			if c.idx >= len(row) || strings.TrimSpace(row[c.idx]) == "" {
				if gaps[i] == 0 {
					gaps[i] = r + 2
				}
				continue
			}
			if gaps[i] != 0 {
				blank, _ := excelize.CoordinatesToCellName(c.idx+1, gaps[i])
				return nil, fmt.Errorf("%w: %s is blank but %s has a value", core.ErrMissingColumn, blank, cell)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c.idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %q is not a number", cell, row[c.idx])
			}
			c.col.Values = append(c.col.Values, v)
		}
	}
	return ds, nil
}

// WriteWorkbook writes datasets to path, one sheet per sample size, in the
// layout GetDataSet reads.
func WriteWorkbook(path string, datasets map[string]*core.Dataset, order []string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	written := 0
	for _, size := range order {
		ds, ok := datasets[size]
		if !ok {
			continue
		}
		if written == 0 {
			if err := f.SetSheetName("Sheet1", size); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(size); err != nil {
			return err
		}
		written++

		if err := f.SetSheetRow(size, "A1", &[]any{DefaultXHeader, DefaultYHeader}); err != nil {
			return err
		}
		for j, x := range ds.XColumn.Values {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := f.SetCellFloat(size, cell, x, -1, 64); err != nil {
				return err
			}
		}
		for j, y := range ds.YColumn.Values {
			cell, _ := excelize.CoordinatesToCellName(2, j+2)
			if err := f.SetCellFloat(size, cell, y, -1, 64); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
