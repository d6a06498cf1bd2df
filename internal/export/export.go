// Package export writes the widget's points to an Excel workbook with a
// native line chart over them.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// ChartCell is where the chart is anchored on the points sheet.
const ChartCell = "D2"

// Data is what gets exported.
type Data struct {
	SampleSize string
	Points     []core.Point
	Bounds     core.Bounds
}

// Workbook builds a workbook with one sheet named after the sample size:
// an X | Y table in columns A and B and a line chart scaled to the bounds.
// The caller must Close the returned file.
func Workbook(d Data) (*excelize.File, error) {
	if len(d.Points) == 0 {
		return nil, &core.EmptyDatasetError{SampleSize: d.SampleSize}
	}
	sheet := sheetName(d.SampleSize)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writePoints(f, sheet, d.Points); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.AddChart(sheet, ChartCell, lineChart(sheet, d)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}
	return f, nil
}

// Write exports d as an xlsx stream.
func Write(w io.Writer, d Data) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

// WriteFile exports d to path.
func WriteFile(path string, d Data) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.SaveAs(path)
}

func writePoints(f *excelize.File, sheet string, points []core.Point) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"X", "Y"}); err != nil {
		return err
	}
	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{p.X, p.Y}); err != nil {
			return err
		}
	}
	return nil
}

func lineChart(sheet string, d Data) *excelize.Chart {
	last := len(d.Points) + 1
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, last)
	}

	return &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: ref("A"),
			Values:     ref("B"),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
			Marker: excelize.ChartMarker{
				Symbol: "circle",
				Size:   5,
				Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFFF"}},
			},
		}},
		Title:     []excelize.RichTextRun{{Text: "Sample size: " + d.SampleSize}},
		Legend:    excelize.ChartLegend{Position: "none"},
		XAxis:     axis(d.Bounds.MinX, d.Bounds.MaxX),
		YAxis:     axis(d.Bounds.MinY, d.Bounds.MaxY),
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
}

// axis pins the range unless it is degenerate, in which case Excel picks one.
func axis(lo, hi float64) excelize.ChartAxis {
	if lo >= hi {
		return excelize.ChartAxis{}
	}
	return excelize.ChartAxis{Minimum: &lo, Maximum: &hi}
}

// sheetName makes a valid worksheet name from a sample size label.
func sheetName(size string) string {
	if size == "" {
		return "points"
	}
	r := []rune(size)
	out := make([]rune, 0, len(r))
	for _, c := range r {
		switch c {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	if len(out) > 31 {
		out = out[:31]
	}
	return string(out)
}
