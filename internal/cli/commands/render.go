package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/leapstack-labs/samplechart/internal/widget"
	"github.com/leapstack-labs/samplechart/pkg/core"
)

// resolveFormat turns "auto" into text for terminals and markdown otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "" && format != "auto" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "markdown"
}

// pointsOutput is the JSON shape of a fetched dataset.
type pointsOutput struct {
	SampleSize string       `json:"sampleSize"`
	Points     []core.Point `json:"points"`
	Bounds     core.Bounds  `json:"bounds"`
}

func renderState(w io.Writer, st widget.State, format string) error {
	switch format {
	case "json":
		return renderJSON(w, st)
	case "csv":
		return renderCSV(w, st.Points)
	case "md", "markdown":
		return renderMarkdown(w, st)
	default:
		return renderTable(w, st)
	}
}

func renderTable(w io.Writer, st widget.State) error {
	if len(st.Points) == 0 {
		_, _ = fmt.Fprintln(w, "(0 points)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"X", "Y"})
	for _, p := range st.Points {
		t.AppendRow(table.Row{core.FormatValue(p.X), core.FormatValue(p.Y)})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "(%d points) %s\n", len(st.Points), formatBounds(st.Bounds))
	return nil
}

func renderJSON(w io.Writer, st widget.State) error {
	points := st.Points
	if points == nil {
		points = []core.Point{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pointsOutput{SampleSize: st.SampleSize, Points: points, Bounds: st.Bounds})
}

func renderCSV(w io.Writer, points []core.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{core.FormatValue(p.X), core.FormatValue(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, st widget.State) error {
	if len(st.Points) == 0 {
		_, _ = fmt.Fprintln(w, "(0 points)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "## Sample size: %s\n\n", st.SampleSize)
	_, _ = fmt.Fprintln(w, "| X | Y |")
	_, _ = fmt.Fprintln(w, "| --- | --- |")
	for _, p := range st.Points {
		_, _ = fmt.Fprintf(w, "| %s | %s |\n", core.FormatValue(p.X), core.FormatValue(p.Y))
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%d points, %s\n", len(st.Points), formatBounds(st.Bounds))
	return nil
}

func formatBounds(b core.Bounds) string {
	return strings.Join([]string{
		fmt.Sprintf("x: [%s, %s]", core.FormatValue(b.MinX), core.FormatValue(b.MaxX)),
		fmt.Sprintf("y: [%s, %s]", core.FormatValue(b.MinY), core.FormatValue(b.MaxY)),
	}, " ")
}
