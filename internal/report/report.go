// Package report presents the ranked statistics: console tables for the CLI
// and CSV files for export.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"emistat/internal/stats"
)

// Column headers shared by the console and CSV outputs.
const (
	HeaderGDPPerCapita       = "GDP [current US$ per capita]"
	HeaderGDPTotal           = "GDP [current US$]"
	HeaderEmissionsPerCapita = "Emissions [metric tons per capita]"
	HeaderEmissionsTotal     = "Emissions [total metric tons]"
	HeaderEmissionsDelta     = "Difference in CO2 emissions [metric tons per capita]"
)

// Renderer writes ranked reports as console tables.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenderPerYear prints a per-year ranked report.
func (r *Renderer) RenderPerYear(title, metricHeader, absoluteHeader string, entries []stats.RankedEntry) {
	fmt.Fprintf(r.out, "\n%s\n", title)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Year", "Rank", "Country", metricHeader, absoluteHeader})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Year,
			e.Rank,
			e.Country,
			fmt.Sprintf("%.4f", e.PerCapita),
			fmt.Sprintf("%.2f", e.Absolute),
		})
	}
	t.Render()
}

// RenderChanges prints one side of the decade-change report. An empty entry
// list renders a note instead of an empty table.
func (r *Renderer) RenderChanges(title string, entries []stats.ChangeEntry) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "no data available for the last decade")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Country", HeaderEmissionsDelta})
	for i, e := range entries {
		t.AppendRow(table.Row{i + 1, e.Country, fmt.Sprintf("%+.4f", e.Delta)})
	}
	t.Render()
}
