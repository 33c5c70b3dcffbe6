// Package summary computes per-column statistics for plotted series and prints them.
package summary

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

// Stats describes one column. NaN cells are skipped; an all-NaN column has Count 0
// and NaN statistics.
type Stats struct {
	Column string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Compute summarises values under the given column label.
func Compute(column string, values []float64) Stats {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	s := Stats{Column: column, Count: len(data)}
	s.Min = orNaN(data.Min())
	s.Max = orNaN(data.Max())
	s.Mean = orNaN(data.Mean())
	// sample standard deviation, undefined below two values
	if len(data) > 1 {
		s.StdDev = orNaN(data.StandardDeviationSample())
	} else {
		s.StdDev = math.NaN()
	}
	return s
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}

// WriteTable renders rows as a light box table.
func WriteTable(w io.Writer, rows []Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Count", "Min", "Max", "Mean", "Std"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Column, r.Count, FormatFloat(r.Min), FormatFloat(r.Max), FormatFloat(r.Mean), FormatFloat(r.StdDev)})
	}
	t.Render()
}

// FormatFloat prints v the way the rig team's notebooks do: shortest round-trip digits,
// always with a decimal point in plain notation ("2.0", "0.125"), scientific notation
// outside [1e-4, 1e16), and "nan"/"inf" for non-finite values.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	av := math.Abs(v)
	if av != 0 && (av < 1e-4 || av >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
