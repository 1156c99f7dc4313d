package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Summarize renders a dataset as a compact spoken-friendly description:
// shape, column names, and mean/min/max for every fully numeric column.
// It always succeeds, including on an empty dataset.
func Summarize(ds Dataset) string {
	lines := []string{
		fmt.Sprintf("Table shape: %d rows x %d columns.", len(ds.Rows), len(ds.Columns)),
		fmt.Sprintf("Columns: %s.", strings.Join(ds.Columns, ", ")),
	}

	var numeric []string
	for i, name := range ds.Columns {
		stats, ok := columnStats(ds.Rows, i)
		if !ok {
			continue
		}
		numeric = append(numeric, fmt.Sprintf(
			"- %s: mean=%.3g, min=%.3g, max=%.3g",
			name, stats.mean, stats.min, stats.max,
		))
	}
	if len(numeric) > 0 {
		lines = append(lines, "Numeric summary (per column):")
		lines = append(lines, numeric...)
	}

	return strings.Join(lines, "\n")
}

type stats struct {
	mean, min, max float64
}

// columnStats reports over non-missing cells; a column counts as numeric only
// when every non-missing cell parses as a number and at least one exists.
func columnStats(rows [][]string, col int) (stats, bool) {
	var (
		sum   float64
		count int
		s     stats
	)
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return stats{}, false
		}
		if count == 0 || v < s.min {
			s.min = v
		}
		if count == 0 || v > s.max {
			s.max = v
		}
		sum += v
		count++
	}
	if count == 0 {
		return stats{}, false
	}
	s.mean = sum / float64(count)
	return s, true
}
