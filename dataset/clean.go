package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// Clean returns a cleaned copy of the table. In order: column names are
// trimmed of whitespace, exact duplicate rows are dropped, missing values
// are filled with the column median (computed after deduplication), and
// every value is clipped to the column's IQR fence
// [Q1 − 1.5·IQR, Q3 + 1.5·IQR].
//
// Clean is a pure transform: the input table is not modified and an empty
// table yields an empty result.
func Clean(t *Table) *Table {
	cleaned := &Table{Columns: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		cleaned.Columns[i] = strings.TrimSpace(c)
	}

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned.Rows = append(cleaned.Rows, append([]float64(nil), row...))
	}

	if len(cleaned.Rows) == 0 {
		return cleaned
	}

	for j := range cleaned.Columns {
		imputeMedian(cleaned.Rows, j)
		clipIQR(cleaned.Rows, j)
	}
	return cleaned
}

// rowKey builds a deduplication key; NaN cells get a stable token so that
// identical incomplete rows also deduplicate.
func rowKey(row []float64) string {
	var b strings.Builder
	for _, v := range row {
		if math.IsNaN(v) {
			b.WriteString("nan|")
			continue
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('|')
	}
	return b.String()
}

// imputeMedian fills NaN cells in column j with the column median over the
// observed values. A fully missing column is left untouched.
func imputeMedian(rows [][]float64, j int) {
	observed := make([]float64, 0, len(rows))
	for _, row := range rows {
		if !math.IsNaN(row[j]) {
			observed = append(observed, row[j])
		}
	}
	if len(observed) == 0 || len(observed) == len(rows) {
		return
	}
	median, err := stats.Median(observed)
	if err != nil {
		return
	}
	for _, row := range rows {
		if math.IsNaN(row[j]) {
			row[j] = median
		}
	}
}

// clipIQR clips column j to [Q1 − 1.5·IQR, Q3 + 1.5·IQR].
func clipIQR(rows [][]float64, j int) {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if !math.IsNaN(row[j]) {
			values = append(values, row[j])
		}
	}
	if len(values) == 0 {
		return
	}
	q1, err1 := stats.Percentile(values, 25)
	q3, err3 := stats.Percentile(values, 75)
	if err1 != nil || err3 != nil {
		return
	}
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	for _, row := range rows {
		if row[j] < lower {
			row[j] = lower
		} else if row[j] > upper {
			row[j] = upper
		}
	}
}
