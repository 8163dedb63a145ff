// Package dataset loads, cleans and partitions the advertising spend
// dataset consumed by the training pipeline.
//
// A Table holds the raw tabular data with NaN marking missing cells. Clean
// applies deduplication, median imputation and IQR outlier clipping; Split
// produces the seeded train/validation/test partitions as gonum matrices.
package dataset

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/admetric/campaignml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Column names of the advertising dataset.
var (
	// FeatureColumns are the spend channels, in model input order.
	FeatureColumns = []string{"TV", "Radio", "Newspaper"}

	// TargetColumn is the prediction target.
	TargetColumn = "Sales"
)

// Table is an in-memory tabular dataset. Missing numeric cells are NaN.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.NewValueError("Table.Column", "no such column: "+name)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Features extracts the named columns as an (n_rows, len(names)) matrix.
func (t *Table) Features(names []string) (*mat.Dense, error) {
	idx := make([]int, len(names))
	for j, name := range names {
		i := t.ColumnIndex(name)
		if i < 0 {
			return nil, errors.NewValueError("Table.Features", "no such column: "+name)
		}
		idx[j] = i
	}
	if len(t.Rows) == 0 {
		return nil, errors.NewModelError("Table.Features", "empty table", errors.ErrEmptyData)
	}
	out := mat.NewDense(len(t.Rows), len(names), nil)
	for i, row := range t.Rows {
		for j, col := range idx {
			out.Set(i, j, row[col])
		}
	}
	return out, nil
}

// Target extracts the named column as a dense vector.
func (t *Table) Target(name string) (*mat.VecDense, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, errors.NewModelError("Table.Target", "empty table", errors.ErrEmptyData)
	}
	return mat.NewVecDense(len(col), col), nil
}

// LoadCSV reads a CSV file with a header row into a Table. Empty cells and
// the common NA spellings parse as NaN; any other non-numeric cell is an
// error. A missing file maps to ErrFileNotFound so the run can fail fast.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrFileNotFound, path)
		}
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse dataset CSV")
	}
	if len(records) == 0 {
		return nil, errors.NewModelError("dataset.LoadCSV", "empty CSV file", errors.ErrEmptyData)
	}

	header := records[0]
	table := &Table{Columns: append([]string(nil), header...)}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.NewDimensionError("dataset.LoadCSV", len(header), len(record), 1)
		}
		row := make([]float64, len(record))
		for j, cell := range record {
			row[j], err = parseCell(cell)
			if err != nil {
				return nil, err
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch s {
	case "", "NA", "N/A", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewValueError("dataset.LoadCSV", "non-numeric cell: "+s)
	}
	return v, nil
}
