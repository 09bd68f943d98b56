package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/olsfit/errs"
)

// MissingPolicy decides what Table.Pair does with missing numeric values.
type MissingPolicy int

const (
	// MissingReject keeps missing values as NaN so the estimator rejects the pair.
	MissingReject MissingPolicy = iota
	// MissingDrop removes every row where either selected value is missing.
	MissingDrop
)

var missingPolicyNames = map[MissingPolicy]string{
	MissingReject: "reject",
	MissingDrop:   "drop",
}

func (p MissingPolicy) String() string {
	if name, ok := missingPolicyNames[p]; ok {
		return name
	}

	return "unknown"
}

// ParseMissingPolicy returns the MissingPolicy for a case-insensitive name.
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	for p, n := range missingPolicyNames {
		if strings.EqualFold(name, n) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown missing-value policy %q", errs.ErrInvalidConfig, name)
}

// column is either numeric (values) or text (cells), never both.
type column struct {
	name    string
	numeric bool
	values  []float64
	cells   []string
}

// Table is an immutable set of equally long named columns.
type Table struct {
	// Name is the source file name, if known.
	Name string

	columns []column
	index   map[string]int
	rows    int
}

// NewTable builds a Table from a header row and data rows.
//
// Header names are trimmed; blank names become col_N (1-based position) and
// repeated names get a _2, _3, ... suffix. Short rows are padded with empty cells
// and cells beyond the header are ignored. Rows whose cells are all empty are
// skipped.
//
// Returns errs.ErrEmptyTable when there is no header or no data row.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: missing header row", errs.ErrEmptyTable)
	}

	names := uniqueNames(header)
	raw := make([][]string, len(names))
	nrows := 0
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		for j := range names {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			raw[j] = append(raw[j], cell)
		}
		nrows++
	}

	if nrows == 0 {
		return nil, errs.ErrEmptyTable
	}

	cols := make([]column, len(names))
	for j, name := range names {
		cols[j] = classify(name, raw[j])
	}

	return newTable(cols, nrows), nil
}

func newTable(cols []column, rows int) *Table {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.name] = i
	}

	return &Table{columns: cols, index: index, rows: rows}
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return t.rows
}

// Columns returns every column name in file order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}

	return names
}

// NumericColumns returns the names of the numeric columns in file order.
func (t *Table) NumericColumns() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if c.numeric {
			names = append(names, c.name)
		}
	}

	return names
}

// RequireNumericColumns returns errs.ErrTooFewNumericColumns when the table has
// fewer than minCount numeric columns.
func (t *Table) RequireNumericColumns(minCount int) error {
	if got := len(t.NumericColumns()); got < minCount {
		return fmt.Errorf("%w: found %d", errs.ErrTooFewNumericColumns, got)
	}

	return nil
}

// Column returns a copy of a numeric column. Missing values are NaN.
//
// Returns errs.ErrColumnNotFound or errs.ErrNotNumeric.
func (t *Table) Column(name string) ([]float64, error) {
	c, err := t.numericColumn(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(c.values))
	copy(out, c.values)

	return out, nil
}

// Pair returns the samples of columns x and y as two equally long new slices.
//
// With MissingReject, missing values stay NaN. With MissingDrop, rows where either
// value is missing are removed.
func (t *Table) Pair(x, y string, policy MissingPolicy) (xs, ys []float64, err error) {
	cx, err := t.numericColumn(x)
	if err != nil {
		return nil, nil, err
	}
	cy, err := t.numericColumn(y)
	if err != nil {
		return nil, nil, err
	}

	switch policy {
	case MissingReject:
		xs = make([]float64, t.rows)
		ys = make([]float64, t.rows)
		copy(xs, cx.values)
		copy(ys, cy.values)
	case MissingDrop:
		xs = make([]float64, 0, t.rows)
		ys = make([]float64, 0, t.rows)
		for i := range t.rows {
			if math.IsNaN(cx.values[i]) || math.IsNaN(cy.values[i]) {
				continue
			}
			xs = append(xs, cx.values[i])
			ys = append(ys, cy.values[i])
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown missing-value policy %d", errs.ErrInvalidConfig, int(policy))
	}

	return xs, ys, nil
}

// DefaultPair returns the first two numeric columns as the x and y selection.
func (t *Table) DefaultPair() (x, y string, err error) {
	numeric := t.NumericColumns()
	if len(numeric) < 2 {
		return "", "", fmt.Errorf("%w: found %d", errs.ErrTooFewNumericColumns, len(numeric))
	}

	return numeric[0], numeric[1], nil
}

func (t *Table) numericColumn(name string) (*column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	c := &t.columns[i]
	if !c.numeric {
		return nil, fmt.Errorf("%w: %q", errs.ErrNotNumeric, name)
	}

	return c, nil
}

// classify parses every cell of a column and keeps it numeric only if all
// non-empty cells are floats.
func classify(name string, cells []string) column {
	values := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			values[i] = math.NaN()
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return column{name: name, cells: cells}
		}
		values[i] = v
	}

	return column{name: name, numeric: true, values: values}
}

func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "col_" + strconv.Itoa(i+1)
		}

		candidate := name
		for n := 2; seen[candidate]; n++ {
			candidate = name + "_" + strconv.Itoa(n)
		}
		seen[candidate] = true
		names[i] = candidate
	}

	return names
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
