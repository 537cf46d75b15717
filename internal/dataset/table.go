package dataset

import (
	"math"
	"strconv"
)

// Kind is the inferred storage type of a column. String forms follow the
// dtype names analysts already know from pandas.
type Kind int

const (
	KindObject Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return "object"
	}
}

// Numeric reports whether statistics apply to the kind. Booleans are excluded.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Value is a single cell. Valid is false for missing cells.
type Value struct {
	Text  string
	Num   float64
	Valid bool
}

// Column is a named, typed sequence of cells aligned with the table index.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Display renders cell i the way it appears in reports.
func (c *Column) Display(i int) string {
	return formatValue(c.Kind, c.Values[i])
}

// Floats returns the non-missing numeric values of the column in row order.
func (c *Column) Floats() []float64 {
	if !c.Kind.Numeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Valid {
			out = append(out, v.Num)
		}
	}
	return out
}

// Missing counts the missing cells of the column.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if !v.Valid {
			n++
		}
	}
	return n
}

// Table is an in-memory dataset: ordered named columns sharing one row index.
// Tables are treated as immutable once built; row selections return new tables.
type Table struct {
	Name    string
	Columns []*Column
	// Index holds the original row label (0-based position in the source file).
	Index []int
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.Index) }

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnNames lists column names in table order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// NumericColumns returns the int64/float64 columns in table order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.Kind.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Name  string
	Count int
}

// NullCounts returns the missing-cell count of every column, in column order.
func (t *Table) NullCounts() []ColumnCount {
	out := make([]ColumnCount, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = ColumnCount{Name: c.Name, Count: c.Missing()}
	}
	return out
}

// Select returns a new table holding the rows where keep[i] is true.
// Row labels and column kinds are carried over.
func (t *Table) Select(keep []bool) *Table {
	out := &Table{Name: t.Name, Columns: make([]*Column, len(t.Columns))}
	for i, k := range keep {
		if k {
			out.Index = append(out.Index, t.Index[i])
		}
	}
	for j, c := range t.Columns {
		nc := &Column{Name: c.Name, Kind: c.Kind, Values: make([]Value, 0, len(out.Index))}
		for i, k := range keep {
			if k {
				nc.Values = append(nc.Values, c.Values[i])
			}
		}
		out.Columns[j] = nc
	}
	return out
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	keep := make([]bool, t.Rows())
	for i := 0; i < n && i < len(keep); i++ {
		keep[i] = true
	}
	return t.Select(keep)
}

// Frame converts the table into a display grid with row labels.
func (t *Table) Frame() *Frame {
	f := &Frame{Columns: t.ColumnNames(), Index: make([]string, t.Rows()), Cells: make([][]string, t.Rows())}
	for i := range t.Index {
		f.Index[i] = strconv.Itoa(t.Index[i])
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Display(i)
		}
		f.Cells[i] = row
	}
	return f
}

// Frame is a rectangular grid of display strings. It is what the console and
// HTML renderers consume. Index may be nil when rows carry no labels.
type Frame struct {
	IndexName string
	Index     []string
	Columns   []string
	Cells     [][]string
}

// HasIndex reports whether the frame carries row labels.
func (f *Frame) HasIndex() bool { return f.Index != nil }

// FormatFloat renders a float the way reports show float64 cells: shortest
// representation, integral values keep a trailing ".0", NaN stays "NaN".
func FormatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if x == math.Trunc(x) && math.Abs(x) < 1e16 {
		s = strconv.FormatFloat(x, 'f', 1, 64)
	}
	return s
}

func formatValue(k Kind, v Value) string {
	if !v.Valid {
		return "NaN"
	}
	switch k {
	case KindInt:
		return strconv.FormatInt(int64(v.Num), 10)
	case KindFloat:
		return FormatFloat(v.Num)
	case KindBool:
		if v.Num != 0 {
			return "True"
		}
		return "False"
	default:
		return v.Text
	}
}
