package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/quickeda/internal/dataset"
)

// VariableInfo summarizes one column regardless of its kind.
type VariableInfo struct {
	Name    string
	Dtype   string
	Count   int // non-missing cells
	Unique  int // distinct non-missing values
	Missing int
}

// VariableSummary returns one entry per column of t, in column order.
func VariableSummary(t *dataset.Table) []VariableInfo {
	out := make([]VariableInfo, len(t.Columns))
	for j, c := range t.Columns {
		distinct := map[string]struct{}{}
		miss := 0
		for i, v := range c.Values {
			if !v.Valid {
				miss++
				continue
			}
			distinct[c.Display(i)] = struct{}{}
		}
		out[j] = VariableInfo{
			Name:    c.Name,
			Dtype:   c.Kind.String(),
			Count:   len(c.Values) - miss,
			Unique:  len(distinct),
			Missing: miss,
		}
	}
	return out
}

// SummaryFrame renders a variable summary without row labels.
func SummaryFrame(vars []VariableInfo) *dataset.Frame {
	f := &dataset.Frame{Columns: []string{"Variable", "Dtype", "Count", "Unique", "Missing"}}
	for _, v := range vars {
		f.Cells = append(f.Cells, []string{
			v.Name, v.Dtype, strconv.Itoa(v.Count), strconv.Itoa(v.Unique), strconv.Itoa(v.Missing),
		})
	}
	return f
}

// Info renders the structural overview printed after a successful load:
// row range, per-column non-null counts and kinds, and a kind tally.
func Info(t *dataset.Table) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Table: %s\n", t.Name))
	if t.Rows() == 0 {
		b.WriteString("RangeIndex: 0 entries\n")
	} else {
		b.WriteString(fmt.Sprintf("RangeIndex: %d entries, %d to %d\n", t.Rows(), t.Index[0], t.Index[t.Rows()-1]))
	}
	b.WriteString(fmt.Sprintf("Data columns (total %d columns):\n", len(t.Columns)))
	kinds := map[string]int{}
	for i, v := range VariableSummary(t) {
		b.WriteString(fmt.Sprintf(" %-3d %-20s %d non-null  %s\n", i, v.Name, v.Count, v.Dtype))
		kinds[v.Dtype]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s(%d)", k, kinds[k])
	}
	b.WriteString("dtypes: " + strings.Join(parts, ", ") + "\n")
	return b.String()
}

// Describe builds the all-columns descriptive grid: count, unique/top/freq for
// non-numeric columns and mean/std/quartiles for numeric ones. Rows that no
// column needs are omitted; cells that do not apply read "NaN".
func Describe(t *dataset.Table) *dataset.Frame {
	hasNum, hasCat := false, false
	for _, c := range t.Columns {
		if c.Kind.Numeric() {
			hasNum = true
		} else {
			hasCat = true
		}
	}
	index := []string{"count"}
	if hasCat {
		index = append(index, "unique", "top", "freq")
	}
	if hasNum {
		index = append(index, "mean", "std", "min", "25%", "50%", "75%", "max")
	}
	f := &dataset.Frame{Index: index, Columns: t.ColumnNames()}
	f.Cells = make([][]string, len(index))
	for r := range f.Cells {
		f.Cells[r] = make([]string, len(t.Columns))
		for c := range f.Cells[r] {
			f.Cells[r][c] = "NaN"
		}
	}
	row := map[string]int{}
	for i, name := range index {
		row[name] = i
	}
	for j, c := range t.Columns {
		count := len(c.Values) - c.Missing()
		f.Cells[row["count"]][j] = strconv.Itoa(count)
		if !c.Kind.Numeric() {
			if count == 0 {
				f.Cells[row["unique"]][j] = "0"
				continue
			}
			top, freq, unique := topValue(c)
			f.Cells[row["unique"]][j] = strconv.Itoa(unique)
			f.Cells[row["top"]][j] = top
			f.Cells[row["freq"]][j] = strconv.Itoa(freq)
			continue
		}
		m := describeNumbers(c.Floats())
		set := func(name string, v float64) { f.Cells[row[name]][j] = formatShort(v) }
		set("mean", m[0])
		set("std", m[4])
		set("min", m[10])
		set("25%", m[7])
		set("50%", m[8])
		set("75%", m[9])
		set("max", m[11])
	}
	return f
}

// topValue returns the most frequent display value (first seen wins ties),
// its frequency and the number of distinct values.
func topValue(c *dataset.Column) (string, int, int) {
	counts := map[string]int{}
	var order []string
	for i, v := range c.Values {
		if !v.Valid {
			continue
		}
		s := c.Display(i)
		if _, ok := counts[s]; !ok {
			order = append(order, s)
		}
		counts[s]++
	}
	top, freq := "", 0
	for _, s := range order {
		if counts[s] > freq {
			top, freq = s, counts[s]
		}
	}
	return top, freq, len(order)
}

func formatShort(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatFixed2(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
