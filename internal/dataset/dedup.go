package dataset

import "strings"

// rowKey is the canonical form used for row equality. Missing cells compare
// equal to each other and to nothing else.
func (t *Table) rowKey(i int, b *strings.Builder) string {
	b.Reset()
	for j, c := range t.Columns {
		if j > 0 {
			b.WriteByte(0x1f)
		}
		v := c.Values[i]
		if !v.Valid {
			b.WriteByte(0)
			continue
		}
		b.WriteString(c.Display(i))
	}
	return b.String()
}

// Duplicated marks every row that repeats an earlier row across all columns.
// The first occurrence is never marked.
func (t *Table) Duplicated() []bool {
	marks := make([]bool, t.Rows())
	seen := make(map[string]struct{}, t.Rows())
	var b strings.Builder
	for i := range marks {
		k := t.rowKey(i, &b)
		if _, ok := seen[k]; ok {
			marks[i] = true
			continue
		}
		seen[k] = struct{}{}
	}
	return marks
}

// DuplicateCount returns the number of rows Duplicated marks.
func (t *Table) DuplicateCount() int {
	n := 0
	for _, d := range t.Duplicated() {
		if d {
			n++
		}
	}
	return n
}

// DropDuplicates returns a new table without the rows Duplicated marks.
// Retained rows keep their relative order and original labels.
func (t *Table) DropDuplicates() *Table {
	marks := t.Duplicated()
	keep := make([]bool, len(marks))
	for i, d := range marks {
		keep[i] = !d
	}
	return t.Select(keep)
}

// DuplicateRows returns only the rows Duplicated marks.
func (t *Table) DuplicateRows() *Table {
	return t.Select(t.Duplicated())
}
