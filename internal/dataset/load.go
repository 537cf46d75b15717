package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls how an input file is read.
type Options struct {
	// Delimiter for CSV. If 0, picks by extension (tab for .tsv, comma otherwise).
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Reader loads one file format into a Table.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt Options) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry. Later registrations
// are consulted first.
func Register(r Reader) {
	registry = append([]Reader{r}, registry...)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Load reads the file at path into a Table.
// A missing file yields *NotFoundError; every other failure yields *LoadError.
func Load(path string, opt Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	for _, r := range registry {
		if !r.CanRead(path) {
			continue
		}
		t, err := r.Read(path, opt)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		return t, nil
	}
	// csvReader accepts every path, so this is only reachable with a custom registry.
	return nil, &LoadError{Path: path, Err: fmt.Errorf("no reader for %s", filepath.Ext(path))}
}

var naValues = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {}, "null": {}, "NULL": {},
	"None": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "<NA>": {}, "n/a": {},
	"1.#IND": {}, "-1.#IND": {}, "1.#QNAN": {}, "-1.#QNAN": {},
}

func isNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

// fromRecords builds a typed Table from a header and raw string rows.
// Rows shorter than the header are padded with missing cells; longer rows are an error.
func fromRecords(name string, header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, errors.New("no columns to parse from file")
	}
	names := mangleHeader(header)
	t := &Table{Name: name, Columns: make([]*Column, len(names)), Index: make([]int, len(rows))}
	for i := range rows {
		t.Index[i] = i
		if len(rows[i]) > len(names) {
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(names), i+2, len(rows[i]))
		}
	}
	for j, n := range names {
		raw := make([]string, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				raw[i] = rec[j]
			}
		}
		t.Columns[j] = buildColumn(n, raw)
	}
	return t, nil
}

// mangleHeader fills blank names and suffixes repeats (a, a.1, a.2).
func mangleHeader(header []string) []string {
	out := make([]string, len(header))
	taken := map[string]bool{}
	suffix := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		base := h
		for taken[h] {
			suffix[base]++
			h = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		taken[h] = true
		out[i] = h
	}
	return out
}

func buildColumn(name string, raw []string) *Column {
	c := &Column{Name: name, Values: make([]Value, len(raw))}
	allInt, allFloat, allBool := true, true, true
	present, missing := 0, 0
	for i, s := range raw {
		if isNA(s) {
			missing++
			continue
		}
		present++
		c.Values[i] = Value{Text: s, Valid: true}
		if allInt {
			if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, ok := parseFloat(s); !ok {
				allFloat = false
			}
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
	}
	switch {
	case present == 0:
		c.Kind = KindFloat
	case allInt && missing == 0:
		c.Kind = KindInt
	case allInt || allFloat:
		c.Kind = KindFloat
	case allBool && missing == 0:
		c.Kind = KindBool
	default:
		c.Kind = KindObject
	}
	for i := range c.Values {
		v := &c.Values[i]
		if !v.Valid {
			v.Num = math.NaN()
			continue
		}
		switch c.Kind {
		case KindInt, KindFloat:
			v.Num, _ = parseFloat(v.Text)
		case KindBool:
			if b, _ := parseBool(v.Text); b {
				v.Num = 1
			}
		}
	}
	return c
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}
