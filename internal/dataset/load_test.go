package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSVKindsAndMissing(t *testing.T) {
	p := writeFile(t, "sales.csv", strings.Join([]string{
		"id,price,city,active,score",
		"1,10.5,Lima,True,3",
		"2,,Quito,False,4",
		"3,7,NA,True,",
	}, "\n"))
	tab, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Name != "sales.csv" {
		t.Fatalf("name = %q", tab.Name)
	}
	if tab.Rows() != 3 || len(tab.Columns) != 5 {
		t.Fatalf("shape = %dx%d, want 3x5", tab.Rows(), len(tab.Columns))
	}
	wantKinds := map[string]Kind{
		"id":     KindInt,
		"price":  KindFloat,
		"city":   KindObject,
		"active": KindBool,
		"score":  KindFloat, // int column promoted by the missing cell
	}
	for name, k := range wantKinds {
		if got := tab.Column(name).Kind; got != k {
			t.Errorf("%s kind = %s, want %s", name, got, k)
		}
	}
	if tab.Column("price").Missing() != 1 || tab.Column("city").Missing() != 1 {
		t.Fatalf("unexpected missing counts: %+v", tab.NullCounts())
	}
	if !math.IsNaN(tab.Column("price").Values[1].Num) {
		t.Fatalf("missing numeric cell should carry NaN")
	}
	if got := tab.Column("score").Display(0); got != "3.0" {
		t.Fatalf("score display = %q, want 3.0", got)
	}
}

func TestLoadRoundTripThroughWriteCSV(t *testing.T) {
	src := "a,b,c\n1,x y,2.5\n2,\"q,uoted\",\n3,z,-1.0\n"
	p := writeFile(t, "in.csv", src)
	tab, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out := filepath.Join(t.TempDir(), "data", "clean.csv")
	if err := WriteCSV(tab, out); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	again, err := Load(out, Options{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if strings.Join(again.ColumnNames(), ",") != "a,b,c" {
		t.Fatalf("columns = %v", again.ColumnNames())
	}
	for j, c := range tab.Columns {
		if again.Columns[j].Kind != c.Kind {
			t.Fatalf("%s kind changed: %s -> %s", c.Name, c.Kind, again.Columns[j].Kind)
		}
		for i := 0; i < tab.Rows(); i++ {
			if c.Display(i) != again.Columns[j].Display(i) {
				t.Fatalf("cell %d/%s: %q != %q", i, c.Name, c.Display(i), again.Columns[j].Display(i))
			}
		}
	}
	b, _ := os.ReadFile(out)
	if strings.HasPrefix(string(b), ",") {
		t.Fatalf("clean csv must not carry an index column: %q", b)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		msg     string
	}{
		{"empty", "", "no columns"},
		{"too many fields", "a,b\n1,2\n3,4,5\n", "expected 2 fields"},
		{"bare quote", "a,b\n1,\"x\"y\n", "read row"},
	}
	for _, c := range cases {
		p := writeFile(t, "bad.csv", c.content)
		_, err := Load(p, Options{})
		var le *LoadError
		if !errors.As(err, &le) {
			t.Fatalf("%s: expected LoadError, got %T: %v", c.name, err, err)
		}
		if IsNotFound(err) {
			t.Fatalf("%s: load error must not be NotFound", c.name)
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: error %q does not mention %q", c.name, err, c.msg)
		}
	}
}

func TestLoadDirectoryIsLoadError(t *testing.T) {
	_, err := Load(t.TempDir(), Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestLoadPadsShortRowsAndMangledHeader(t *testing.T) {
	p := writeFile(t, "h.csv", "x,x,,x\n1,2,3,4\n5\n")
	tab, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := "x,x.1,Unnamed: 2,x.2"
	if got := strings.Join(tab.ColumnNames(), ","); got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
	if tab.Column("x.2").Missing() != 1 {
		t.Fatalf("short row not padded")
	}
}

func TestMangleHeaderAvoidsExistingSuffix(t *testing.T) {
	got := strings.Join(mangleHeader([]string{"a", "a.1", "a"}), ",")
	if got != "a,a.1,a.2" {
		t.Fatalf("mangleHeader = %q", got)
	}
}

func TestLoadTSVAndDelimiterOverride(t *testing.T) {
	p := writeFile(t, "t.tsv", "a\tb\n1\t2\n")
	tab, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load tsv: %v", err)
	}
	if len(tab.Columns) != 2 {
		t.Fatalf("tsv columns = %v", tab.ColumnNames())
	}
	p2 := writeFile(t, "semi.csv", "a;b\n1;2\n")
	tab2, err := Load(p2, Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("Load semi: %v", err)
	}
	if tab2.Column("b") == nil || tab2.Column("b").Kind != KindInt {
		t.Fatalf("semicolon override failed: %v", tab2.ColumnNames())
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	rows := [][]any{
		{"name", "qty"},
		{"a", 1},
		{"b", 2},
		{"a", 1},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Data", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	tab, err := Load(p, Options{Sheet: "data"})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if tab.Rows() != 3 || tab.Column("qty").Kind != KindInt {
		t.Fatalf("unexpected xlsx table: rows=%d cols=%v", tab.Rows(), tab.ColumnNames())
	}
	if tab.DuplicateCount() != 1 {
		t.Fatalf("duplicates = %d, want 1", tab.DuplicateCount())
	}

	_, err = Load(p, Options{Sheet: "Nope"})
	if err == nil || !strings.Contains(err.Error(), "available sheets") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}
