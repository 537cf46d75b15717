package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgBlue)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	sectionColor = color.New(color.Bold)
	countColor   = color.New(color.FgRed, color.Bold)
)

// maxCellWidth bounds console grid cells; longer values are truncated with "...".
const maxCellWidth = 40

// Printer writes human-facing status lines and text grids.
type Printer struct {
	Out io.Writer
}

// New returns a Printer writing to stdout.
func New() *Printer { return &Printer{Out: os.Stdout} }

func (p *Printer) out() io.Writer {
	if p == nil || p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Success prints a green "✓" line.
func (p *Printer) Success(format string, args ...any) {
	successColor.Fprintf(p.out(), "✓ "+format+"\n", args...)
}

// Info prints a blue "→" line.
func (p *Printer) Info(format string, args ...any) {
	infoColor.Fprintf(p.out(), "→ "+format+"\n", args...)
}

// Warn prints a yellow "⚠" line.
func (p *Printer) Warn(format string, args ...any) {
	warnColor.Fprintf(p.out(), "⚠ "+format+"\n", args...)
}

// Error prints a red "✗" line.
func (p *Printer) Error(format string, args ...any) {
	errorColor.Fprintf(p.out(), "✗ "+format+"\n", args...)
}

// Section prints a bold "--- title ---" header preceded by a blank line.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.out())
	sectionColor.Fprintf(p.out(), "--- %s ---\n", title)
}

// Println writes plain text.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out(), a...)
}

// Count renders n emphasised, for embedding in an Info line.
func Count(n int) string {
	return countColor.Sprint(n)
}

// Grid prints a frame as right-aligned, space-padded columns.
func (p *Printer) Grid(f *dataset.Frame) {
	fmt.Fprint(p.out(), RenderGrid(f))
}

// RenderGrid lays out a frame as text. Widths are measured in terminal cells so
// wide characters stay aligned.
func RenderGrid(f *dataset.Frame) string {
	ncol := len(f.Columns)
	if f.HasIndex() {
		ncol++
	}
	header := make([]string, 0, ncol)
	if f.HasIndex() {
		header = append(header, f.IndexName)
	}
	header = append(header, f.Columns...)
	rows := [][]string{header}
	for i, cells := range f.Cells {
		row := make([]string, 0, ncol)
		if f.HasIndex() {
			row = append(row, f.Index[i])
		}
		row = append(row, cells...)
		rows = append(rows, row)
	}

	widths := make([]int, ncol)
	for r := range rows {
		for c := range rows[r] {
			rows[r][c] = truncate(rows[r][c], maxCellWidth)
			if w := runewidth.StringWidth(rows[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			if c == 0 && f.HasIndex() {
				b.WriteString(runewidth.FillRight(cell, widths[c]))
				continue
			}
			b.WriteString(runewidth.FillLeft(cell, widths[c]))
		}
		b.WriteString("\n")
	}
	if len(f.Cells) == 0 {
		b.WriteString("(0 rows)\n")
	}
	return b.String()
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
