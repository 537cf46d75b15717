package report

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/quickeda/internal/analysis"
	"github.com/KaramelBytes/quickeda/internal/console"
	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/KaramelBytes/quickeda/internal/utils"
	"github.com/KaramelBytes/quickeda/internal/viewer"
)

// DefaultTableFile is used when ExportTable gets an empty filename.
const DefaultTableFile = "tabla.html"

// Exporter writes HTML artifacts and hands them to a viewer.
type Exporter struct {
	Viewer viewer.Viewer
	Log    *slog.Logger
	// Console, when set, also gets a warning line for viewer failures.
	Console *console.Printer
	// TableFile overrides DefaultTableFile.
	TableFile string
}

func (e *Exporter) logger() *slog.Logger {
	if e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

func (e *Exporter) display(path string) {
	if e.Viewer == nil {
		return
	}
	if err := e.Viewer.Display(path); err != nil {
		if e.Console != nil {
			e.Console.Warn("Could not open '%s': %v", path, err)
		}
		e.logger().Warn("viewer failed", "path", path, "error", err)
	}
}

// ExportTable writes t as an HTML table to filename (the default table file
// when empty), overwriting it, and displays the result.
func (e *Exporter) ExportTable(t *dataset.Table, filename string) (string, error) {
	if filename == "" {
		filename = e.TableFile
	}
	if filename == "" {
		filename = DefaultTableFile
	}
	html, err := TableHTML(t.Frame(), TableOptions{})
	if err != nil {
		return "", err
	}
	if err := utils.WriteArtifact(filename, []byte(html)); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	e.logger().Info("table exported", "path", filename, "rows", t.Rows(), "columns", len(t.Columns))
	e.display(filename)
	return filename, nil
}

// StatisticsResult carries the derived tables behind the statistics report.
type StatisticsResult struct {
	Stats     *analysis.StatisticsReport
	Variables []analysis.VariableInfo
}

// ExportStatistics computes the numeric statistics and the variable summary of t,
// writes them as one HTML document to filename and displays it.
func (e *Exporter) ExportStatistics(t *dataset.Table, filename string) (*StatisticsResult, error) {
	res := &StatisticsResult{
		Stats:     analysis.Statistics(t),
		Variables: analysis.VariableSummary(t),
	}
	html, err := StatisticsHTML(res.Stats.Frame(), analysis.SummaryFrame(res.Variables))
	if err != nil {
		return nil, err
	}
	if err := utils.WriteArtifact(filename, []byte(html)); err != nil {
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}
	e.logger().Info("statistics report exported", "path", filename, "numeric_columns", len(res.Stats.Columns))
	e.display(filename)
	return res, nil
}
