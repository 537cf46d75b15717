package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/quickeda/internal/analysis"
	"github.com/KaramelBytes/quickeda/internal/console"
	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/KaramelBytes/quickeda/internal/heatmap"
	"github.com/KaramelBytes/quickeda/internal/report"
	"github.com/KaramelBytes/quickeda/internal/viewer"
	"github.com/google/uuid"
)

// Paths lists where each artifact is written.
type Paths struct {
	Input          string
	CleanCSV       string
	Heatmap        string
	TableHTML      string
	DuplicatesHTML string
	ReportHTML     string
}

// DefaultPaths mirrors the fixed layout analysts expect in the working directory.
func DefaultPaths() Paths {
	return Paths{
		Input:          "data/datos_actualizados.csv",
		CleanCSV:       "data/clean_data.csv",
		Heatmap:        heatmap.DefaultFile,
		TableHTML:      report.DefaultTableFile,
		DuplicatesHTML: "duplicados.html",
		ReportHTML:     "reporte_estadistico.html",
	}
}

// Pipeline runs the whole analysis of one input file.
type Pipeline struct {
	Paths    Paths
	Load     dataset.Options
	HeadRows int
	Viewer   viewer.Viewer
	Console  *console.Printer
	Log      *slog.Logger
}

// Result describes what a run produced.
type Result struct {
	RunID string
	// Loaded is false when the input could not be read; nothing else ran.
	Loaded     bool
	LoadErr    error
	Rows       int
	Duplicates int
	Heatmap    bool
	Artifacts  []string
	Statistics *report.StatisticsResult
}

func (p *Pipeline) viewer() viewer.Viewer {
	if p.Viewer == nil {
		return viewer.Nop{}
	}
	return p.Viewer
}

func (p *Pipeline) display(out *console.Printer, log *slog.Logger, path string) {
	if err := p.viewer().Display(path); err != nil {
		out.Warn("Could not open '%s': %v", path, err)
		log.Warn("viewer failed", "path", path, "error", err)
	}
}

// Run executes every stage in order. A load failure is reported and ends the
// run without error; errors are returned only when an artifact cannot be written.
func (p *Pipeline) Run() (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("run_id", res.RunID)
	out := p.Console
	if out == nil {
		out = console.New()
	}

	tab, err := p.load(out, log)
	if err != nil {
		res.LoadErr = err
		return res, nil
	}
	res.Loaded = true
	res.Rows = tab.Rows()

	// Missing-value heat map on the raw table.
	ok, err := heatmap.RenderMissing(tab, p.Paths.Heatmap)
	if err != nil {
		return res, err
	}
	if ok {
		res.Heatmap = true
		res.Artifacts = append(res.Artifacts, p.Paths.Heatmap)
		out.Success("Heatmap image saved as '%s'.", p.Paths.Heatmap)
		log.Info("heatmap rendered", "stage", "missing", "path", p.Paths.Heatmap,
			"columns", len(heatmap.MissingColumns(tab)))
		p.display(out, log, p.Paths.Heatmap)
	} else {
		out.Success("No missing values to plot!")
		log.Info("heatmap skipped", "stage", "missing")
	}

	// Duplicates.
	res.Duplicates = tab.DuplicateCount()
	out.Info("The data contains %s duplicate rows.", console.Count(res.Duplicates))
	log.Info("duplicates counted", "stage", "duplicates", "count", res.Duplicates)
	clean := tab.DropDuplicates()

	if err := dataset.WriteCSV(clean, p.Paths.CleanCSV); err != nil {
		return res, fmt.Errorf("write clean data: %w", err)
	}
	res.Artifacts = append(res.Artifacts, p.Paths.CleanCSV)
	out.Success("Duplicate rows removed and clean data saved to '%s'.", p.Paths.CleanCSV)

	exp := &report.Exporter{Viewer: p.viewer(), Log: log, Console: out, TableFile: p.Paths.TableHTML}
	path, err := exp.ExportTable(clean, "")
	if err != nil {
		return res, err
	}
	res.Artifacts = append(res.Artifacts, path)

	stats, err := exp.ExportStatistics(clean, p.Paths.ReportHTML)
	if err != nil {
		return res, err
	}
	res.Statistics = stats
	res.Artifacts = append(res.Artifacts, p.Paths.ReportHTML)
	out.Success("Statistics report exported to '%s' and opened in the browser.", p.Paths.ReportHTML)

	if res.Duplicates > 0 {
		path, err := exp.ExportTable(tab.DuplicateRows(), p.Paths.DuplicatesHTML)
		if err != nil {
			return res, err
		}
		res.Artifacts = append(res.Artifacts, path)
		out.Success("Duplicate rows exported to '%s'.", path)
	}
	log.Info("run complete", "artifacts", len(res.Artifacts))
	return res, nil
}

// load reads the input and prints the structural diagnostics. On failure it
// prints the reason and returns the error for the caller to short-circuit on.
func (p *Pipeline) load(out *console.Printer, log *slog.Logger) (*dataset.Table, error) {
	tab, err := dataset.Load(p.Paths.Input, p.Load)
	if err != nil {
		if dataset.IsNotFound(err) {
			out.Error("Error: File not found. Check the file path (%s).", p.Paths.Input)
			log.Error("input not found", "stage", "load", "path", p.Paths.Input)
		} else {
			out.Error("An error occurred: %v", err)
			log.Error("load failed", "stage", "load", "path", p.Paths.Input, "error", err)
		}
		return nil, err
	}
	out.Success("Dataset loaded successfully.")
	log.Info("dataset loaded", "stage", "load", "path", p.Paths.Input, "rows", tab.Rows(), "columns", len(tab.Columns))

	out.Section("DataFrame Info")
	out.Println(analysis.Info(tab))
	out.Section("DataFrame Head")
	n := p.HeadRows
	if n <= 0 {
		n = 5
	}
	out.Grid(tab.Head(n).Frame())
	out.Section("DataFrame Describe")
	out.Grid(analysis.Describe(tab))
	return tab, nil
}
