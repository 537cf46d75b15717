// Package heatmap renders the per-column missing-value heat map.
package heatmap

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/KaramelBytes/quickeda/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// DefaultFile is where the image goes when no path is configured.
	DefaultFile = "missing_heatmap.png"

	title         = "Missing Values per Column"
	colorBarLabel = "Count of missing values"
	paletteSize   = 255
)

// MissingColumns returns the columns with at least one missing cell, in table order.
func MissingColumns(t *dataset.Table) []dataset.ColumnCount {
	var out []dataset.ColumnCount
	for _, c := range t.NullCounts() {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

// missingGrid is a single-row grid: one cell per column with missing values.
type missingGrid []dataset.ColumnCount

func (g missingGrid) Dims() (c, r int)   { return len(g), 1 }
func (g missingGrid) Z(c, _ int) float64 { return float64(g[c].Count) }
func (g missingGrid) X(c int) float64    { return float64(c) }
func (g missingGrid) Y(int) float64      { return 0 }

// RenderMissing draws the heat map of missing-value counts for t and saves it
// as a PNG at path. It reports false, without writing anything, when no column
// has missing values.
func RenderMissing(t *dataset.Table, path string) (bool, error) {
	cols := MissingColumns(t)
	if len(cols) == 0 {
		return false, nil
	}
	png, err := renderPNG(cols)
	if err != nil {
		return false, err
	}
	if path == "" {
		path = DefaultFile
	}
	if err := utils.WriteArtifact(path, png); err != nil {
		return false, fmt.Errorf("write heatmap: %w", err)
	}
	return true, nil
}

func renderPNG(cols []dataset.ColumnCount) ([]byte, error) {
	maxCount := 0
	for _, c := range cols {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(float64(maxCount))

	hm := plotter.NewHeatMap(missingGrid(cols), cmap.Palette(paletteSize))
	hm.Min = 0
	hm.Max = float64(maxCount)

	hmPlot := plot.New()
	hmPlot.Title.Text = title
	hmPlot.Add(hm)
	hmPlot.HideY()
	ticks := make([]plot.Tick, len(cols))
	xys := make(plotter.XYs, len(cols))
	labels := make([]string, len(cols))
	for i, c := range cols {
		ticks[i] = plot.Tick{Value: float64(i), Label: c.Name}
		xys[i] = plotter.XY{X: float64(i), Y: 0}
		labels[i] = strconv.Itoa(c.Count)
	}
	hmPlot.X.Tick.Marker = plot.ConstantTicks(ticks)
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("annotate heatmap: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}
	hmPlot.Add(annotations)

	legend := plot.New()
	legend.Add(&plotter.ColorBar{ColorMap: cmap})
	legend.HideY()
	legend.X.Label.Text = colorBarLabel

	width := vg.Length(1.2*float64(len(cols))) * vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	height := 2.5 * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	split := height * 0.35
	hmPlot.Draw(draw.Crop(dc, 0, 0, split, 0))
	legend.Draw(draw.Crop(dc, 0, 0, 0, split-height))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
