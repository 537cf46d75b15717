package analysis

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCSV(t *testing.T, content string) *dataset.Table {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	tab, err := dataset.Load(p, dataset.Options{})
	require.NoError(t, err)
	return tab
}

func TestStatisticsSmallSample(t *testing.T) {
	tab := loadCSV(t, "v,label\n1,a\n2,b\n2,c\n3,d\n4,e\n")
	rep := Statistics(tab)

	require.Equal(t, []string{"v"}, rep.Columns)
	want := map[string]float64{
		"Mean":     2.40,
		"Median":   2.00,
		"Mode":     2.00,
		"Range":    3.00,
		"Stdev":    1.14,
		"Variance": 1.30,
		"IQR":      1.00,
		"25%":      2.00,
		"50%":      2.00,
		"75%":      3.00,
		"Min":      1.00,
		"Max":      4.00,
		"Skewness": 0.40,
		"Kurtosis": -0.18,
	}
	for metric, v := range want {
		assert.InDelta(t, v, rep.Value(metric, "v"), 1e-9, metric)
	}

	f := rep.Frame()
	assert.Equal(t, "Metric", f.IndexName)
	assert.Equal(t, Metrics, f.Index)
	assert.Equal(t, "2.40", f.Cells[0][0])
	assert.Equal(t, "1.00", f.Cells[10][0])
}

func TestStatisticsQuartileInterpolation(t *testing.T) {
	tab := loadCSV(t, "x\n1\n2\n3\n4\n")
	rep := Statistics(tab)
	assert.InDelta(t, 1.75, rep.Value("25%", "x"), 1e-9)
	assert.InDelta(t, 2.5, rep.Value("50%", "x"), 1e-9)
	assert.InDelta(t, 3.25, rep.Value("75%", "x"), 1e-9)
	assert.InDelta(t, 1.5, rep.Value("IQR", "x"), 1e-9)
	// every value appears once: the smallest is reported
	assert.InDelta(t, 1.0, rep.Value("Mode", "x"), 1e-9)
}

func TestStatisticsNoNumericColumns(t *testing.T) {
	tab := loadCSV(t, "name,flag\nann,True\nbob,False\n")
	rep := Statistics(tab)
	assert.Empty(t, rep.Columns)
	require.Len(t, rep.Values, len(Metrics))
	f := rep.Frame()
	assert.Len(t, f.Cells, len(Metrics))
	for _, row := range f.Cells {
		assert.Empty(t, row)
	}
}

func TestStatisticsShortAndConstantColumns(t *testing.T) {
	tab := loadCSV(t, "one,two,flat,empty\n5,1,7,\n,3,7,\n,,7,\n,,7,\n")
	rep := Statistics(tab)
	assert.Equal(t, []string{"one", "two", "flat", "empty"}, rep.Columns)

	assert.True(t, math.IsNaN(rep.Value("Stdev", "one")))
	assert.True(t, math.IsNaN(rep.Value("Skewness", "two")))
	assert.InDelta(t, 2.0, rep.Value("Mean", "two"), 1e-9)
	assert.InDelta(t, 0, rep.Value("Skewness", "flat"), 1e-9)
	assert.InDelta(t, 0, rep.Value("Kurtosis", "flat"), 1e-9)
	for _, m := range Metrics {
		assert.True(t, math.IsNaN(rep.Value(m, "empty")), m)
	}
	assert.Equal(t, "NaN", rep.Frame().Cells[0][3])
}

func TestStatisticsMultipleModesPicksSmallest(t *testing.T) {
	tab := loadCSV(t, "x\n5\n5\n1\n1\n9\n")
	assert.InDelta(t, 1.0, Statistics(tab).Value("Mode", "x"), 1e-9)
}

func TestQuantileEdges(t *testing.T) {
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
	assert.Equal(t, 3.0, quantile([]float64{3}, 0.75))
	assert.Equal(t, 1.0, quantile([]float64{1, 9}, 0))
	assert.Equal(t, 9.0, quantile([]float64{1, 9}, 1))
}

func TestStatisticsRoundsHalfToEven(t *testing.T) {
	tab := loadCSV(t, "x\n2\n2.25\n")
	rep := Statistics(tab)
	assert.InDelta(t, 2.12, rep.Value("Mean", "x"), 1e-9)
	assert.Equal(t, "2.12", rep.Frame().Cells[0][0])

	assert.Equal(t, 1.62, round2(1.625))
	assert.Equal(t, 0.38, round2(0.375))
	assert.Equal(t, -2.12, round2(-2.125))
}
