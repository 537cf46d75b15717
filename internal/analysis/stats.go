package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Metrics names the statistics computed for every numeric column, in report order.
var Metrics = []string{
	"Mean", "Median", "Mode", "Range", "Stdev", "Variance", "IQR",
	"25%", "50%", "75%", "Min", "Max", "Skewness", "Kurtosis",
}

// StatisticsReport holds one row per metric and one column per numeric input column.
type StatisticsReport struct {
	Columns []string
	// Values[m][c] is metric m of column c, rounded to two decimals.
	Values [][]float64
}

// Value returns the named metric of the named column, or NaN when either is unknown.
func (r *StatisticsReport) Value(metric, column string) float64 {
	mi, ci := -1, -1
	for i, m := range Metrics {
		if m == metric {
			mi = i
		}
	}
	for i, c := range r.Columns {
		if c == column {
			ci = i
		}
	}
	if mi < 0 || ci < 0 {
		return math.NaN()
	}
	return r.Values[mi][ci]
}

// Frame renders the report with two decimals and the metric names as index.
func (r *StatisticsReport) Frame() *dataset.Frame {
	f := &dataset.Frame{IndexName: "Metric", Index: append([]string(nil), Metrics...), Columns: r.Columns}
	f.Cells = make([][]string, len(Metrics))
	for m := range Metrics {
		row := make([]string, len(r.Columns))
		for c := range r.Columns {
			row[c] = formatFixed2(r.Values[m][c])
		}
		f.Cells[m] = row
	}
	return f
}

// Statistics computes the descriptive metrics for every numeric column of t.
// A table without numeric columns yields a valid report with no columns.
func Statistics(t *dataset.Table) *StatisticsReport {
	num := t.NumericColumns()
	r := &StatisticsReport{Columns: make([]string, len(num)), Values: make([][]float64, len(Metrics))}
	for m := range r.Values {
		r.Values[m] = make([]float64, len(num))
	}
	for c, col := range num {
		r.Columns[c] = col.Name
		for m, v := range describeNumbers(col.Floats()) {
			r.Values[m][c] = round2(v)
		}
	}
	return r
}

// describeNumbers returns the metrics in Metrics order for one sample.
func describeNumbers(x []float64) []float64 {
	out := make([]float64, len(Metrics))
	if len(x) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(x)
	median, _ := stats.Median(x)
	lo, _ := stats.Min(x)
	hi, _ := stats.Max(x)
	mode := smallestMode(sorted)
	variance, std := math.NaN(), math.NaN()
	if len(x) > 1 {
		variance = stat.Variance(x, nil)
		std = stat.StdDev(x, nil)
	}
	q1 := quantile(sorted, 0.25)
	q2 := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)

	return []float64{
		mean,
		median,
		mode,
		hi - lo,
		std,
		variance,
		q3 - q1,
		q1,
		q2,
		q3,
		lo,
		hi,
		skewness(x, variance),
		kurtosis(x, variance),
	}
}

// smallestMode returns the smallest of the most frequent values.
func smallestMode(sorted []float64) float64 {
	best, bestN := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestN {
			best, bestN = sorted[i], j-i
		}
		i = j
	}
	return best
}

// skewness is the adjusted Fisher-Pearson coefficient; NaN below three values.
func skewness(x []float64, variance float64) float64 {
	if len(x) < 3 {
		return math.NaN()
	}
	if variance == 0 {
		return 0
	}
	return stat.Skew(x, nil)
}

// kurtosis is the bias-corrected excess kurtosis; NaN below four values.
func kurtosis(x []float64, variance float64) float64 {
	if len(x) < 4 {
		return math.NaN()
	}
	if variance == 0 {
		return 0
	}
	return stat.ExKurtosis(x, nil)
}

// quantile interpolates linearly between closest ranks at position q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// round2 rounds to two decimals, ties to even.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.RoundToEven(v*100) / 100
}
