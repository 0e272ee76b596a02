package query

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/stats"
	"gonum.org/v1/gonum/stat"
)

// ClassBalance reports how often each value of field occurs, plus the
// number of records where it is missing.
func ClassBalance(records []dataset.Record, header dataset.Header, field string) Result {
	if !header.Has(field) {
		return ErrorResult(fmt.Sprintf("Error: Feature '%s' not found.", field))
	}
	counts := CountValues(records, field)
	total := 0
	for _, c := range counts {
		total += c.Value.(int)
	}
	m := Metrics{
		{"feature", field},
		{"total", total},
		{"missing", len(records) - total},
		{"counts", counts},
	}
	if total > 0 {
		smallest, largest := math.MaxInt, 0
		for _, c := range counts {
			n := c.Value.(int)
			smallest = min(smallest, n)
			largest = max(largest, n)
		}
		m = append(m, Metric{"minority_ratio", stats.Round2(float64(smallest) / float64(largest))})
	}
	return MetricsResult(m)
}

// FeatureCorrelation computes the Pearson correlation of two numeric
// features over the records where both are numeric.
func FeatureCorrelation(records []dataset.Record, header dataset.Header, a, b string) Result {
	for _, f := range []string{a, b} {
		if !header.Has(f) {
			return ErrorResult(fmt.Sprintf("Error: Feature '%s' not found.", f))
		}
	}
	var xs, ys []float64
	for _, r := range records {
		x, okx := r.Value(a).Number()
		y, oky := r.Value(b).Number()
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return NoDataResult(fmt.Sprintf("Not enough paired numeric data for '%s' and '%s'", a, b))
	}
	rho := stat.Correlation(xs, ys, nil)
	if math.IsNaN(rho) || math.IsInf(rho, 0) {
		return NoDataResult(fmt.Sprintf("Correlation undefined for '%s' and '%s' (zero variance)", a, b))
	}
	return MetricsResult(Metrics{
		{"feature_a", a},
		{"feature_b", b},
		{"pairs", len(xs)},
		{"pearson_r", stats.Round2(rho)},
	})
}
