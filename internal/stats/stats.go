// Package stats holds the numeric primitives used by the query catalog.
// Every result is rounded to two decimals; degenerate input yields ok=false
// rather than a made-up value.
package stats

import (
	"math"
	"sort"
	"strconv"

	mstats "github.com/montanaflynn/stats"
)

// Places is the rounding precision applied to every reported statistic.
const Places = 2

// Round2 rounds to two decimals on the exact binary value, so exact ties
// go to the even digit (1.125 -> 1.12, 1.375 -> 1.38).
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', Places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// Mean is the arithmetic average.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m, err := mstats.Mean(values)
	if err != nil {
		return 0, false
	}
	return Round2(m), true
}

// Median is the middle element, or the average of the two central
// elements for even lengths.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m, err := mstats.Median(values)
	if err != nil {
		return 0, false
	}
	return Round2(m), true
}

// Mode returns every value tied for the highest count, ascending. NaN
// entries are treated as nulls and ignored. Empty input gives an empty,
// non-nil slice.
func Mode(values []float64) []float64 {
	counts := make(map[float64]int, len(values))
	best := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	out := make([]float64, 0, 1)
	for v, c := range counts {
		if c == best {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// StdDev is the sample standard deviation (n-1). When mean is nil the
// rounded Mean of values is used as the centre.
func StdDev(values []float64, mean *float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	var centre float64
	if mean != nil {
		centre = *mean
	} else {
		centre, _ = Mean(values)
	}
	var ss float64
	for _, v := range values {
		d := v - centre
		ss += d * d
	}
	return Round2(math.Sqrt(ss / float64(len(values)-1))), true
}

// Percentile uses linear interpolation between closest ranks on
// k = (n-1)*p/100. p must lie in [0, 100].
func Percentile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 || p < 0 || p > 100 || math.IsNaN(p) {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Round2(quantile(sorted, p/100)), true
}

// quantile expects sorted input and q in [0, 1].
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo]*(float64(hi)-pos) + sorted[hi]*(pos-float64(lo))
}

// Min returns the smallest value.
func Min(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m, err := mstats.Min(values)
	if err != nil {
		return 0, false
	}
	return Round2(m), true
}

// Max returns the largest value.
func Max(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m, err := mstats.Max(values)
	if err != nil {
		return 0, false
	}
	return Round2(m), true
}
