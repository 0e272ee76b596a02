package query

import (
	"sort"
	"strconv"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
)

// Conditions maps a field name to the exact value a record must hold.
// Matching is equality only: numbers match across Int and Float, strings
// never match numbers. A nil or empty set selects every record.
type Conditions map[string]dataset.Value

// Match reports whether r satisfies every condition.
func (c Conditions) Match(r dataset.Record) bool {
	for field, want := range c {
		got, ok := r.Get(field)
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// Filter returns the records matching conds. With no conditions the input
// slice is returned as is.
func Filter(records []dataset.Record, conds Conditions) []dataset.Record {
	if len(conds) == 0 {
		return records
	}
	out := make([]dataset.Record, 0)
	for _, r := range records {
		if conds.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// NumericValues filters records by conds and collects field as numbers.
// Missing, string and "Unknown" values are skipped.
func NumericValues(records []dataset.Record, field string, conds Conditions) []float64 {
	vals, _ := CollectNumeric(records, field, conds)
	return vals
}

// CollectNumeric is NumericValues that also reports how many matching
// records were skipped because field was not numeric.
func CollectNumeric(records []dataset.Record, field string, conds Conditions) ([]float64, int) {
	var (
		vals    []float64
		skipped int
	)
	for _, r := range Filter(records, conds) {
		if x, ok := r.Value(field).Number(); ok {
			vals = append(vals, x)
			continue
		}
		skipped++
	}
	return vals, skipped
}

// Distinct collects the distinct non-empty values of field across records,
// minus any excluded sentinels, in ascending order. It is the discovery
// step that precedes per-category statistics.
func Distinct(records []dataset.Record, field string, exclude ...string) []dataset.Value {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	var out []dataset.Value
	seen := map[string]bool{}
	for _, r := range records {
		v := r.Value(field)
		if v.IsEmpty() {
			continue
		}
		if s, ok := v.Text(); ok && skip[s] {
			continue
		}
		if k := valueKey(v); !seen[k] {
			seen[k] = true
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// valueKey identifies a value the way Equal does: numbers by value,
// everything else by kind and payload.
func valueKey(v dataset.Value) string {
	if n, ok := v.Number(); ok {
		return "number:" + strconv.FormatFloat(n, 'g', -1, 64)
	}
	return v.Kind().String() + ":" + v.String()
}

// CountValues tallies the non-empty values of field in first-seen order.
func CountValues(records []dataset.Record, field string) Metrics {
	var out Metrics
	idx := map[string]int{}
	for _, r := range records {
		v := r.Value(field)
		if v.IsEmpty() {
			continue
		}
		key := valueKey(v)
		if i, ok := idx[key]; ok {
			out[i].Value = out[i].Value.(int) + 1
			continue
		}
		idx[key] = len(out)
		out = append(out, Metric{Name: v.String(), Value: 1})
	}
	return out
}
