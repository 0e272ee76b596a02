package stats

// Bundle is the statistic bundle for one numeric sequence. Pointer fields
// are nil when the sequence cannot support them: everything is nil for an
// empty sequence and StdDev is also nil below two elements.
type Bundle struct {
	Count  int
	Mean   *float64
	Median *float64
	Mode   []float64
	StdDev *float64
	Min    *float64
	Max    *float64
	P25    *float64
	P75    *float64
}

// Empty reports a bundle computed over no values.
func (b Bundle) Empty() bool { return b.Count == 0 }

// Summarize computes the full bundle for values.
func Summarize(values []float64) Bundle {
	b := Bundle{Count: len(values), Mode: Mode(values)}
	b.Mean = opt(Mean(values))
	b.Median = opt(Median(values))
	b.StdDev = opt(StdDev(values, nil))
	b.Min = opt(Min(values))
	b.Max = opt(Max(values))
	b.P25 = opt(Percentile(values, 25))
	b.P75 = opt(Percentile(values, 75))
	return b
}

func opt(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
