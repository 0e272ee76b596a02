package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = [][]float64{
	{1},
	{3, 1, 2},
	{40, 10, 30, 20},
	{67, 61, 80, 49, 79, 81, 74, 69, 59, 78, 81, 61},
	{7.5, 6.25, 8, 5.5, 9.75, 6.5, 7},
	{-3, 0, 0, 4.2, 11.8},
}

func TestPercentile50EqualsMedian(t *testing.T) {
	for _, s := range samples {
		p, ok := Percentile(s, 50)
		require.True(t, ok)
		m, ok := Median(s)
		require.True(t, ok)
		assert.Equal(t, m, p, "sample %v", s)
	}
}

func TestQuartileOrdering(t *testing.T) {
	for _, s := range samples {
		lo, _ := Min(s)
		q1, _ := Percentile(s, 25)
		med, _ := Median(s)
		q3, _ := Percentile(s, 75)
		hi, _ := Max(s)
		assert.True(t, lo <= q1 && q1 <= med && med <= q3 && q3 <= hi,
			"ordering broken for %v: %v %v %v %v %v", s, lo, q1, med, q3, hi)
	}
}

func TestModeReturnsAllTiesAscending(t *testing.T) {
	assert.Equal(t, []float64{1, 2}, Mode([]float64{1, 1, 2, 2, 3}))
	assert.Equal(t, []float64{5}, Mode([]float64{5, 3, 5}))
	assert.Equal(t, []float64{1, 2, 3}, Mode([]float64{3, 2, 1}))
	assert.Equal(t, []float64{4}, Mode([]float64{math.NaN(), 4, math.NaN()}))

	empty := Mode(nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestEmptyInputIsAbsent(t *testing.T) {
	_, ok := Mean(nil)
	assert.False(t, ok)
	_, ok = Median(nil)
	assert.False(t, ok)
	_, ok = Min(nil)
	assert.False(t, ok)
	_, ok = Max(nil)
	assert.False(t, ok)
	_, ok = Percentile(nil, 50)
	assert.False(t, ok)
	_, ok = StdDev([]float64{4}, nil)
	assert.False(t, ok)
}

func TestPercentileBounds(t *testing.T) {
	s := []float64{1, 2, 3}
	_, ok := Percentile(s, -1)
	assert.False(t, ok)
	_, ok = Percentile(s, 100.5)
	assert.False(t, ok)

	v, ok := Percentile(s, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, _ = Percentile(s, 100)
	assert.Equal(t, 3.0, v)
}

func TestPercentileInterpolates(t *testing.T) {
	// k = 3 * 0.25 = 0.75 → 10*0.25 + 20*0.75
	v, ok := Percentile([]float64{40, 10, 30, 20}, 25)
	require.True(t, ok)
	assert.Equal(t, 17.5, v)

	// k = 2 lands on an index exactly
	v, _ = Percentile([]float64{5, 1, 3, 2, 4}, 50)
	assert.Equal(t, 3.0, v)
}

func TestMeanMedianRounding(t *testing.T) {
	m, ok := Mean([]float64{1, 2, 2})
	require.True(t, ok)
	assert.Equal(t, 1.67, m)

	med, _ := Median([]float64{1, 2, 3, 4})
	assert.Equal(t, 2.5, med)
}

func TestRoundTiesToEven(t *testing.T) {
	m, ok := Mean([]float64{1, 1, 1, 1, 1, 1, 1, 2})
	require.True(t, ok)
	assert.Equal(t, 1.12, m)

	m, _ = Mean([]float64{1, 1, 1, 1, 1, 2, 2, 2})
	assert.Equal(t, 1.38, m)

	assert.Equal(t, -1.12, Round2(-1.125))
	assert.Equal(t, 2.67, Round2(2.675)) // stored just below the tie
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}

func TestStdDevSample(t *testing.T) {
	sd, ok := StdDev([]float64{40, 10, 30, 20}, nil)
	require.True(t, ok)
	assert.Equal(t, 12.91, sd)

	centre := 20.0
	sd, ok = StdDev([]float64{10, 30}, &centre)
	require.True(t, ok)
	assert.Equal(t, 14.14, sd)
}

func TestSummarize(t *testing.T) {
	b := Summarize([]float64{7, 8, 6, 7})
	assert.Equal(t, 4, b.Count)
	require.NotNil(t, b.Mean)
	assert.Equal(t, 7.0, *b.Mean)
	assert.Equal(t, 7.0, *b.Median)
	assert.Equal(t, []float64{7}, b.Mode)
	assert.Equal(t, 6.0, *b.Min)
	assert.Equal(t, 8.0, *b.Max)
	assert.Equal(t, 6.75, *b.P25)
	assert.Equal(t, 7.25, *b.P75)
	assert.Equal(t, 0.82, *b.StdDev)

	e := Summarize(nil)
	assert.True(t, e.Empty())
	assert.Nil(t, e.Mean)
	assert.Nil(t, e.StdDev)
	assert.Nil(t, e.P75)
	assert.NotNil(t, e.Mode)
}
