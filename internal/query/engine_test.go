package query

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	names []string
}

func (s *recordingSink) Export(name string, _ Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
}

func TestCatalogOrderAndFiles(t *testing.T) {
	list := Catalog()
	require.Len(t, list, 11)
	assert.Equal(t, "smokers-hypertension-stroke", list[0].Name)
	assert.Equal(t, "sleep-hours-stroke", list[10].Name)
	assert.Equal(t, "heart_disease_stroke_stats", list[1].File(nil))
	assert.Equal(t, "descriptive_stats_Age", list[9].File([]string{"Age"}))
	assert.Equal(t, "descriptive_stats___etc_passwd", list[9].File([]string{"../etc/passwd"}))
}

func TestLookup(t *testing.T) {
	a, err := Lookup("correlation")
	require.NoError(t, err)
	assert.Equal(t, []string{"feature_a", "feature_b"}, a.ArgNames)

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownQuery)
}

func TestEngineRunExports(t *testing.T) {
	recs, header := fixture(t)
	sink := &recordingSink{}
	e := &Engine{Records: recs, Header: header, Sink: sink}

	res, err := e.Run("smokers-hypertension-stroke")
	require.NoError(t, err)
	assert.Equal(t, 2, metric(t, res.Metrics, "count"))

	res, err = e.Run("descriptive-statistics", "BMI")
	require.NoError(t, err)
	assert.True(t, res.IsError())

	assert.Equal(t, []string{"smokers_hypertension_stroke", "descriptive_stats_BMI"}, sink.names)
}

func TestEngineRunArgumentCount(t *testing.T) {
	recs, header := fixture(t)
	e := &Engine{Records: recs, Header: header}
	_, err := e.Run("descriptive-statistics")
	assert.Error(t, err)
	_, err = e.Run("residence-stroke", "extra")
	assert.Error(t, err)
}

func TestEngineRunAllKeepsOrder(t *testing.T) {
	recs, header := fixture(t)
	sink := &recordingSink{}
	e := &Engine{Records: recs, Header: header, Sink: sink, Parallelism: 4}

	out, err := e.RunAll(context.Background(), FieldAge)
	require.NoError(t, err)
	require.Len(t, out, 11)
	for i, a := range Catalog() {
		assert.Equal(t, a.Name, out[i].Analysis.Name)
	}
	assert.Equal(t, []string{FieldAge}, out[9].Args)
	assert.Equal(t, 56.67, metric(t, out[9].Result.Metrics, "mean"))

	sort.Strings(sink.names)
	assert.Len(t, sink.names, 11)
	assert.Contains(t, sink.names, "descriptive_stats_Age")
}

func TestEngineRunAllCancelled(t *testing.T) {
	recs, header := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Engine{Records: recs, Header: header}
	_, err := e.RunAll(ctx, FieldAge)
	assert.ErrorIs(t, err, context.Canceled)
}
