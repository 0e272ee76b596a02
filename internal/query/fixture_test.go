package query

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/stretchr/testify/require"
)

const strokeCSV = `Age,Gender,Hypertension,Heart Disease,Smoking Status,Residence Type,Average Glucose Level,Dietary Habits,Sleep Hours,Stroke Occurrence
60,Male,1,1,smokes,Urban,150,Vegan,6,1
70,Female,1,0,Formerly smoked,Rural,120,Non-Vegetarian,7,1
50,Male,1,0,never smoked,Urban,90,Vegan,8,0
45,Other,1,0,Unknown,Rural,100,Paleo,7,0
80,Female,0,1,smokes,Urban,200.5,Vegan,5,1
35,Male,0,0,never smoked,Rural,85,Paleo,9,0
`

func load(t *testing.T, src string) ([]dataset.Record, dataset.Header) {
	t.Helper()
	recs, header, err := dataset.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return recs, header
}

func fixture(t *testing.T) ([]dataset.Record, dataset.Header) {
	return load(t, strokeCSV)
}

func metric(t *testing.T, m Metrics, name string) any {
	t.Helper()
	v, ok := m.Get(name)
	require.Truef(t, ok, "metric %q missing from %v", name, m.Names())
	return v
}
