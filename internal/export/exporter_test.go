package export

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	_, err = ParseFormat("parquet")
	assert.Error(t, err)
}

func TestExporterWritesThroughEngine(t *testing.T) {
	recs, header := fixture(t)
	dir := filepath.Join(t.TempDir(), "out")
	exp := &Exporter{Dir: dir, Format: FormatCSV, Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
	e := &query.Engine{Records: recs, Header: header, Sink: exp}

	_, err := e.Run("descriptive-statistics", "Nope")
	require.NoError(t, err)
	_, err = e.Run("smokers-hypertension-stroke")
	require.NoError(t, err)

	require.Len(t, exp.Written(), 2)
	raw, err := os.ReadFile(filepath.Join(dir, "descriptive_stats_Nope.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Error: Feature 'Nope' not found.\n", string(raw))
	assert.FileExists(t, filepath.Join(dir, "smokers_hypertension_stroke.csv"))
	assert.Zero(t, exp.Failed())
}

func TestExporterFailureIsLoggedNotRaised(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var logs bytes.Buffer
	exp := &Exporter{Dir: blocker, Format: FormatCSV, Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	res := query.NoDataResult("No data")
	exp.Export("smoking_stroke", res)

	assert.Equal(t, 1, exp.Failed())
	assert.Empty(t, exp.Written())
	assert.Contains(t, logs.String(), "export failed")
}

func TestSaveXLSX(t *testing.T) {
	recs, _ := fixture(t)
	path, err := Save(filepath.Join(t.TempDir(), "smokers"), query.SmokersHypertensionStroke(recs), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Metric", "Value"}, rows[0])
	assert.Equal(t, []string{"count", "2"}, rows[2])
	assert.Equal(t, []string{"modal_age", "[60, 70]"}, rows[5])
}

func TestSaveXLSXMessage(t *testing.T) {
	path, err := SaveXLSX(filepath.Join(t.TempDir(), "msg.xlsx"), query.ErrorResult("Error: Feature 'X' not found."))
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Error: Feature 'X' not found.", v)
}
