package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

const strokeCSV = `Age,Gender,Hypertension,Heart Disease,Smoking Status,Residence Type,Average Glucose Level,Dietary Habits,Sleep Hours,Stroke Occurrence
60,Male,1,1,smokes,Urban,150,Vegan,6,1
70,Female,1,0,Formerly smoked,Rural,120,Non-Vegetarian,7,1
50,Male,1,0,never smoked,Urban,90,Vegan,8,0
45,Other,1,0,Unknown,Rural,100,Paleo,7,0
80,Female,0,1,smokes,Urban,200.5,Vegan,5,1
35,Male,0,0,never smoked,Rural,85,Paleo,9,0
12,Male
`

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) (data, outDir string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	data = filepath.Join(home, "stroke_data.csv")
	require.NoError(t, os.WriteFile(data, []byte(strokeCSV), 0o644))
	return data, filepath.Join(home, "results")
}

func TestCLI_QueryAllExportsEveryAnalysis(t *testing.T) {
	data, outDir := setup(t)
	_, err := runCmd(t, "query", "--all", "--data", data, "--out-dir", outDir, "-q")
	require.NoError(t, err)

	for _, a := range query.Catalog() {
		var args []string
		if len(a.ArgNames) > 0 {
			args = []string{"Age"}
		}
		assert.FileExists(t, filepath.Join(outDir, a.File(args)+".csv"))
	}

	// list-of-matches exports reload as datasets
	recs, header, err := dataset.Load(filepath.Join(outDir, "hypertension_stroke_patients.csv"))
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "Age", header[0])
}

func TestCLI_QueryJSONToStdout(t *testing.T) {
	data, outDir := setup(t)
	out, err := runCmd(t, "query", "smokers-hypertension-stroke", "--data", data, "--out-dir", outDir, "--format", "json", "-q")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(2), decoded["count"])
	assert.Equal(t, 65.0, decoded["average_age"])
}

func TestCLI_DescribeUnknownFeatureStillExports(t *testing.T) {
	data, outDir := setup(t)
	out, err := runCmd(t, "describe", "BMI", "--data", data, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Feature 'BMI' not found.")
	assert.Contains(t, out, "✓ Saved")

	b, err := os.ReadFile(filepath.Join(outDir, "descriptive_stats_BMI.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Error: Feature 'BMI' not found.\n", string(b))
}

func TestCLI_NoExportWritesNothing(t *testing.T) {
	data, outDir := setup(t)
	out, err := runCmd(t, "balance", "Gender", "--data", data, "--out-dir", outDir, "--no-export")
	require.NoError(t, err)
	assert.Contains(t, out, "- total: 6")
	assert.NoDirExists(t, outDir)
}

func TestCLI_CorrelateXLSX(t *testing.T) {
	data, outDir := setup(t)
	_, err := runCmd(t, "correlate", "Age", "Sleep Hours", "--data", data, "--out-dir", outDir, "--export-format", "xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "correlation_Age_Sleep Hours.xlsx"))
}

func TestCLI_InspectReportsDroppedRows(t *testing.T) {
	data, _ := setup(t)
	out, err := runCmd(t, "inspect", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Loaded 6 records")
	assert.Contains(t, out, "Dropped: 1")
	assert.Contains(t, out, "Gender: Female, Male, Other")
}

func TestCLI_Errors(t *testing.T) {
	data, outDir := setup(t)

	_, err := runCmd(t, "query", "--data", filepath.Join(outDir, "missing.csv"), "--all")
	var nf *dataset.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, err.Error(), "dataset file not found at:")

	_, err = runCmd(t, "query", "nope", "--data", data, "--no-export")
	assert.ErrorIs(t, err, query.ErrUnknownQuery)

	_, err = runCmd(t, "query", "--data", data)
	assert.Error(t, err)

	_, err = runCmd(t, "query", "--all", "--data", data, "--export-format", "parquet")
	assert.Error(t, err)
}

func TestCLI_QueryOutputFile(t *testing.T) {
	data, outDir := setup(t)
	report := filepath.Join(outDir, "report.md")
	out, err := runCmd(t, "query", "residence-stroke", "sleep-hours-stroke", "--data", data, "--no-export", "--format", "markdown", "--output", report)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote results to")

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "## "))
	assert.Contains(t, string(b), "### Urban")
	assert.Contains(t, string(b), "### no_stroke")
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setup(t)
	_, err := runCmd(t, "config", "set", "default_feature", "Sleep Hours")
	require.NoError(t, err)
	_, err = runCmd(t, "config", "set", "parallelism", "0")
	assert.Error(t, err)
	_, err = runCmd(t, "config", "set", "bogus", "1")
	assert.Error(t, err)

	out, err := runCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_feature: Sleep Hours")
	assert.Contains(t, out, "parallelism: 4")
}
