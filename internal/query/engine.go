package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownQuery is returned for names missing from the catalog.
var ErrUnknownQuery = errors.New("unknown query")

// Sink receives every computed result together with its export file name.
// Implementations must not fail the analysis: errors stay inside Export.
type Sink interface {
	Export(name string, r Result)
}

// Input is what an analysis reads.
type Input struct {
	Records []dataset.Record
	Header  dataset.Header
	Args    []string
}

// Analysis describes one named query.
type Analysis struct {
	Name        string
	Description string
	// ArgNames lists the positional arguments the analysis needs.
	ArgNames []string
	file     func(args []string) string
	run      func(in Input) Result
}

// File returns the export base name for the given arguments.
func (a Analysis) File(args []string) string { return a.file(args) }

// Run computes the analysis without exporting.
func (a Analysis) Run(in Input) Result { return a.run(in) }

func fixed(name string) func([]string) string {
	return func([]string) string { return name }
}

func recordsOnly(fn func([]dataset.Record) Result) func(Input) Result {
	return func(in Input) Result { return fn(in.Records) }
}

// fileSafe keeps user supplied feature names from escaping the output dir.
func fileSafe(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
}

var catalog = []Analysis{
	{
		Name:        "smokers-hypertension-stroke",
		Description: "Age statistics for smokers with hypertension who had a stroke",
		file:        fixed("smokers_hypertension_stroke"),
		run:         recordsOnly(SmokersHypertensionStroke),
	},
	{
		Name:        "heart-disease-stroke",
		Description: "Age and glucose statistics for heart disease patients who had a stroke",
		file:        fixed("heart_disease_stroke_stats"),
		run:         recordsOnly(HeartDiseaseStroke),
	},
	{
		Name:        "hypertension-gender-stroke",
		Description: "Age statistics by gender for hypertension with and without stroke",
		file:        fixed("hypertension_gender_stroke"),
		run:         recordsOnly(HypertensionGenderStroke),
	},
	{
		Name:        "smoking-stroke",
		Description: "Age statistics per smoking status, stroke vs no stroke",
		file:        fixed("smoking_stroke"),
		run:         recordsOnly(SmokingStroke),
	},
	{
		Name:        "residence-stroke",
		Description: "Age statistics of urban vs rural stroke patients",
		file:        fixed("residence_stroke"),
		run:         recordsOnly(ResidenceStroke),
	},
	{
		Name:        "dietary-habits-stroke",
		Description: "Dietary habits distribution, stroke vs no stroke",
		file:        fixed("dietary_habits_stroke"),
		run:         recordsOnly(DietaryHabitsStroke),
	},
	{
		Name:        "hypertension-stroke-patients",
		Description: "Patients whose hypertension resulted in a stroke",
		file:        fixed("hypertension_stroke_patients"),
		run:         recordsOnly(HypertensionStrokePatients),
	},
	{
		Name:        "hypertension-stroke-comparison",
		Description: "Hypertension patients with vs without a stroke",
		file:        fixed("hypertension_stroke_comparison"),
		run:         recordsOnly(HypertensionStrokeComparison),
	},
	{
		Name:        "heart-disease-stroke-patients",
		Description: "Heart disease patients who had a stroke",
		file:        fixed("heart_disease_stroke_patients"),
		run:         recordsOnly(HeartDiseaseStrokePatients),
	},
	{
		Name:        "descriptive-statistics",
		Description: "Count, mean, std dev, min, quartiles and max of a numeric feature",
		ArgNames:    []string{"feature"},
		file:        func(args []string) string { return "descriptive_stats_" + fileSafe(args[0]) },
		run: func(in Input) Result {
			return DescriptiveStatistics(in.Records, in.Header, in.Args[0])
		},
	},
	{
		Name:        "sleep-hours-stroke",
		Description: "Sleep hours statistics, stroke vs no stroke",
		file:        fixed("average_sleep_hours_stroke"),
		run:         recordsOnly(SleepHoursStroke),
	},
}

var exploration = []Analysis{
	{
		Name:        "class-balance",
		Description: "Value counts of a categorical field",
		ArgNames:    []string{"field"},
		file:        func(args []string) string { return "class_balance_" + fileSafe(args[0]) },
		run: func(in Input) Result {
			return ClassBalance(in.Records, in.Header, in.Args[0])
		},
	},
	{
		Name:        "correlation",
		Description: "Pearson correlation between two numeric features",
		ArgNames:    []string{"feature_a", "feature_b"},
		file: func(args []string) string {
			return "correlation_" + fileSafe(args[0]) + "_" + fileSafe(args[1])
		},
		run: func(in Input) Result {
			return FeatureCorrelation(in.Records, in.Header, in.Args[0], in.Args[1])
		},
	},
}

// Catalog returns the eleven fixed analyses in their canonical order.
func Catalog() []Analysis {
	out := make([]Analysis, len(catalog))
	copy(out, catalog)
	return out
}

// Exploration returns the analyses outside the fixed catalog.
func Exploration() []Analysis {
	out := make([]Analysis, len(exploration))
	copy(out, exploration)
	return out
}

// Lookup finds an analysis by name in the catalog or the exploration set.
func Lookup(name string) (Analysis, error) {
	for _, set := range [][]Analysis{catalog, exploration} {
		for _, a := range set {
			if a.Name == name {
				return a, nil
			}
		}
	}
	return Analysis{}, fmt.Errorf("%w: %s", ErrUnknownQuery, name)
}

// Engine runs analyses over one loaded dataset and hands each result to
// the sink. The dataset is shared read-only.
type Engine struct {
	Records []dataset.Record
	Header  dataset.Header
	Sink    Sink
	Logger  *slog.Logger
	// Parallelism bounds RunAll; values below 1 run sequentially.
	Parallelism int
}

// Outcome pairs an analysis with its result.
type Outcome struct {
	Analysis Analysis
	Args     []string
	Result   Result
}

// Run executes the named analysis and exports the result. The only
// errors are an unknown name or a wrong argument count.
func (e *Engine) Run(name string, args ...string) (Result, error) {
	a, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}
	return e.RunAnalysis(a, args...)
}

// RunAnalysis executes a and exports the result.
func (e *Engine) RunAnalysis(a Analysis, args ...string) (Result, error) {
	if len(args) != len(a.ArgNames) {
		return Result{}, fmt.Errorf("%s expects %d argument(s) (%s), got %d",
			a.Name, len(a.ArgNames), strings.Join(a.ArgNames, ", "), len(args))
	}
	res := a.Run(Input{Records: e.Records, Header: e.Header, Args: args})
	e.logger().Debug("analysis done", "query", a.Name, "shape", res.Kind.String(), "entries", res.Len())
	if e.Sink != nil {
		e.Sink.Export(a.File(args), res)
	}
	return res, nil
}

// RunAll runs the fixed catalog, using feature for the descriptive
// statistics entry. Results come back in catalog order whatever the
// parallelism.
func (e *Engine) RunAll(ctx context.Context, feature string) ([]Outcome, error) {
	list := Catalog()
	out := make([]Outcome, len(list))
	g, ctx := errgroup.WithContext(ctx)
	limit := e.Parallelism
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, a := range list {
		i, a := i, a
		var args []string
		if len(a.ArgNames) > 0 {
			args = []string{feature}
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.RunAnalysis(a, args...)
			if err != nil {
				return err
			}
			out[i] = Outcome{Analysis: a, Args: args, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
