package query

import (
	"fmt"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/stats"
)

// Dataset field names the catalog relies on.
const (
	FieldAge          = "Age"
	FieldGender       = "Gender"
	FieldHypertension = "Hypertension"
	FieldHeartDisease = "Heart Disease"
	FieldSmoking      = "Smoking Status"
	FieldResidence    = "Residence Type"
	FieldGlucose      = "Average Glucose Level"
	FieldDiet         = "Dietary Habits"
	FieldSleep        = "Sleep Hours"
	FieldStroke       = "Stroke Occurrence"
)

var (
	yes = dataset.Int(1)
	no  = dataset.Int(0)

	// strokeOutcomes drives every stroke vs no-stroke split.
	strokeOutcomes = []struct {
		value dataset.Value
		label string
	}{
		{yes, "Stroke"},
		{no, "NoStroke"},
	}

	smokerStatuses = []string{"Formerly smoked", "smokes"}
	residences     = []string{"Urban", "Rural"}
)

func num(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

// ageMetrics is the count/mean/median/mode block shared by the age analyses.
func ageMetrics(ages []float64) Metrics {
	return Metrics{
		{"count", len(ages)},
		{"average_age", num(stats.Mean(ages))},
		{"median_age", num(stats.Median(ages))},
		{"modal_age", stats.Mode(ages)},
	}
}

func emptyGroup(msg string) Metrics {
	return Metrics{{"count", 0}, {MessageKey, msg}}
}

// SmokersHypertensionStroke summarizes the age of current and former
// smokers with hypertension who had a stroke.
func SmokersHypertensionStroke(records []dataset.Record) Result {
	var ages []float64
	for _, status := range smokerStatuses {
		ages = append(ages, NumericValues(records, FieldAge, Conditions{
			FieldHypertension: yes,
			FieldStroke:       yes,
			FieldSmoking:      dataset.String(status),
		})...)
	}
	if len(ages) == 0 {
		return NoDataResult("No data found for smokers with hypertension who had a stroke")
	}
	return MetricsResult(append(Metrics{
		{"description", "Smokers with hypertension who had a stroke"},
	}, ageMetrics(ages)...))
}

// HeartDiseaseStroke summarizes age and mean glucose level of heart
// disease patients who had a stroke.
func HeartDiseaseStroke(records []dataset.Record) Result {
	conds := Conditions{FieldHeartDisease: yes, FieldStroke: yes}
	matched := Filter(records, conds)
	ages := NumericValues(matched, FieldAge, nil)
	if len(ages) == 0 {
		return NoDataResult("No data found for patients with heart disease who had a stroke")
	}
	glucose := NumericValues(matched, FieldGlucose, nil)
	m := append(Metrics{{"description", "Heart disease patients who had a stroke"}}, ageMetrics(ages)...)
	m = append(m, Metric{"average_glucose_level", num(stats.Mean(glucose))})
	return MetricsResult(m)
}

// HypertensionGenderStroke splits hypertensive patients by gender and
// stroke outcome. The "Other" gender is left out. Every gender/outcome
// pair gets an entry, with a placeholder when nothing matched.
func HypertensionGenderStroke(records []dataset.Record) Result {
	genders := Distinct(records, FieldGender, "Other")
	var groups []Group
	for _, g := range genders {
		for _, o := range strokeOutcomes {
			ages := NumericValues(records, FieldAge, Conditions{
				FieldHypertension: yes,
				FieldStroke:       o.value,
				FieldGender:       g,
			})
			groups = append(groups, ageGroup(fmt.Sprintf("%s_Hypertension_%s", g, o.label), ages, "No data"))
		}
	}
	return Result{Kind: KindGroups, Groups: groups}
}

// SmokingStroke splits every smoking status present in the dataset by
// stroke outcome.
func SmokingStroke(records []dataset.Record) Result {
	statuses := Distinct(records, FieldSmoking)
	var groups []Group
	for _, s := range statuses {
		for _, o := range strokeOutcomes {
			ages := NumericValues(records, FieldAge, Conditions{FieldSmoking: s, FieldStroke: o.value})
			groups = append(groups, ageGroup(fmt.Sprintf("%s_%s", s, o.label), ages, "No data"))
		}
	}
	return Result{Kind: KindGroups, Groups: groups}
}

func ageGroup(label string, ages []float64, emptyMsg string) Group {
	if len(ages) == 0 {
		return Group{Label: label, Metrics: emptyGroup(emptyMsg)}
	}
	return Group{Label: label, Metrics: ageMetrics(ages)}
}

// ResidenceStroke compares the age of urban and rural stroke patients.
func ResidenceStroke(records []dataset.Record) Result {
	var groups []Group
	for _, res := range residences {
		ages := NumericValues(records, FieldAge, Conditions{
			FieldResidence: dataset.String(res),
			FieldStroke:    yes,
		})
		if len(ages) == 0 {
			groups = append(groups, Group{Label: res, Metrics: emptyGroup("No data for " + res)})
			continue
		}
		m := append(Metrics{{"description", res + " residents with stroke"}}, ageMetrics(ages)...)
		groups = append(groups, Group{Label: res, Metrics: m})
	}
	return Result{Kind: KindGroups, Groups: groups}
}

// DietaryHabitsStroke counts dietary habits among stroke and non-stroke
// patients.
func DietaryHabitsStroke(records []dataset.Record) Result {
	return MetricsResult(Metrics{
		{"description", "Dietary habits distribution"},
		{"stroke", CountValues(Filter(records, Conditions{FieldStroke: yes}), FieldDiet)},
		{"no_stroke", CountValues(Filter(records, Conditions{FieldStroke: no}), FieldDiet)},
	})
}

// HypertensionStrokePatients lists hypertensive patients who had a stroke.
func HypertensionStrokePatients(records []dataset.Record) Result {
	return recordsResult(Filter(records, Conditions{FieldHypertension: yes, FieldStroke: yes}))
}

// HypertensionStrokeComparison lists hypertensive patients with and
// without a stroke as two named sets.
func HypertensionStrokeComparison(records []dataset.Record) Result {
	return Result{Kind: KindRecordSets, Sets: []RecordSet{
		{
			Name:    "hypertension_led_to_stroke",
			Label:   "Stroke",
			Records: Filter(records, Conditions{FieldHypertension: yes, FieldStroke: yes}),
		},
		{
			Name:    "hypertension_did_not_lead_to_stroke",
			Label:   "No Stroke",
			Records: Filter(records, Conditions{FieldHypertension: yes, FieldStroke: no}),
		},
	}}
}

// HeartDiseaseStrokePatients lists heart disease patients who had a stroke.
func HeartDiseaseStrokePatients(records []dataset.Record) Result {
	return recordsResult(Filter(records, Conditions{FieldHeartDisease: yes, FieldStroke: yes}))
}

func recordsResult(recs []dataset.Record) Result {
	return Result{Kind: KindRecords, Records: recs}
}

// DescriptiveStatistics describes one numeric feature. An unknown feature
// or one without numeric values yields an error-shaped result.
func DescriptiveStatistics(records []dataset.Record, header dataset.Header, feature string) Result {
	if !header.Has(feature) {
		return ErrorResult(fmt.Sprintf("Error: Feature '%s' not found.", feature))
	}
	values := NumericValues(records, feature, nil)
	if len(values) == 0 {
		return ErrorResult(fmt.Sprintf("Error: No valid numeric data for '%s'.", feature))
	}
	b := stats.Summarize(values)
	return MetricsResult(Metrics{
		{"feature", feature},
		{"count", b.Count},
		{"mean", deref(b.Mean)},
		{"std_dev", deref(b.StdDev)},
		{"min", deref(b.Min)},
		{"25%", deref(b.P25)},
		{"50% (median)", deref(b.Median)},
		{"75%", deref(b.P75)},
		{"max", deref(b.Max)},
	})
}

// SleepHoursStroke compares sleep hours of stroke and non-stroke patients.
func SleepHoursStroke(records []dataset.Record) Result {
	sides := []struct {
		label string
		value dataset.Value
	}{
		{"stroke", yes},
		{"no_stroke", no},
	}
	groups := make([]Group, 0, len(sides))
	for _, s := range sides {
		hours := NumericValues(records, FieldSleep, Conditions{FieldStroke: s.value})
		if len(hours) == 0 {
			groups = append(groups, Group{Label: s.label, Metrics: emptyGroup("No data")})
			continue
		}
		groups = append(groups, Group{Label: s.label, Metrics: bundleMetrics(stats.Summarize(hours))})
	}
	return Result{Kind: KindGroups, Groups: groups}
}

func bundleMetrics(b stats.Bundle) Metrics {
	return Metrics{
		{"count", b.Count},
		{"mean", deref(b.Mean)},
		{"median", deref(b.Median)},
		{"mode", b.Mode},
		{"std_dev", deref(b.StdDev)},
		{"min", deref(b.Min)},
		{"25%", deref(b.P25)},
		{"75%", deref(b.P75)},
		{"max", deref(b.Max)},
	}
}

// deref turns an absent statistic into a nil metric value.
func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
