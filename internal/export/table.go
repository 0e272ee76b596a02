// Package export writes query results to flat files.
package export

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

// Table is the flat form of a Result. Results with no tabular form
// (messages, empty record lists) carry only Text.
type Table struct {
	Header []string
	Rows   [][]any
	Text   string
}

// IsText reports a table that is written as a single line.
func (t Table) IsText() bool { return t.Header == nil }

// Tabulate flattens r. Mappings become Metric/Value rows with nested
// values inlined. Record lists use headers when given, otherwise the
// fields of the first record; a field a record lacks is left empty.
func Tabulate(r query.Result, headers ...string) Table {
	switch r.Kind {
	case query.KindMetrics:
		return metricRows(r.Metrics)
	case query.KindGroups:
		m := make(query.Metrics, len(r.Groups))
		for i, g := range r.Groups {
			m[i] = query.Metric{Name: g.Label, Value: g.Metrics}
		}
		return metricRows(m)
	case query.KindRecords, query.KindRecordSets:
		return recordRows(r.Flatten(), headers)
	default:
		return Table{Text: r.Message}
	}
}

func metricRows(m query.Metrics) Table {
	t := Table{Header: []string{"Metric", "Value"}}
	for _, e := range m {
		var v any
		switch x := e.Value.(type) {
		case query.Metrics, []float64:
			v = inline(x)
		default:
			v = x
		}
		t.Rows = append(t.Rows, []any{e.Name, v})
	}
	return t
}

func recordRows(recs []dataset.Record, headers []string) Table {
	if len(recs) == 0 {
		return Table{Text: "[]"}
	}
	t := Table{Header: recs[0].Fields()}
	if len(headers) > 0 {
		t.Header = append([]string(nil), headers...)
	}
	for _, rec := range recs {
		row := make([]any, len(t.Header))
		for i, f := range t.Header {
			if v, ok := rec.Get(f); ok && !v.IsMissing() {
				row[i] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// inline renders a nested value as readable text: "k: v, k: v" for
// mappings and "[a, b]" for lists.
func inline(v any) string {
	switch x := v.(type) {
	case query.Metrics:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = e.Name + ": " + nested(e.Value)
		}
		return strings.Join(parts, ", ")
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return nested(v)
	}
}

func nested(v any) string {
	switch x := v.(type) {
	case nil:
		return "N/A"
	case query.Metrics:
		return "{" + inline(x) + "}"
	case []float64:
		return inline(x)
	default:
		return cellText(x)
	}
}

// cellText renders a scalar cell. nil is the empty string.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return dataset.Float(x).String()
	case dataset.Value:
		return x.String()
	case []float64, query.Metrics:
		return inline(x)
	default:
		return ""
	}
}
