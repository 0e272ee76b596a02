package query

import (
	"bytes"
	"encoding/json"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
)

// Kind tags which shape a Result carries. Callers branch on Kind (and on
// NoData) instead of assuming metric names exist.
type Kind int

const (
	// KindMetrics is a flat, ordered metric→value mapping.
	KindMetrics Kind = iota
	// KindGroups maps a group label to that group's metrics.
	KindGroups
	// KindRecords is a list of matching records.
	KindRecords
	// KindRecordSets maps a name to a list of records.
	KindRecordSets
	// KindMessage is a bare message, usually an input error.
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindMetrics:
		return "metrics"
	case KindGroups:
		return "groups"
	case KindRecords:
		return "records"
	case KindRecordSets:
		return "record-sets"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

// MessageKey is the metric name used by "no data" results.
const MessageKey = "message"

// Metric is one named value. Value holds nil (absent), int, float64,
// string, []float64 (modes) or a nested Metrics.
type Metric struct {
	Name  string
	Value any
}

// Metrics is an ordered metric list.
type Metrics []Metric

// Get returns the value of the first metric called name.
func (m Metrics) Get(name string) (any, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether a metric called name exists.
func (m Metrics) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Names lists metric names in order.
func (m Metrics) Names() []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = e.Name
	}
	return out
}

// MarshalJSON keeps metric order.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Group is one labelled entry of a grouped result.
type Group struct {
	Label   string
	Metrics Metrics
}

// RecordSet is a named record list. Label is written into the "Group"
// column when the sets are flattened for export.
type RecordSet struct {
	Name    string
	Label   string
	Records []dataset.Record
}

// GroupField is the column added to records when record sets are flattened.
const GroupField = "Group"

// Result is the tagged union returned by every analysis.
type Result struct {
	Kind    Kind
	Metrics Metrics
	Groups  []Group
	Records []dataset.Record
	Sets    []RecordSet
	Message string
	Err     bool
}

// MetricsResult wraps a flat mapping.
func MetricsResult(m Metrics) Result { return Result{Kind: KindMetrics, Metrics: m} }

// NoDataResult is the "no data" shape: a flat mapping holding only a message.
func NoDataResult(msg string) Result {
	return MetricsResult(Metrics{{Name: MessageKey, Value: msg}})
}

// ErrorResult is an error-shaped message result.
func ErrorResult(msg string) Result { return Result{Kind: KindMessage, Message: msg, Err: true} }

// NoData reports the "no data" metrics shape.
func (r Result) NoData() bool {
	return r.Kind == KindMetrics && len(r.Metrics) == 1 && r.Metrics[0].Name == MessageKey
}

// IsError reports an error-shaped result.
func (r Result) IsError() bool { return r.Kind == KindMessage && r.Err }

// Group returns the metrics of the group with the given label.
func (r Result) Group(label string) (Metrics, bool) {
	for _, g := range r.Groups {
		if g.Label == label {
			return g.Metrics, true
		}
	}
	return nil, false
}

// Set returns the record list stored under name.
func (r Result) Set(name string) ([]dataset.Record, bool) {
	for _, s := range r.Sets {
		if s.Name == name {
			return s.Records, true
		}
	}
	return nil, false
}

// Flatten concatenates record sets in order, tagging each record with its
// set label in the Group column. Source records are not modified.
func (r Result) Flatten() []dataset.Record {
	if r.Kind == KindRecords {
		return r.Records
	}
	var out []dataset.Record
	for _, s := range r.Sets {
		for _, rec := range s.Records {
			out = append(out, rec.With(GroupField, dataset.String(s.Label)))
		}
	}
	return out
}

// Len is the number of top-level entries: metrics, groups, records, or
// the total records across sets.
func (r Result) Len() int {
	switch r.Kind {
	case KindMetrics:
		return len(r.Metrics)
	case KindGroups:
		return len(r.Groups)
	case KindRecords:
		return len(r.Records)
	case KindRecordSets:
		n := 0
		for _, s := range r.Sets {
			n += len(s.Records)
		}
		return n
	default:
		return 0
	}
}

// MarshalJSON encodes the result by shape.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindMetrics:
		return json.Marshal(r.Metrics)
	case KindGroups:
		m := make(Metrics, len(r.Groups))
		for i, g := range r.Groups {
			m[i] = Metric{Name: g.Label, Value: g.Metrics}
		}
		return json.Marshal(m)
	case KindRecords:
		if r.Records == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.Records)
	case KindRecordSets:
		m := make(Metrics, len(r.Sets))
		for i, s := range r.Sets {
			recs := s.Records
			if recs == nil {
				recs = []dataset.Record{}
			}
			m[i] = Metric{Name: s.Name, Value: recs}
		}
		return json.Marshal(m)
	default:
		return json.Marshal(struct {
			Message string `json:"message"`
			Error   bool   `json:"error,omitempty"`
		}{r.Message, r.Err})
	}
}
