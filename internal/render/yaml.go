package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

// writeYAML builds the document node by node so metric order survives.
func writeYAML(w io.Writer, sections []Section) error {
	var root *yaml.Node
	if len(sections) == 1 {
		n, err := resultNode(sections[0].Result)
		if err != nil {
			return err
		}
		root = n
	} else {
		root = mapping()
		for _, s := range sections {
			n, err := resultNode(s.Result)
			if err != nil {
				return err
			}
			root.Content = append(root.Content, key(s.Name), n)
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func mapping() *yaml.Node { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }

func key(s string) *yaml.Node { return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s} }

func resultNode(r query.Result) (*yaml.Node, error) {
	switch r.Kind {
	case query.KindMetrics:
		return metricsNode(r.Metrics)
	case query.KindGroups:
		n := mapping()
		for _, g := range r.Groups {
			v, err := metricsNode(g.Metrics)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key(g.Label), v)
		}
		return n, nil
	case query.KindRecords:
		return recordsNode(r.Records)
	case query.KindRecordSets:
		n := mapping()
		for _, s := range r.Sets {
			v, err := recordsNode(s.Records)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key(s.Name), v)
		}
		return n, nil
	default:
		return metricsNode(query.Metrics{
			{Name: query.MessageKey, Value: r.Message},
			{Name: "error", Value: r.Err},
		})
	}
}

func metricsNode(m query.Metrics) (*yaml.Node, error) {
	n := mapping()
	for _, e := range m {
		v, err := valueNode(e.Value)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, key(e.Name), v)
	}
	return n, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case query.Metrics:
		return metricsNode(x)
	case []float64:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, f := range x {
			c, err := valueNode(f)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(x); err != nil {
			return nil, fmt.Errorf("encode value: %w", err)
		}
		return n, nil
	}
}

func recordsNode(recs []dataset.Record) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range recs {
		m := mapping()
		for _, f := range rec.Fields() {
			v, err := valueNode(rec.Value(f))
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, key(f), v)
		}
		n.Content = append(n.Content, m)
	}
	return n, nil
}
