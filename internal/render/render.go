// Package render formats query results for the terminal and for reports.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/export"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/utils"
)

// Format is an output flavour.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat maps a user supplied name to a Format. "md" and "yml" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text, markdown, html, json or yaml)", s)
	}
}

// Section is one titled result.
type Section struct {
	// Name keys the section in JSON and YAML output.
	Name   string
	Title  string
	Result query.Result
}

// Write renders sections to w.
func Write(w io.Writer, f Format, sections ...Section) error {
	switch f {
	case FormatJSON:
		b, err := utils.PrettyJSON(keyed(sections))
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		return writeYAML(w, sections)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(sections...))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(sections...))
		return err
	default:
		_, err := io.WriteString(w, Text(sections...))
		return err
	}
}

// keyed turns a lone section into its bare result and several into an
// ordered name → result mapping.
func keyed(sections []Section) any {
	if len(sections) == 1 {
		return sections[0].Result
	}
	m := make(query.Metrics, len(sections))
	for i, s := range sections {
		m[i] = query.Metric{Name: s.Name, Value: s.Result}
	}
	return m
}

// Text renders a compact plain report.
func Text(sections ...Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(s.Title)))
		r := s.Result
		switch r.Kind {
		case query.KindMetrics:
			writeMetrics(&b, r.Metrics, "- ")
		case query.KindGroups:
			for _, g := range r.Groups {
				b.WriteString(fmt.Sprintf("- %s\n", g.Label))
				writeMetrics(&b, g.Metrics, "  • ")
			}
		case query.KindRecords:
			writeRecords(&b, "", r.Records)
		case query.KindRecordSets:
			for _, set := range r.Sets {
				writeRecords(&b, set.Name, set.Records)
			}
		default:
			b.WriteString(r.Message + "\n")
		}
	}
	return b.String()
}

func writeMetrics(b *strings.Builder, m query.Metrics, bullet string) {
	for _, e := range m {
		b.WriteString(fmt.Sprintf("%s%s: %s\n", bullet, e.Name, Value(e.Value)))
	}
}

func writeRecords(b *strings.Builder, name string, recs []dataset.Record) {
	if name != "" {
		b.WriteString(fmt.Sprintf("%s (%d records)\n", name, len(recs)))
	} else {
		b.WriteString(fmt.Sprintf("Records: %d\n", len(recs)))
	}
	for _, r := range recs {
		b.WriteString("  " + r.String() + "\n")
	}
}

// Value renders a metric value inline. Absent values show as N/A.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "N/A"
	case query.Metrics:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprintf("%s: %s", e.Name, Value(e.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = fmt.Sprintf("%g", f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

// Markdown renders sections as headed tables.
func Markdown(sections ...Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("## %s\n\n", safeVal(s.Title)))
		r := s.Result
		switch r.Kind {
		case query.KindGroups:
			for _, g := range r.Groups {
				b.WriteString(fmt.Sprintf("### %s\n\n", safeVal(g.Label)))
				writeTable(&b, query.MetricsResult(g.Metrics))
			}
		case query.KindRecordSets:
			for _, set := range r.Sets {
				b.WriteString(fmt.Sprintf("### %s (%d)\n\n", safeVal(set.Name), len(set.Records)))
				writeTable(&b, query.Result{Kind: query.KindRecords, Records: set.Records})
			}
		default:
			writeTable(&b, r)
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, r query.Result) {
	t := export.Tabulate(r)
	if t.IsText() {
		if r.Kind == query.KindRecords {
			b.WriteString("_No matching records._\n\n")
			return
		}
		b.WriteString(fmt.Sprintf("> %s\n\n", safeVal(t.Text)))
		return
	}
	b.WriteString("| " + strings.Join(mapStrings(t.Header, safeVal), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(t.Header)) + "\n")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = safeVal(cell(c))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "N/A"
	case fmt.Stringer:
		return x.String()
	case float64, []float64, query.Metrics:
		return Value(x)
	default:
		return fmt.Sprint(x)
	}
}

// HTML renders the markdown report as an HTML fragment.
func HTML(sections ...Section) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(Markdown(sections...)), p, r)
	return bytes.TrimLeft(out, "\n")
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
