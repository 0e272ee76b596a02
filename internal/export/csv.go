package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/utils"
)

// WriteCSV writes r as comma separated text. Only cells holding a comma,
// a double quote or a newline are quoted. headers, when given, select and
// order the columns of record lists.
func WriteCSV(w io.Writer, r query.Result, headers ...string) error {
	bw := bufio.NewWriter(w)
	t := Tabulate(r, headers...)
	if t.IsText() {
		bw.WriteString(t.Text)
		bw.WriteByte('\n')
		return bw.Flush()
	}
	writeRow(bw, stringsToCells(t.Header))
	for _, row := range t.Rows {
		writeRow(bw, row)
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, cells []any) {
	for i, c := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(quote(cellText(c)))
	}
	w.WriteByte('\n')
}

func stringsToCells(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// SaveCSV writes r to path, adding a .csv extension when missing.
// It returns the final path.
func SaveCSV(path string, r query.Result, headers ...string) (string, error) {
	path = withExt(path, ".csv")
	var buf bytes.Buffer
	if err := WriteCSV(&buf, r, headers...); err != nil {
		return path, fmt.Errorf("encode csv: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return path, err
	}
	return path, nil
}

func withExt(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}
