package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Delimiter separates fields on every line. Quoting is not supported: a value
// containing the delimiter shifts the columns of its row.
const Delimiter = ","

// NotFoundError reports a dataset path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return "dataset file not found at: " + e.Path }

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// LoadStats counts what the loader did with each input line. The loader is
// silent by default; callers ask for these numbers through LoadWithStats.
type LoadStats struct {
	Lines   int // data lines after the header, blank ones included
	Loaded  int
	Blank   int
	Dropped int // column count did not match the header
	Missing int // cells typed as missing in loaded rows
}

// Load parses a delimited text file into typed records and its header.
// An empty file yields no records and no header.
func Load(path string) ([]Record, Header, error) {
	recs, header, _, err := LoadWithStats(path)
	return recs, header, err
}

// LoadWithStats is Load plus drop/skip counters.
func LoadWithStats(path string) ([]Record, Header, LoadStats, error) {
	var st LoadStats
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, st, &NotFoundError{Path: path}
		}
		return nil, nil, st, fmt.Errorf("read dataset: %w", err)
	}
	defer f.Close()

	recs, header, st, err := parse(f)
	if err != nil {
		return nil, nil, LoadStats{}, fmt.Errorf("read dataset: %w", err)
	}
	return recs, header, st, nil
}

// Parse reads records from r using the same rules as Load.
func Parse(r io.Reader) ([]Record, Header, error) {
	recs, header, _, err := parse(r)
	return recs, header, err
}

func parse(r io.Reader) ([]Record, Header, LoadStats, error) {
	var st LoadStats
	br := bufio.NewReader(r)

	first, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) && first == "" {
			return nil, nil, st, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, nil, st, fmt.Errorf("read header: %w", err)
		}
	}
	if !utf8.ValidString(first) {
		return nil, nil, st, fmt.Errorf("read header: invalid UTF-8")
	}
	first = strings.TrimPrefix(first, "\ufeff")
	header := splitFields(first)
	ncol := len(header)

	var recs []Record
	done := errors.Is(err, io.EOF)
	for lineNo := 2; !done; lineNo++ {
		line, err := readLine(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, nil, st, fmt.Errorf("read line %d: %w", lineNo, err)
			}
			done = true
			if line == "" {
				break
			}
		}
		st.Lines++
		if strings.TrimSpace(line) == "" {
			st.Blank++
			continue
		}
		if !utf8.ValidString(line) {
			return nil, nil, st, fmt.Errorf("read line %d: invalid UTF-8", lineNo)
		}
		raw := splitFields(line)
		if len(raw) != ncol {
			st.Dropped++
			continue
		}
		vals := make([]Value, ncol)
		for i, s := range raw {
			vals[i] = ParseValue(s)
			if vals[i].IsMissing() {
				st.Missing++
			}
		}
		// header is shared by every record; Record never mutates it.
		recs = append(recs, Record{fields: header, values: vals})
		st.Loaded++
	}
	return recs, header, st, nil
}

// readLine returns one line without its terminator. At end of input it
// returns the trailing partial line (possibly empty) together with io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	return line, err
}

func splitFields(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), Delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseValue applies the typing policy to one raw cell: "N/A" and "" are
// missing, "Unknown" stays a string, then int, then float, else string.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "N/A":
		return Missing()
	case "Unknown":
		return String(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}
