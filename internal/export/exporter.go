package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/utils"
)

// Format selects the file type written by an Exporter.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or xlsx)", s)
	}
}

// Save writes r to path in the given format and returns the final path.
// headers are passed through to the record-list writers.
func Save(path string, r query.Result, format Format, headers ...string) (string, error) {
	if format == FormatXLSX {
		return SaveXLSX(path, r, headers...)
	}
	return SaveCSV(path, r, headers...)
}

// Exporter is a query.Sink writing every result into Dir. Failures are
// logged and never reach the analysis. Safe for concurrent use.
type Exporter struct {
	Dir    string
	Format Format
	Logger *slog.Logger

	mu      sync.Mutex
	written []string
	failed  int
}

// Export implements query.Sink.
func (e *Exporter) Export(name string, r query.Result) {
	log := e.Logger
	if log == nil {
		log = slog.Default()
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	path, err := e.save(filepath.Join(dir, name), r)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.failed++
		log.Error("export failed", "file", path, "err", err)
		return
	}
	if abs, aerr := filepath.Abs(path); aerr == nil {
		path = abs
	}
	e.written = append(e.written, path)
	log.Info("results saved", "file", path)
}

func (e *Exporter) save(path string, r query.Result) (p string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("export panicked: %v", rec)
		}
	}()
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return path, err
	}
	return Save(path, r, e.Format)
}

// Written lists the files saved so far, in completion order.
func (e *Exporter) Written() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.written))
	copy(out, e.written)
	return out
}

// Failed is the number of exports that could not be written.
func (e *Exporter) Failed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.failed
}

var _ query.Sink = (*Exporter)(nil)
