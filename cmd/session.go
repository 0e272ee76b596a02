package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/export"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/render"
	"github.com/KaramelBytes/strokestat-cli/internal/utils"
)

// session is one loaded dataset plus the engine and exporter built on it.
type session struct {
	engine   *query.Engine
	exporter *export.Exporter
	stats    dataset.LoadStats
}

func openSession() (*session, error) {
	recs, header, st, err := dataset.LoadWithStats(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	if cfg.Diagnostics {
		logger.Info("dataset loaded",
			"path", cfg.DataPath,
			"lines", st.Lines,
			"loaded", st.Loaded,
			"blank", st.Blank,
			"dropped", st.Dropped,
			"missing", st.Missing,
		)
	}
	s := &session{
		engine: &query.Engine{
			Records:     recs,
			Header:      header,
			Logger:      logger,
			Parallelism: cfg.Parallelism,
		},
		stats: st,
	}
	if cfg.ExportEnabled {
		format, err := export.ParseFormat(cfg.ExportFormat)
		if err != nil {
			return nil, err
		}
		s.exporter = &export.Exporter{Dir: cfg.OutputDir, Format: format, Logger: logger}
		s.engine.Sink = s.exporter
	}
	return s, nil
}

// reportExports prints one line per saved file and a warning when some
// exports failed.
func (s *session) reportExports(cmd *cobra.Command, quiet bool) {
	if s.exporter == nil {
		return
	}
	if !quiet {
		for _, p := range s.exporter.Written() {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", p)
		}
	}
	if n := s.exporter.Failed(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %d export(s) failed (see log)\n", n)
	}
}

// emit renders sections to the --output file, or to stdout.
func emit(cmd *cobra.Command, formatName, output string, sections ...render.Section) error {
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if output == "" {
		return render.Write(cmd.OutOrStdout(), format, sections...)
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, format, sections...); err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(output)); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(output, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote results to %s\n", output)
	return nil
}

// renderFormat picks the --format flag when set, else the configured one.
func renderFormat(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("format") {
		return flagValue
	}
	return cfg.RenderFormat
}

func section(a query.Analysis, res query.Result) render.Section {
	return render.Section{Name: a.Name, Title: a.Description, Result: res}
}
