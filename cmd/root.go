package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/strokestat-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset/export flags (override config if set)
	flagDataPath     string
	flagOutDir       string
	flagExportFormat string
	flagNoExport     bool
	flagDiagnostics  bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// logger carries the run_id of this invocation.
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "strokestat",
	Short: "strokestat: statistical queries over a stroke patient dataset",
	Long: `strokestat loads a comma-separated stroke dataset and runs a fixed catalog of
analyses over it (age, glucose, sleep and lifestyle breakdowns by stroke outcome),
printing the results and exporting each one to its own CSV or XLSX file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return loadConfig(cmd) }

	// Persistent global flags available to all subcommands
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.strokestat/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug output")
	f.StringVar(&flagDataPath, "data", "", "dataset path (overrides config data_path)")
	f.StringVar(&flagOutDir, "out-dir", "", "directory for exported result files (overrides config)")
	f.StringVar(&flagExportFormat, "export-format", "", "export file format: csv | xlsx (overrides config)")
	f.BoolVar(&flagNoExport, "no-export", false, "do not write result files")
	f.BoolVar(&flagDiagnostics, "diagnostics", false, "log dropped rows and skipped values")
}

func loadConfig(cmd *cobra.Command) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagDataPath != "" {
		cfg.DataPath = flagDataPath
	}
	if f.Changed("out-dir") && flagOutDir != "" {
		cfg.OutputDir = flagOutDir
	}
	if f.Changed("export-format") {
		cfg.ExportFormat = flagExportFormat
	}
	if f.Changed("no-export") {
		cfg.ExportEnabled = !flagNoExport
	}
	if f.Changed("diagnostics") {
		cfg.Diagnostics = flagDiagnostics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Diagnostics {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	logger = slog.New(h).With("run_id", uuid.NewString())
	return nil
}
