package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

var (
	descFormat string
	descOutput string
)

var describeCmd = &cobra.Command{
	Use:   "describe <feature>",
	Short: "Descriptive statistics for one numeric feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		feature := args[0]
		if cfg.Diagnostics {
			if _, skipped := query.CollectNumeric(s.engine.Records, feature, nil); skipped > 0 {
				logger.Info("non-numeric values skipped", "feature", feature, "skipped", skipped)
			}
		}
		return runSingle(cmd, s, "descriptive-statistics", descFormat, descOutput, feature)
	},
}

// runSingle runs one analysis, renders it and reports its export.
func runSingle(cmd *cobra.Command, s *session, name, format, output string, args ...string) error {
	a, err := query.Lookup(name)
	if err != nil {
		return err
	}
	res, err := s.engine.RunAnalysis(a, args...)
	if err != nil {
		return err
	}
	if err := emit(cmd, renderFormat(cmd, format), output, section(a, res)); err != nil {
		return err
	}
	s.reportExports(cmd, false)
	return nil
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descFormat, "format", "f", "text", "output format: text | markdown | html | json | yaml")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "write the rendered result to this file")
}
