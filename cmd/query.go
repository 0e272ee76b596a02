package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/render"
)

var (
	qryAll     bool
	qryFeature string
	qryFormat  string
	qryOutput  string
	qryQuiet   bool
)

var queryCmd = &cobra.Command{
	Use:   "query [name...]",
	Short: "Run one or more analyses and export their results",
	Long: `Run analyses by name (see 'strokestat queries'), or the whole catalog with --all.
Each result is printed and exported to its fixed file name in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if qryAll == (len(args) > 0) {
			return fmt.Errorf("specify either analysis names or --all")
		}
		feature := qryFeature
		if feature == "" {
			feature = cfg.DefaultFeature
		}
		s, err := openSession()
		if err != nil {
			return err
		}

		var sections []render.Section
		if qryAll {
			if !qryQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "Running %d analyses (parallelism %d)...\n", len(query.Catalog()), cfg.Parallelism)
			}
			outcomes, err := s.engine.RunAll(cmd.Context(), feature)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				sections = append(sections, section(o.Analysis, o.Result))
			}
		} else {
			// validate every name before running anything
			list := make([]query.Analysis, 0, len(args))
			for _, name := range args {
				a, err := query.Lookup(name)
				if err != nil {
					return err
				}
				if len(a.ArgNames) > 1 {
					return fmt.Errorf("%s takes %d arguments; use its own command", a.Name, len(a.ArgNames))
				}
				list = append(list, a)
			}
			for i, a := range list {
				if !qryQuiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Running %s...\n", i+1, len(list), a.Name)
				}
				var qargs []string
				if len(a.ArgNames) == 1 {
					qargs = []string{feature}
				}
				res, err := s.engine.RunAnalysis(a, qargs...)
				if err != nil {
					return err
				}
				sections = append(sections, section(a, res))
			}
		}

		if err := emit(cmd, renderFormat(cmd, qryFormat), qryOutput, sections...); err != nil {
			return err
		}
		s.reportExports(cmd, qryQuiet)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&qryAll, "all", false, "run the whole catalog")
	queryCmd.Flags().StringVar(&qryFeature, "feature", "", "feature for descriptive-statistics (default from config)")
	queryCmd.Flags().StringVarP(&qryFormat, "format", "f", "text", "output format: text | markdown | html | json | yaml")
	queryCmd.Flags().StringVarP(&qryOutput, "output", "o", "", "write the rendered results to this file instead of stdout")
	queryCmd.Flags().BoolVarP(&qryQuiet, "quiet", "q", false, "suppress progress and saved-file lines")
}
