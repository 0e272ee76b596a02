package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

// inspectFields are the categorical fields whose values are listed.
var inspectFields = []string{
	query.FieldGender,
	query.FieldSmoking,
	query.FieldResidence,
	query.FieldDiet,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the dataset header, load counters and discovered categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		e := s.engine
		st := s.stats
		fmt.Fprintf(out, "✓ Loaded %d records from %s\n", len(e.Records), cfg.DataPath)
		fmt.Fprintf(out, "Columns (%d): %s\n", len(e.Header), strings.Join(e.Header, ", "))
		fmt.Fprintf(out, "Lines: %d  Loaded: %d  Blank: %d  Dropped: %d  Missing values: %d\n",
			st.Lines, st.Loaded, st.Blank, st.Dropped, st.Missing)
		if st.Dropped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %d row(s) had the wrong number of fields and were dropped\n", st.Dropped)
		}
		for _, f := range inspectFields {
			if !e.Header.Has(f) {
				continue
			}
			vals := query.Distinct(e.Records, f)
			names := make([]string, len(vals))
			for i, v := range vals {
				names[i] = v.String()
			}
			fmt.Fprintf(out, "%s: %s\n", f, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
