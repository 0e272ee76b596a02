package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/strokestat-cli/internal/query"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the available analyses and their export file names",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Catalog:")
		for i, a := range query.Catalog() {
			fmt.Fprintf(out, "%2d. %-32s %s\n", i+1, a.Name+argSuffix(a), a.Description)
			fmt.Fprintf(out, "    → %s\n", exportName(a))
		}
		fmt.Fprintln(out, "\nExploration:")
		for _, a := range query.Exploration() {
			fmt.Fprintf(out, "  - %-32s %s\n", a.Name+argSuffix(a), a.Description)
		}
		return nil
	},
}

func argSuffix(a query.Analysis) string {
	if len(a.ArgNames) == 0 {
		return ""
	}
	return " <" + strings.Join(a.ArgNames, "> <") + ">"
}

func exportName(a query.Analysis) string {
	placeholders := make([]string, len(a.ArgNames))
	for i, n := range a.ArgNames {
		placeholders[i] = "<" + n + ">"
	}
	return a.File(placeholders) + "." + cfg.ExportFormat
}

func init() {
	rootCmd.AddCommand(queriesCmd)
}
