package cmd

import "github.com/spf13/cobra"

var (
	corrFormat string
	corrOutput string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <feature_a> <feature_b>",
	Short: "Pearson correlation between two numeric features",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runSingle(cmd, s, "correlation", corrFormat, corrOutput, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVarP(&corrFormat, "format", "f", "text", "output format: text | markdown | html | json | yaml")
	correlateCmd.Flags().StringVarP(&corrOutput, "output", "o", "", "write the rendered result to this file")
}
