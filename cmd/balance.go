package cmd

import "github.com/spf13/cobra"

var (
	balFormat string
	balOutput string
)

var balanceCmd = &cobra.Command{
	Use:   "balance <field>",
	Short: "Value counts of a categorical field (e.g. \"Stroke Occurrence\")",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return runSingle(cmd, s, "class-balance", balFormat, balOutput, args[0])
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balFormat, "format", "f", "text", "output format: text | markdown | html | json | yaml")
	balanceCmd.Flags().StringVarP(&balOutput, "output", "o", "", "write the rendered result to this file")
}
