package cli

import (
	"a11yaudit/internal/output"

	"github.com/spf13/cobra"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Print the manual accessibility testing checklist",
	Long: `Print the manual testing checklist: keyboard, screen reader and visual
checks plus tool links. Automated rules catch only part of the issues, so use
it alongside every audit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.PrintChecklist(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
}
