package cli

import (
	"fmt"
	"io"
	"strings"

	"a11yaudit/internal/rules"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesListQuiet bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List supplementary checks and the WCAG rules axe-core runs",
	Long: `Discover what an audit evaluates.

Two kinds of rules exist:
  - axe-core rules, selected by tag and grouped here by WCAG 2.0 level
  - supplementary checks run by a11yaudit after axe-core (advisory only)

Examples:
  a11yaudit rules list
  a11yaudit rules show touch-target-size
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supplementary checks and WCAG rule IDs",
	Long: `List the supplementary checks in evaluation order, followed by the axe-core
rule IDs for each WCAG 2.0 level.

Examples:
  a11yaudit rules list
  a11yaudit rules list -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if rulesListQuiet {
			for _, c := range rules.List() {
				fmt.Fprintln(w, c.ID())
			}
			seen := make(map[string]bool)
			for _, level := range rules.WCAGLevels() {
				for _, id := range rules.WCAGRules[level] {
					if !seen[id] {
						seen[id] = true
						fmt.Fprintln(w, id)
					}
				}
			}
			return nil
		}

		for _, c := range rules.List() {
			printCheck(w, c)
		}
		bold := color.New(color.Bold)
		for _, level := range rules.WCAGLevels() {
			bold.Fprintf(w, "WCAG 2.0 %s (%d rules)\n", level, len(rules.WCAGRules[level]))
			for _, id := range rules.WCAGRules[level] {
				fmt.Fprintf(w, "  %s\n", id)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show details of a check or the WCAG level of an axe-core rule",
	Long: `Show details of a supplementary check, or the WCAG level an axe-core rule
belongs to.

Examples:
  a11yaudit rules show focus-visible
  a11yaudit rules show color-contrast
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if checks, err := rules.Resolve(id); err == nil && len(checks) > 0 {
			printCheck(cmd.OutOrStdout(), checks[0])
			return nil
		}
		if levels := rules.LevelsOf(id); len(levels) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: axe-core rule, WCAG 2.0 %s\n", id, strings.Join(levels, ", "))
			return nil
		}
		return fmt.Errorf("rule not found: %s", id)
	},
}

func printCheck(w io.Writer, c rules.Check) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECK: %s\n", c.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, c.Title())
	fmt.Fprintln(w, c.Description())

	if cc, ok := c.(rules.ConfigurableCheck); ok {
		opts := cc.Options()
		if len(opts) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Options:")
			for _, opt := range opts {
				def := opt.Default
				if def == "" {
					def = "\"\""
				}
				fmt.Fprintf(w, "  %s\n", opt.Name)
				fmt.Fprintf(w, "    Description: %s\n", opt.Description)
				fmt.Fprintf(w, "    Default:     %s\n", def)
			}
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print IDs")
	rulesCmd.AddCommand(rulesShowCmd)
}
