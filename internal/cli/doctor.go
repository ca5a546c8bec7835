package cli

import (
	"fmt"
	"io"

	"a11yaudit/internal/audit"
	"a11yaudit/internal/flags"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var probe = audit.Probe

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that Chrome and axe-core can be found",
	Long: `Resolve the Chrome executable and the axe-core script the same way an audit
does, print what was found, and exit without launching anything.

Exit codes:
  0 = both dependencies found
  1 = at least one dependency is missing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a := probe(cfg)
		printAvailability(cmd.OutOrStdout(), a)
		if !a.Available() {
			exit(1)
		}
		return nil
	},
}

func printAvailability(w io.Writer, a audit.Availability) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	line := func(name, path string) {
		if path != "" {
			ok.Fprintf(w, "✓ %-8s %s\n", name, path)
			return
		}
		bad.Fprintf(w, "✗ %-8s not found\n", name)
	}
	line("chrome", a.ChromePath)
	line("axe-core", a.AxeSource)

	if len(a.Reasons) > 0 {
		fmt.Fprintln(w)
		for _, r := range a.Reasons {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVar(&cfg.Browser.ChromePath, flags.FlagChromePath, "", "Chrome/Chromium executable (default: $CHROME_PATH, then PATH lookup)")
	doctorCmd.Flags().StringVar(&cfg.Audit.AxeSource, flags.FlagAxeSource, "", "Path to axe.min.js (default: $AXE_SOURCE, then node_modules/axe-core)")
}
