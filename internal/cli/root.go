package cli

import (
	"fmt"
	"os"

	"a11yaudit/internal/audit"
	"a11yaudit/internal/config"
	"a11yaudit/internal/flags"
	"a11yaudit/internal/log"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

// Test seams.
var (
	newEngine = func(cmd *cobra.Command) *audit.Engine {
		e := audit.NewEngine()
		e.Stdout = cmd.OutOrStdout()
		e.Stderr = cmd.ErrOrStderr()
		return e
	}
	exit = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "a11yaudit [url]",
	Short: "Audit a web page for WCAG 2.0 A/AA accessibility violations",
	Long: `a11yaudit loads a page in headless Chrome, runs the axe-core rule engine
against it and reports WCAG 2.0 level A and AA violations.

The target defaults to http://localhost:3000. When Chrome or axe-core cannot be
found, a manual testing checklist is printed instead.

Examples:
  # Audit a local dev server
  a11yaudit

  # Audit a deployed page and keep a Markdown report
  a11yaudit https://example.com --report a11y.md

  # CI: machine-readable output and a commit status
  a11yaudit "$PREVIEW_URL" --no-console --out a11y.json \
    --github-status "$GITHUB_REPOSITORY@$GITHUB_SHA"

Environment:
  CHROME_PATH    Chrome/Chromium executable (same as --chrome-path)
  AXE_SOURCE     path to axe.min.js (same as --axe-source)
  GITHUB_TOKEN   token for --github-status (falls back to 'gh auth token')

Exit codes:
  0 = no violations, or the audit could not run (checklist printed)
  1 = violations found, or an error occurred`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetVerbose(cfg.Runtime.Verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.Target.URL = args[0]
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		exit(newEngine(cmd).Run(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable debug logging on stderr (includes browser protocol errors and GitHub API calls)")

	// MAINTAINER NOTE: keep these in sync with internal/config.Config.

	// Browser
	rootCmd.Flags().StringVar(&cfg.Browser.ChromePath, flags.FlagChromePath, "", "Chrome/Chromium executable (default: $CHROME_PATH, then PATH lookup)")
	rootCmd.Flags().BoolVar(&cfg.Browser.Headed, flags.FlagHeaded, false, "Show the browser window instead of running headless")
	rootCmd.Flags().BoolVar(&cfg.Browser.NoSandbox, flags.FlagNoSandbox, false, "Disable the Chrome sandbox (needed in most containers running as root)")
	rootCmd.Flags().StringVar(&cfg.Browser.WindowSize, flags.FlagWindowSize, cfg.Browser.WindowSize, "Viewport as WIDTHxHEIGHT")
	rootCmd.Flags().DurationVar(&cfg.Browser.NavigationTimeout, flags.FlagNavTimeout, cfg.Browser.NavigationTimeout, "Maximum time to wait for the page to reach network idle")

	// Audit
	rootCmd.Flags().StringVar(&cfg.Audit.AxeSource, flags.FlagAxeSource, "", "Path to axe.min.js (default: $AXE_SOURCE, then node_modules/axe-core)")
	rootCmd.Flags().StringSliceVar(&cfg.Audit.Tags, flags.FlagTags, cfg.Audit.Tags, "axe-core tags to run (repeatable; comma-separated accepted)")

	// Rules
	rootCmd.Flags().StringSliceVar(&cfg.Rules.Set, flags.FlagSet, nil, "Per-check options as checkID.option=value (repeatable; comma-separated accepted)")

	// Output
	rootCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json")
	rootCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write the report as JSON to this path")
	rootCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	rootCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")

	// Publish
	rootCmd.Flags().StringVar(&cfg.Publish.GitHubStatus, flags.FlagGitHubStatus, "", "Publish the outcome as a GitHub commit status on OWNER/REPO@SHA")
	rootCmd.Flags().StringVar(&cfg.Publish.GitHubContext, flags.FlagGitHubContext, cfg.Publish.GitHubContext, "Commit status context")

	// Runtime
	rootCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout for the whole audit")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
