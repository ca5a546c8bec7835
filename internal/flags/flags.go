package flags

// Package flags defines canonical CLI flag names shared across the CLI and the
// audit engine. IMPORTANT: these are flag *names* without leading dashes.
//
//	cmd.Flags().StringVar(&cfg.Browser.ChromePath, flags.FlagChromePath, "", "...")
const (
	// Browser
	FlagChromePath = "chrome-path"
	FlagHeaded     = "headed"
	FlagNoSandbox  = "no-sandbox"
	FlagWindowSize = "window-size"
	FlagNavTimeout = "nav-timeout"

	// Audit
	FlagAxeSource = "axe-source"
	FlagTags      = "tags"

	// Rules
	FlagSet = "set"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagReport        = "report"
	FlagNoConsole     = "no-console"

	// Publish
	FlagGitHubStatus  = "github-status"
	FlagGitHubContext = "github-context"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
