package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultURL is audited when no target is given on the command line.
const DefaultURL = "http://localhost:3000"

// DefaultTags restricts axe-core to WCAG 2.0 level A, level AA and
// best-practice rules.
var DefaultTags = []string{"wcag2a", "wcag2aa", "best-practice"}

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect the
	// audit, keep the CLI flags in internal/cli/root.go in sync.
	Target  Target
	Browser Browser
	Audit   Audit
	Rules   Rules
	Output  Output
	Publish Publish
	Runtime Runtime
}

type Target struct {
	// URL is the page to audit (first positional argument).
	URL string
}

type Browser struct {
	// ChromePath is an explicit Chrome/Chromium executable (see --chrome-path).
	// Falls back to CHROME_PATH, then well-known binaries on PATH.
	ChromePath string

	// Headed shows the browser window instead of running headless (see --headed).
	Headed bool

	// NoSandbox disables the Chrome sandbox, which is required in most
	// containers running as root (see --no-sandbox).
	NoSandbox bool

	// WindowSize is the viewport as WIDTHxHEIGHT (see --window-size).
	WindowSize string

	// NavigationTimeout bounds navigation until network idle (see --nav-timeout).
	NavigationTimeout time.Duration
}

type Audit struct {
	// AxeSource is the path to axe.min.js (see --axe-source).
	// Falls back to AXE_SOURCE, then node_modules/axe-core.
	AxeSource string

	// Tags restricts the axe-core run to these tag categories (see --tags).
	Tags []string
}

type Rules struct {
	// Set provides per-check option overrides from the CLI.
	// Entries are of the form checkID.option=value (see --set).
	Set []string
}

type Output struct {
	// ConsoleFormat controls the console sink (see --console-format).
	// Allowed values: text, json.
	ConsoleFormat string

	// Out writes the report as JSON to this path (see --out).
	Out string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Publish struct {
	// GitHubStatus is OWNER/REPO@SHA; when set the outcome is published as a
	// commit status (see --github-status).
	GitHubStatus string

	// GitHubContext is the commit status context (see --github-context).
	GitHubContext string
}

type Runtime struct {
	// Timeout bounds the whole audit (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose enables debug logging, including browser protocol errors.
	Verbose bool
}

func New() *Config {
	return &Config{
		Target: Target{
			URL: DefaultURL,
		},
		Browser: Browser{
			WindowSize:        "1280x800",
			NavigationTimeout: 30 * time.Second,
		},
		Audit: Audit{
			Tags: append([]string(nil), DefaultTags...),
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Publish: Publish{
			GitHubContext: "a11y/wcag",
		},
		Runtime: Runtime{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Audit.Tags = splitCommaList(c.Audit.Tags)
	c.Rules.Set = splitCommaList(c.Rules.Set)

	// Environment fallbacks.
	if strings.TrimSpace(c.Browser.ChromePath) == "" {
		c.Browser.ChromePath = strings.TrimSpace(os.Getenv("CHROME_PATH"))
	}
	if strings.TrimSpace(c.Audit.AxeSource) == "" {
		c.Audit.AxeSource = strings.TrimSpace(os.Getenv("AXE_SOURCE"))
	}

	// The target URL is checked by the audit itself, after the dependency
	// probe: without a browser the checklist is printed for any argument.
	c.Target.URL = strings.TrimSpace(c.Target.URL)
	if c.Target.URL == "" {
		c.Target.URL = DefaultURL
	}

	if len(c.Audit.Tags) == 0 {
		return errors.New("--tags must not be empty")
	}

	if _, _, err := ParseWindowSize(c.Browser.WindowSize); err != nil {
		return fmt.Errorf("invalid --window-size value: %w", err)
	}
	if c.Browser.NavigationTimeout <= 0 {
		return errors.New("--nav-timeout must be > 0")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json)", c.Output.ConsoleFormat)
	}
	if c.Output.Out != "" && strings.ToLower(filepath.Ext(c.Output.Out)) != ".json" {
		return fmt.Errorf("--out must be a .json file, got %q", c.Output.Out)
	}

	if c.Publish.GitHubStatus != "" {
		if _, _, _, err := ParseCommitRef(c.Publish.GitHubStatus); err != nil {
			return fmt.Errorf("invalid --github-status value: %w", err)
		}
		if strings.TrimSpace(c.Publish.GitHubContext) == "" {
			return errors.New("--github-context must not be empty")
		}
	}

	if len(c.Rules.Set) > 0 {
		if _, err := ParseRuleOptionAssignments(c.Rules.Set); err != nil {
			return err
		}
	}

	return nil
}

// NormalizeURL trims raw and returns the default URL when it is empty.
// Only http, https and file URLs are accepted.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultURL, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%q", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return "", fmt.Errorf("%q: missing host", raw)
		}
	case "file":
		if u.Path == "" {
			return "", fmt.Errorf("%q: missing path", raw)
		}
	case "":
		return "", fmt.Errorf("%q: missing scheme (expected http, https or file)", raw)
	default:
		return "", fmt.Errorf("%q: unsupported scheme %q", raw, u.Scheme)
	}
	return u.String(), nil
}

// ParseWindowSize parses WIDTHxHEIGHT.
func ParseWindowSize(raw string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%q: expected WIDTHxHEIGHT", raw)
	}
	width, err = strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("%q: invalid width", raw)
	}
	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("%q: invalid height", raw)
	}
	return width, height, nil
}

// ParseCommitRef parses OWNER/REPO@SHA.
func ParseCommitRef(raw string) (owner, repo, sha string, err error) {
	raw = strings.TrimSpace(raw)
	full, sha, ok := strings.Cut(raw, "@")
	if !ok || strings.TrimSpace(sha) == "" {
		return "", "", "", fmt.Errorf("%q: expected OWNER/REPO@SHA", raw)
	}
	owner, repo, ok = strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", "", fmt.Errorf("%q: expected OWNER/REPO@SHA", raw)
	}
	return owner, repo, strings.TrimSpace(sha), nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseRuleOptionAssignments parses values of the form "checkID.option=value".
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - This validates syntax only (no validation of check IDs or option names).
// - Empty values are allowed ("check.option=").
func ParseRuleOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		value = strings.TrimSpace(value)
		checkID, opt, ok := strings.Cut(strings.TrimSpace(left), ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		checkID = strings.TrimSpace(checkID)
		opt = strings.TrimSpace(opt)
		if checkID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty check and option", raw)
		}
		if _, ok := out[checkID]; !ok {
			out[checkID] = make(map[string]string)
		}
		out[checkID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
