package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Target.URL != DefaultURL {
		t.Fatalf("URL: got %q want %q", cfg.Target.URL, DefaultURL)
	}
	if cfg.Browser.NavigationTimeout != 30*time.Second {
		t.Fatalf("NavigationTimeout: got %s want 30s", cfg.Browser.NavigationTimeout)
	}
	if !reflect.DeepEqual(cfg.Audit.Tags, []string{"wcag2a", "wcag2aa", "best-practice"}) {
		t.Fatalf("Tags: got %v", cfg.Audit.Tags)
	}

	// Defaults must not alias the package-level slice.
	cfg.Audit.Tags[0] = "mutated"
	if DefaultTags[0] != "wcag2a" {
		t.Fatalf("DefaultTags was mutated through Config")
	}
}

func TestValidate_DefaultsValid(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	t.Setenv("AXE_SOURCE", "")

	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
}

func TestValidate_EnvFallbacks(t *testing.T) {
	t.Setenv("CHROME_PATH", "/opt/chrome/chrome")
	t.Setenv("AXE_SOURCE", "/tmp/axe.min.js")

	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Browser.ChromePath != "/opt/chrome/chrome" {
		t.Fatalf("ChromePath: got %q", cfg.Browser.ChromePath)
	}
	if cfg.Audit.AxeSource != "/tmp/axe.min.js" {
		t.Fatalf("AxeSource: got %q", cfg.Audit.AxeSource)
	}

	cfg = New()
	cfg.Browser.ChromePath = "/explicit"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Browser.ChromePath != "/explicit" {
		t.Fatalf("explicit ChromePath must win, got %q", cfg.Browser.ChromePath)
	}
}

func TestValidate_NormalizesCommaDelimitedTags(t *testing.T) {
	cfg := New()
	cfg.Audit.Tags = []string{"wcag2a, wcag21aa", "best-practice", ",,"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}

	want := []string{"wcag2a", "wcag21aa", "best-practice"}
	if !reflect.DeepEqual(cfg.Audit.Tags, want) {
		t.Fatalf("Tags normalized mismatch: got %v want %v", cfg.Audit.Tags, want)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "empty tags", mutate: func(c *Config) { c.Audit.Tags = []string{" , "} }, wantErr: "--tags"},
		{name: "bad window size", mutate: func(c *Config) { c.Browser.WindowSize = "big" }, wantErr: "--window-size"},
		{name: "zero nav timeout", mutate: func(c *Config) { c.Browser.NavigationTimeout = 0 }, wantErr: "--nav-timeout"},
		{name: "zero timeout", mutate: func(c *Config) { c.Runtime.Timeout = 0 }, wantErr: "--timeout"},
		{name: "console format", mutate: func(c *Config) { c.Output.ConsoleFormat = "xml" }, wantErr: "--console-format"},
		{name: "out extension", mutate: func(c *Config) { c.Output.Out = "report.txt" }, wantErr: "--out"},
		{name: "github status", mutate: func(c *Config) { c.Publish.GitHubStatus = "acme/site" }, wantErr: "--github-status"},
		{name: "set syntax", mutate: func(c *Config) { c.Rules.Set = []string{"touch-target-size"} }, wantErr: "--set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LeavesTargetURLToAudit(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "not-a-url", "localhost:3000"} {
		cfg := New()
		cfg.Target.URL = " " + raw + " "
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%q) returned error: %v", raw, err)
		}
		if cfg.Target.URL != raw {
			t.Fatalf("URL: got %q want %q", cfg.Target.URL, raw)
		}
	}

	cfg := New()
	cfg.Target.URL = "  "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Target.URL != DefaultURL {
		t.Fatalf("empty URL: got %q want %q", cfg.Target.URL, DefaultURL)
	}
}

func TestValidate_ConsoleFormatNormalized(t *testing.T) {
	cfg := New()
	cfg.Output.ConsoleFormat = " JSON "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Output.ConsoleFormat != "json" {
		t.Fatalf("ConsoleFormat: got %q want json", cfg.Output.ConsoleFormat)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: DefaultURL},
		{in: "  ", want: DefaultURL},
		{in: "https://example.com/page", want: "https://example.com/page"},
		{in: " http://localhost:8080 ", want: "http://localhost:8080"},
		{in: "file:///tmp/index.html", want: "file:///tmp/index.html"},
		{in: "http://", wantErr: true},
		{in: "mailto:a@b.c", wantErr: true},
		{in: "localhost:3000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeURL error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestParseWindowSize(t *testing.T) {
	w, h, err := ParseWindowSize("1280x800")
	if err != nil {
		t.Fatalf("ParseWindowSize error: %v", err)
	}
	if w != 1280 || h != 800 {
		t.Fatalf("got %dx%d want 1280x800", w, h)
	}

	for _, bad := range []string{"", "1280", "x800", "0x800", "1280x-1", "axb"} {
		if _, _, err := ParseWindowSize(bad); err == nil {
			t.Fatalf("ParseWindowSize(%q): expected error", bad)
		}
	}
}

func TestParseCommitRef(t *testing.T) {
	owner, repo, sha, err := ParseCommitRef("acme/site@abc123")
	if err != nil {
		t.Fatalf("ParseCommitRef error: %v", err)
	}
	if owner != "acme" || repo != "site" || sha != "abc123" {
		t.Fatalf("got %s/%s@%s", owner, repo, sha)
	}

	for _, bad := range []string{"acme/site", "acme@abc", "/site@abc", "acme/@abc", "acme/site/x@abc", "acme/site@"} {
		if _, _, _, err := ParseCommitRef(bad); err == nil {
			t.Fatalf("ParseCommitRef(%q): expected error", bad)
		}
	}
}

func TestParseRuleOptionAssignments(t *testing.T) {
	got, err := ParseRuleOptionAssignments([]string{
		"touch-target-size.min_size=48, focus-visible.enabled=true",
		"skip-link.selectors=", // empty value allowed
	})
	if err != nil {
		t.Fatalf("ParseRuleOptionAssignments returned error: %v", err)
	}
	if got["touch-target-size"]["min_size"] != "48" {
		t.Fatalf("unexpected parsed value: %v", got)
	}
	if got["focus-visible"]["enabled"] != "true" {
		t.Fatalf("unexpected parsed value: %v", got)
	}
	if v, ok := got["skip-link"]["selectors"]; !ok || v != "" {
		t.Fatalf("expected empty string value to be preserved: %v", got)
	}
}

func TestParseRuleOptionAssignments_ErrorsOnInvalidSyntax(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "missing_equals", values: []string{"a.b"}},
		{name: "missing_dot", values: []string{"ab=true"}},
		{name: "empty_check", values: []string{".b=true"}},
		{name: "empty_opt", values: []string{"a.=true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRuleOptionAssignments(tt.values); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}
