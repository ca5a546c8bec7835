package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"a11yaudit/internal/rules"
)

// ReportSink writes a Markdown report on Close.
type ReportSink struct {
	path   string
	file   *os.File
	mu     sync.Mutex
	report *Report
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{path: path, file: f}, nil
}

func (s *ReportSink) Write(r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report == nil {
		return s.file.Close()
	}

	_, err := s.file.WriteString(RenderMarkdown(s.report))
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// RenderMarkdown renders r as a Markdown document.
func RenderMarkdown(r *Report) string {
	var b strings.Builder
	b.WriteString("# Accessibility Audit Report\n\n")

	fmt.Fprintf(&b, "- **URL:** %s\n", r.URL)
	if r.Engine != "" {
		fmt.Fprintf(&b, "- **Engine:** %s\n", r.Engine)
	}
	fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(r.Tags, ", "))
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "- **Started:** %s\n", r.StartedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	if r.Clean() {
		b.WriteString("- **Result:** PASS\n\n")
	} else {
		fmt.Fprintf(&b, "- **Result:** FAIL (%d affected element(s))\n\n", r.Summary.ViolationNodes)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Passed rules | %d |\n", r.Summary.Passed)
	fmt.Fprintf(&b, "| Failed rules | %d |\n", r.Summary.Failed)
	fmt.Fprintf(&b, "| Affected elements | %d |\n", r.Summary.ViolationNodes)
	fmt.Fprintf(&b, "| Needs review | %d |\n", r.Summary.Incomplete)
	for _, sc := range r.Summary.Severity {
		fmt.Fprintf(&b, "| %s | %d |\n", sc.Impact, sc.Nodes)
	}
	b.WriteString("\n")

	b.WriteString("## Violations\n\n")
	if r.Results == nil || len(r.Results.Violations) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, v := range r.Results.Violations {
			fmt.Fprintf(&b, "### %s (`%s`)\n\n", escapeMarkdown(v.Help), v.ID)
			fmt.Fprintf(&b, "- Impact: %s\n", impactOrUnknown(v.Impact))
			if tags := v.WCAGTags(); len(tags) > 0 {
				fmt.Fprintf(&b, "- WCAG: %s\n", strings.Join(tags, ", "))
			}
			fmt.Fprintf(&b, "- Elements: %d\n", len(v.Nodes))
			if v.HelpURL != "" {
				fmt.Fprintf(&b, "- Reference: %s\n", v.HelpURL)
			}
			b.WriteString("\n")
			for _, n := range v.Nodes {
				fmt.Fprintf(&b, "```html\n%s\n```\n", n.HTML)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Checks) > 0 {
		b.WriteString("## Supplementary Checks\n\n")
		b.WriteString("| Check | Status | Message |\n|---|---|---|\n")
		for _, c := range r.Checks {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", c.CheckID, c.Status, escapeMarkdown(c.Message))
		}
		b.WriteString("\n")
		for _, c := range r.Checks {
			if c.Status == rules.StatusPass || len(c.Details) == 0 {
				continue
			}
			fmt.Fprintf(&b, "**%s**\n\n", c.CheckID)
			for _, d := range c.Details {
				fmt.Fprintf(&b, "- %s\n", escapeMarkdown(d))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n\n")
	b.WriteString("_" + Caveat + "_\n")
	return b.String()
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", "\\|", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
