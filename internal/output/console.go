package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"a11yaudit/internal/axe"
	"a11yaudit/internal/rules"

	"github.com/fatih/color"
)

const (
	maxNodeExamples = 3
	maxSnippetRunes = 80
)

// Caveat is printed with every clean result.
const Caveat = "Automated tests catch ~30% of issues; manual testing is essential."

var (
	headerColor = color.New(color.Bold)
	passColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.Faint)
)

type ConsoleSink struct {
	writer io.Writer
	format string // "text", "json"
	mu     sync.Mutex
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format}
}

func (s *ConsoleSink) Write(r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(r); err != nil {
			return err
		}
	case "text":
		if err := WriteText(s.writer, r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.format != "text" && s.format != "json" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}

// textWriter keeps the first write error so rendering code can stay linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) colorf(c *color.Color, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = c.Fprintf(t.w, format, args...)
}

// WriteText renders the human-readable report.
func WriteText(w io.Writer, r *Report) error {
	t := &textWriter{w: w}

	t.colorf(headerColor, "Accessibility audit: %s\n", r.URL)
	if r.Engine != "" {
		t.printf("Engine: %s | Tags: %s\n", r.Engine, strings.Join(r.Tags, ", "))
	} else {
		t.printf("Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	t.printf("\n")

	writeViolations(t, r.Results)
	writeSummary(t, r.Summary)
	writeChecks(t, r.Checks)

	if r.Clean() {
		t.colorf(passColor, "✓ No accessibility violations found.\n")
		t.colorf(dimColor, "  Note: %s\n", Caveat)
	} else {
		t.colorf(failColor, "✗ %d accessibility issue(s) found.\n", r.Summary.ViolationNodes)
	}
	return t.err
}

func writeViolations(t *textWriter, res *axe.Results) {
	if res == nil || len(res.Violations) == 0 {
		t.colorf(headerColor, "Violations\n")
		t.printf("  None.\n\n")
		return
	}

	t.colorf(headerColor, "Violations (%d)\n\n", len(res.Violations))
	for i, v := range res.Violations {
		t.colorf(failColor, "%d. %s\n", i+1, v.Help)
		t.printf("   Rule:     %s\n", v.ID)
		t.printf("   Impact:   %s\n", impactOrUnknown(v.Impact))
		if tags := v.WCAGTags(); len(tags) > 0 {
			t.printf("   WCAG:     %s\n", strings.Join(tags, ", "))
		}
		t.printf("   Elements: %d\n", len(v.Nodes))
		for j, n := range v.Nodes {
			if j == maxNodeExamples {
				break
			}
			t.colorf(dimColor, "     - %s\n", Truncate(n.HTML, maxSnippetRunes))
		}
		if extra := len(v.Nodes) - maxNodeExamples; extra > 0 {
			t.printf("     ...and %d more\n", extra)
		}
		if v.HelpURL != "" {
			t.printf("   More:     %s\n", v.HelpURL)
		}
		t.printf("\n")
	}
}

func writeSummary(t *textWriter, s Summary) {
	t.colorf(headerColor, "Summary\n")
	t.printf("  Passed rules:  %d\n", s.Passed)
	t.printf("  Failed rules:  %d (%d element(s))\n", s.Failed, s.ViolationNodes)
	t.printf("  Needs review:  %d\n", s.Incomplete)
	t.printf("\n")

	if len(s.Severity) == 0 {
		return
	}
	t.colorf(headerColor, "Severity\n")
	for _, b := range s.Severity {
		t.printf("  %-9s %d\n", b.Impact+":", b.Nodes)
	}
	t.printf("\n")
}

func writeChecks(t *textWriter, checks []rules.Result) {
	if len(checks) == 0 {
		return
	}
	t.colorf(headerColor, "Supplementary checks\n")
	for _, c := range checks {
		switch c.Status {
		case rules.StatusPass:
			t.colorf(passColor, "  ✓ %s: %s\n", c.CheckID, c.Message)
		case rules.StatusWarn:
			t.colorf(warnColor, "  ⚠ %s: %s\n", c.CheckID, c.Message)
		default:
			t.colorf(failColor, "  ✗ %s: %s\n", c.CheckID, c.Message)
		}
		for _, d := range c.Details {
			t.printf("      %s\n", d)
		}
	}
	t.printf("\n")
}

func impactOrUnknown(impact string) string {
	if impact == "" {
		return "unknown"
	}
	return impact
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// flushIfPossible flushes buffered writers such as *bufio.Writer.
func flushIfPossible(w io.Writer) error {
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
