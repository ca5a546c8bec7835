package output

import (
	"fmt"
	"io"
	"strings"
)

// UsageBanner explains how to enable automated testing when the browser or
// the rule engine is missing.
const UsageBanner = `Automated accessibility testing is unavailable.

a11yaudit needs:
  - Chrome or Chromium (set --chrome-path or CHROME_PATH if it is not on PATH)
  - axe-core (npm install axe-core, or set --axe-source / AXE_SOURCE)

Usage:
  a11yaudit [url]          (default: http://localhost:3000)

Until then, use the manual checklist below.`

// ChecklistSection is one group of manual testing steps. Notes are printed
// as bullets ahead of the numbered steps.
type ChecklistSection struct {
	Title string
	Notes []string
	Items []string
}

// ChecklistTitle heads the manual testing checklist.
const ChecklistTitle = "MANUAL ACCESSIBILITY TESTING CHECKLIST"

// Checklist is the manual testing guide printed when automation is missing.
var Checklist = []ChecklistSection{
	{
		Title: "KEYBOARD TESTING",
		Items: []string{
			"Tab through the entire page",
			"Verify focus is always visible",
			"Verify all interactive elements are reachable",
			"Verify no keyboard traps (can always Tab away)",
			"Test Enter/Space on buttons",
			"Test Escape on modals",
			"Verify the skip link moves focus to the main content",
		},
	},
	{
		Title: "SCREEN READER TESTING",
		Notes: []string{
			"Windows: Use NVDA (free download)",
			"Mac: Use VoiceOver (Cmd + F5)",
		},
		Items: []string{
			"Navigate by headings (H key)",
			"Navigate by landmarks (D key in NVDA)",
			"Test all form fields",
			"Verify images have alt text",
			"Verify link text is descriptive",
			"Verify dynamic updates are announced",
		},
	},
	{
		Title: "VISUAL TESTING",
		Items: []string{
			"Zoom to 200% - verify no content loss",
			"Test color contrast (use browser extension)",
			"View in grayscale - verify nothing relies on color alone",
			"Measure touch targets (minimum 48x48px)",
			"Enable reduced motion in the OS - verify animations stop",
		},
	},
	{
		Title: "BROWSER TOOLS",
		Notes: []string{
			"Chrome: Lighthouse (DevTools > Lighthouse)",
			"axe DevTools extension",
			"WAVE extension",
		},
	},
	{
		Title: "ONLINE TOOLS",
		Notes: []string{
			"https://wave.webaim.org/",
			"https://webaim.org/resources/contrastchecker/",
			"https://www.deque.com/axe/",
			"https://www.w3.org/WAI/WCAG21/quickref/?versions=2.0",
		},
	},
}

// PrintChecklist writes the manual testing checklist.
func PrintChecklist(w io.Writer) error {
	t := &textWriter{w: w}
	t.colorf(headerColor, "%s\n", ChecklistTitle)
	t.printf("%s\n", strings.Repeat("=", 60))
	for _, sec := range Checklist {
		t.printf("\n")
		t.colorf(headerColor, "%s:\n", sec.Title)
		for _, note := range sec.Notes {
			t.printf("  - %s\n", note)
		}
		if len(sec.Notes) > 0 && len(sec.Items) > 0 {
			t.printf("\n")
		}
		for i, item := range sec.Items {
			t.printf("  %d. %s\n", i+1, item)
		}
	}
	t.printf("\n")
	return t.err
}

// PrintUnavailable writes the usage banner, the reasons automation is
// unavailable, and the manual checklist.
func PrintUnavailable(w io.Writer, reasons []string) error {
	if _, err := fmt.Fprintln(w, UsageBanner); err != nil {
		return err
	}
	if len(reasons) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for _, r := range reasons {
			if _, err := warnColor.Fprintf(w, "  ! %s\n", r); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return PrintChecklist(w)
}
