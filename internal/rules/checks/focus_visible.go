package checks

import (
	"context"
	"fmt"
	"strings"

	"a11yaudit/internal/browser"
	"a11yaudit/internal/rules"
)

// styleBlocksScript returns the text of every inline <style> element.
const styleBlocksScript = `Array.from(document.querySelectorAll("style")).map((s) => s.textContent || "")`

// outlineRemovals are the declarations treated as removing the focus ring.
var outlineRemovals = []string{"outline: none", "outline:none"}

type FocusVisibleCheck struct{}

func (c *FocusVisibleCheck) ID() string {
	return "focus-visible"
}

func (c *FocusVisibleCheck) Title() string {
	return "Focus Indicators Are Not Removed"
}

func (c *FocusVisibleCheck) Description() string {
	return "Flags inline style blocks that remove the outline on :focus without providing a :focus-visible style. Keyboard users rely on a visible focus indicator (WCAG 2.4.7)."
}

func (c *FocusVisibleCheck) Evaluate(ctx context.Context, page browser.Page) (rules.Result, error) {
	var blocks []string
	if err := page.Evaluate(ctx, styleBlocksScript, &blocks); err != nil {
		return rules.Result{}, err
	}

	var offending []string
	for i, css := range blocks {
		if RemovesFocusOutline(css) {
			offending = append(offending, fmt.Sprintf("<style> block #%d", i+1))
		}
	}
	if len(offending) == 0 {
		return rules.PassResult(c.ID(), "Focus styles appear to be preserved"), nil
	}
	return rules.WarnResultWithDetails(c.ID(),
		"Focus outline may be removed without a :focus-visible alternative",
		offending,
		map[string]any{"style_blocks": len(offending)},
	), nil
}

// RemovesFocusOutline reports whether css removes the outline for :focus and
// never mentions :focus-visible.
func RemovesFocusOutline(css string) bool {
	removes := false
	for _, decl := range outlineRemovals {
		if strings.Contains(css, decl) {
			removes = true
			break
		}
	}
	return removes && strings.Contains(css, ":focus") && !strings.Contains(css, ":focus-visible")
}
