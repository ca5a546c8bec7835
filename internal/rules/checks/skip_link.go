package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"a11yaudit/internal/browser"
	"a11yaudit/internal/rules"
)

// SkipLinkSelectors identify a link that bypasses repeated navigation.
var SkipLinkSelectors = []string{
	`a[href="#main"]`,
	`a[href="#main-content"]`,
	`a[href="#content"]`,
	`.skip-link`,
}

func skipLinkScript(selectors []string) string {
	b, _ := json.Marshal(selectors)
	return fmt.Sprintf(`%s.filter((sel) => document.querySelector(sel) !== null)`, b)
}

type SkipLinkCheck struct{}

func (c *SkipLinkCheck) ID() string {
	return "skip-link"
}

func (c *SkipLinkCheck) Title() string {
	return "Skip Link Is Present"
}

func (c *SkipLinkCheck) Description() string {
	return "Verifies that the page offers a skip link (" + strings.Join(SkipLinkSelectors, ", ") + ") so keyboard users can bypass repeated content (WCAG 2.4.1)."
}

func (c *SkipLinkCheck) Evaluate(ctx context.Context, page browser.Page) (rules.Result, error) {
	var matched []string
	if err := page.Evaluate(ctx, skipLinkScript(SkipLinkSelectors), &matched); err != nil {
		return rules.Result{}, err
	}
	if len(matched) == 0 {
		return rules.WarnResult(c.ID(), "No skip link found"), nil
	}
	res := rules.PassResult(c.ID(), "Skip link present")
	res.Details = matched
	return res, nil
}
