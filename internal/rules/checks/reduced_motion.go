package checks

import (
	"context"
	"fmt"
	"strings"

	"a11yaudit/internal/browser"
	"a11yaudit/internal/rules"
)

// mediaRulesScript collects the media text of every @media rule in readable
// stylesheets. Cross-origin sheets throw on cssRules access and are counted
// as skipped.
const mediaRulesScript = `(() => {
  const media = [];
  let skipped = 0;
  for (const sheet of Array.from(document.styleSheets)) {
    let list;
    try {
      list = sheet.cssRules;
    } catch (e) {
      skipped++;
      continue;
    }
    for (const rule of Array.from(list || [])) {
      if (rule instanceof CSSMediaRule && rule.media) {
        media.push(rule.media.mediaText);
      }
    }
  }
  return { media, skipped };
})()`

type mediaRules struct {
	Media   []string `json:"media"`
	Skipped int      `json:"skipped"`
}

type ReducedMotionCheck struct{}

func (c *ReducedMotionCheck) ID() string {
	return "reduced-motion"
}

func (c *ReducedMotionCheck) Title() string {
	return "Reduced Motion Preference Is Respected"
}

func (c *ReducedMotionCheck) Description() string {
	return "Looks for a prefers-reduced-motion media query in the page's stylesheets. Stylesheets served from another origin cannot be inspected and are skipped."
}

func (c *ReducedMotionCheck) Evaluate(ctx context.Context, page browser.Page) (rules.Result, error) {
	var mr mediaRules
	if err := page.Evaluate(ctx, mediaRulesScript, &mr); err != nil {
		return rules.Result{}, err
	}

	var details []string
	if mr.Skipped > 0 {
		details = append(details, fmt.Sprintf("%d cross-origin stylesheet(s) could not be inspected", mr.Skipped))
	}

	for _, m := range mr.Media {
		if strings.Contains(m, "prefers-reduced-motion") {
			res := rules.PassResult(c.ID(), "prefers-reduced-motion media query found")
			res.Details = details
			return res, nil
		}
	}
	return rules.WarnResultWithDetails(c.ID(),
		"No prefers-reduced-motion media query found",
		details,
		map[string]any{"media_rules": len(mr.Media), "skipped_stylesheets": mr.Skipped},
	), nil
}
