package output

import (
	"fmt"

	"a11yaudit/internal/axe"
	"a11yaudit/internal/rules"
)

func nodes(n int) []axe.Node {
	out := make([]axe.Node, n)
	for i := range out {
		out[i] = axe.Node{HTML: fmt.Sprintf(`<img src="%d.png">`, i)}
	}
	return out
}

func violatingResults() *axe.Results {
	return &axe.Results{
		TestEngine: axe.TestEngine{Name: "axe-core", Version: "4.10.2"},
		Violations: []axe.RuleResult{
			{ID: "image-alt", Impact: "critical", Help: "Images must have alternate text", Tags: []string{"cat.text-alternatives", "wcag2a", "wcag111"}, Nodes: nodes(5)},
			{ID: "color-contrast", Impact: "serious", Help: "Elements must meet minimum color contrast ratio thresholds", Tags: []string{"wcag2aa", "wcag143"}, Nodes: nodes(2)},
			{ID: "region", Impact: "moderate", Help: "All page content should be contained by landmarks", Tags: []string{"best-practice"}, Nodes: nodes(1)},
			{ID: "image-redundant-alt", Impact: "minor", Help: "Alternative text of images should not be repeated as text", Tags: []string{"best-practice"}, Nodes: nodes(3)},
			{ID: "link-name", Impact: "serious", Help: "Links must have discernible text", Tags: []string{"wcag2a", "wcag244"}, Nodes: nodes(1)},
		},
		Passes:     make([]axe.RuleResult, 30),
		Incomplete: make([]axe.RuleResult, 2),
	}
}

func cleanResults() *axe.Results {
	return &axe.Results{
		TestEngine: axe.TestEngine{Name: "axe-core", Version: "4.10.2"},
		Passes:     make([]axe.RuleResult, 41),
		Incomplete: make([]axe.RuleResult, 1),
	}
}

func sampleChecks() []rules.Result {
	return []rules.Result{
		rules.WarnResultWithDetails("focus-visible", "Focus outline may be removed without a :focus-visible alternative", []string{"<style> block #1"}, nil),
		rules.PassResult("skip-link", "Skip link present"),
		rules.ErrorResult("reduced-motion", "evaluate: target closed"),
	}
}
