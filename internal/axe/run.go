package axe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"a11yaudit/internal/browser"
)

// Inject evaluates the axe-core source in the page and verifies that the
// global axe.run entrypoint is present afterwards.
func Inject(ctx context.Context, page browser.Page, source string) error {
	if page == nil {
		return errors.New("axe: page is nil")
	}
	if source == "" {
		return errors.New("axe: empty source")
	}

	var ok bool
	// The trailing expression keeps the evaluation result serializable
	// regardless of what the script's last statement yields.
	if err := page.Evaluate(ctx, source+"\n;true", &ok); err != nil {
		return fmt.Errorf("inject axe-core: %w", err)
	}

	if err := page.Evaluate(ctx, probeScript, &ok); err != nil {
		return fmt.Errorf("inject axe-core: %w", err)
	}
	if !ok {
		return errors.New("inject axe-core: axe.run is not defined after injection")
	}
	return nil
}

const probeScript = `typeof window.axe === "object" && typeof window.axe.run === "function"`

// runOptions mirrors the axe.run options object.
type runOptions struct {
	RunOnly runOnly `json:"runOnly"`
}

type runOnly struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// runScript calls axe.run restricted to the given options and reduces each
// rule result to the fields in RuleResult before it crosses the protocol.
const runScript = `(() => {
  const slim = (r) => ({
    id: r.id,
    impact: r.impact || "",
    help: r.help,
    helpUrl: r.helpUrl,
    description: r.description,
    tags: r.tags || [],
    nodes: (r.nodes || []).map((n) => ({
      html: n.html,
      target: (n.target || []).map((t) => Array.isArray(t) ? t.join(" >>> ") : String(t)),
      impact: n.impact || "",
      failureSummary: n.failureSummary || ""
    }))
  });
  return window.axe.run(document, %s).then((res) => ({
    url: res.url,
    timestamp: res.timestamp,
    testEngine: res.testEngine || {},
    violations: res.violations.map(slim),
    passes: res.passes.map(slim),
    incomplete: res.incomplete.map(slim),
    inapplicable: (res.inapplicable || []).length
  }));
})()`

// RunScript renders the in-page expression that runs axe restricted to tags.
func RunScript(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", errors.New("axe: at least one tag is required")
	}
	opts, err := json.Marshal(runOptions{RunOnly: runOnly{Type: "tag", Values: tags}})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(runScript, opts), nil
}

// Run injects source into page and evaluates axe.run restricted to tags.
// It blocks until the in-page promise settles or ctx is done.
func Run(ctx context.Context, page browser.Page, source string, tags []string) (*Results, error) {
	script, err := RunScript(tags)
	if err != nil {
		return nil, err
	}
	if err := Inject(ctx, page, source); err != nil {
		return nil, err
	}

	var res Results
	if err := page.Evaluate(ctx, script, &res); err != nil {
		return nil, fmt.Errorf("run axe-core: %w", err)
	}
	return &res, nil
}
