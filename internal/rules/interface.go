package rules

import (
	"context"

	"a11yaudit/internal/browser"
)

// Check is a supplementary heuristic evaluated against the loaded page after
// the axe-core run. Checks are advisory: they never change the exit code.
type Check interface {
	ID() string
	Title() string
	Description() string

	// Evaluate inspects the page. Checks MUST NOT navigate or mutate the page.
	Evaluate(ctx context.Context, page browser.Page) (Result, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableCheck interface {
	Check
	Options() []Option
	Configure(opts map[string]string) error
}
