// Package checks holds the supplementary heuristics run after axe-core.
package checks

import "a11yaudit/internal/rules"

// Registration order is report order.
func init() {
	rules.Register(&FocusVisibleCheck{})
	rules.Register(&TouchTargetSizeCheck{})
	rules.Register(&ReducedMotionCheck{})
	rules.Register(&SkipLinkCheck{})
}
