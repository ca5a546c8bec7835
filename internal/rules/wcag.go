package rules

import "sort"

// Levels of the WCAG 2.0 conformance model covered by the audit.
const (
	LevelAKey  = "level-a"
	LevelAAKey = "level-aa"
)

// LevelA lists the axe-core rule IDs checked for WCAG 2.0 level A. The list
// documents what the "wcag2a" tag selects; filtering itself is done by
// axe-core.
var LevelA = []string{
	"image-alt",
	"label",
	"button-name",
	"link-name",
	"html-has-lang",
	"document-title",
	"bypass",
	"color-contrast",
	"duplicate-id",
	"empty-heading",
	"form-field-multiple-labels",
	"input-image-alt",
	"role-img-alt",
	"scope-attr-valid",
	"tabindex",
	"video-caption",
}

// LevelAA lists the rule IDs checked for level AA. color-contrast appears
// under both levels.
var LevelAA = []string{
	"color-contrast",
	"focus-visible",
	"heading-order",
	"landmark-one-main",
	"meta-viewport",
	"page-has-heading-one",
	"region",
}

var WCAGRules = map[string][]string{
	LevelAKey:  LevelA,
	LevelAAKey: LevelAA,
}

// WCAGLevels returns the level keys in conformance order.
func WCAGLevels() []string {
	levels := make([]string, 0, len(WCAGRules))
	for k := range WCAGRules {
		levels = append(levels, k)
	}
	sort.Strings(levels)
	return levels
}

// LevelsOf returns every WCAG level key listing the axe-core rule ID, in
// conformance order, or nil when the rule is listed under none.
func LevelsOf(ruleID string) []string {
	var out []string
	for _, level := range WCAGLevels() {
		for _, id := range WCAGRules[level] {
			if id == ruleID {
				out = append(out, level)
				break
			}
		}
	}
	return out
}
