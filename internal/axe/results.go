// Package axe injects the axe-core rule engine into a page and runs it.
package axe

import "strings"

// Impact levels in decreasing severity.
const (
	ImpactCritical = "critical"
	ImpactSerious  = "serious"
	ImpactModerate = "moderate"
	ImpactMinor    = "minor"
)

// Impacts lists impact levels in reporting order.
var Impacts = []string{ImpactCritical, ImpactSerious, ImpactModerate, ImpactMinor}

// Results is the subset of the axe.run result the audit consumes.
type Results struct {
	URL          string       `json:"url,omitempty"`
	Timestamp    string       `json:"timestamp,omitempty"`
	TestEngine   TestEngine   `json:"testEngine"`
	Violations   []RuleResult `json:"violations"`
	Passes       []RuleResult `json:"passes"`
	Incomplete   []RuleResult `json:"incomplete"`
	Inapplicable int          `json:"inapplicable"`
}

type TestEngine struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// RuleResult is one rule's outcome; a violation owns its offending nodes.
type RuleResult struct {
	ID          string   `json:"id"`
	Impact      string   `json:"impact,omitempty"`
	Help        string   `json:"help"`
	HelpURL     string   `json:"helpUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Nodes       []Node   `json:"nodes"`
}

type Node struct {
	HTML           string   `json:"html"`
	Target         []string `json:"target,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	FailureSummary string   `json:"failureSummary,omitempty"`
}

// WCAGTags returns the tags that start with "wcag" in their original order.
func (r RuleResult) WCAGTags() []string {
	var out []string
	for _, t := range r.Tags {
		if strings.HasPrefix(t, "wcag") {
			out = append(out, t)
		}
	}
	return out
}

// ViolationNodes returns the total number of affected elements across all
// violations.
func (r *Results) ViolationNodes() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, v := range r.Violations {
		n += len(v.Nodes)
	}
	return n
}
