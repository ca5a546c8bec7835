package output

import (
	"time"

	"a11yaudit/internal/axe"
	"a11yaudit/internal/rules"
)

// SeverityCount is the number of affected elements for one impact level.
type SeverityCount struct {
	Impact string `json:"impact"`
	Nodes  int    `json:"nodes"`
}

// Summary aggregates an axe-core run.
type Summary struct {
	Passed         int `json:"passed"`
	Failed         int `json:"failed"`
	ViolationNodes int `json:"violation_nodes"`
	Incomplete     int `json:"incomplete"`
	// Severity holds non-zero buckets only, ordered critical, serious,
	// moderate, minor.
	Severity []SeverityCount `json:"severity,omitempty"`
}

// Summarize derives the counters and the severity histogram from res.
func Summarize(res *axe.Results) Summary {
	if res == nil {
		return Summary{}
	}

	s := Summary{
		Passed:         len(res.Passes),
		Failed:         len(res.Violations),
		ViolationNodes: res.ViolationNodes(),
		Incomplete:     len(res.Incomplete),
	}

	byImpact := make(map[string]int)
	for _, v := range res.Violations {
		byImpact[v.Impact] += len(v.Nodes)
	}
	for _, impact := range axe.Impacts {
		if n := byImpact[impact]; n > 0 {
			s.Severity = append(s.Severity, SeverityCount{Impact: impact, Nodes: n})
		}
	}
	return s
}

// Report is the complete outcome of one audit, handed to every sink.
type Report struct {
	URL       string         `json:"url"`
	Tags      []string       `json:"tags"`
	Engine    string         `json:"engine,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration_ns"`
	Results   *axe.Results   `json:"results"`
	Summary   Summary        `json:"summary"`
	Checks    []rules.Result `json:"checks"`
	ExitCode  int            `json:"exit_code"`
}

// NewReport builds a report and its exit code: 0 when no element violates a
// rule, 1 otherwise. Supplementary checks never affect the exit code.
func NewReport(url string, tags []string, res *axe.Results, checks []rules.Result) *Report {
	r := &Report{
		URL:     url,
		Tags:    tags,
		Results: res,
		Summary: Summarize(res),
		Checks:  checks,
	}
	if res != nil && res.TestEngine.Name != "" {
		r.Engine = res.TestEngine.Name + " " + res.TestEngine.Version
	}
	if r.Summary.ViolationNodes > 0 {
		r.ExitCode = 1
	}
	return r
}

// Clean reports whether no violations were found.
func (r *Report) Clean() bool {
	return r.Summary.ViolationNodes == 0
}
