package checks

import (
	"context"
	"testing"

	"a11yaudit/internal/browser/browsertest"
	"a11yaudit/internal/rules"
)

func TestReducedMotionCheck_Evaluate(t *testing.T) {
	check := &ReducedMotionCheck{}

	tests := []struct {
		name        string
		media       mediaRules
		wantStatus  rules.Status
		wantDetails int
	}{
		{
			name:       "PASS when media query present",
			media:      mediaRules{Media: []string{"(max-width: 600px)", "(prefers-reduced-motion: reduce)"}},
			wantStatus: rules.StatusPass,
		},
		{
			name:       "WARN when absent",
			media:      mediaRules{Media: []string{"print"}},
			wantStatus: rules.StatusWarn,
		},
		{
			name:        "cross-origin sheets reported as skipped",
			media:       mediaRules{Media: nil, Skipped: 2},
			wantStatus:  rules.StatusWarn,
			wantDetails: 1,
		},
		{
			name:        "skipped sheets do not hide a match",
			media:       mediaRules{Media: []string{"screen and (prefers-reduced-motion: no-preference)"}, Skipped: 1},
			wantStatus:  rules.StatusPass,
			wantDetails: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := check.Evaluate(context.Background(), browsertest.Static(tt.media))
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if res.Status != tt.wantStatus {
				t.Fatalf("want %v, got %v", tt.wantStatus, res.Status)
			}
			if len(res.Details) != tt.wantDetails {
				t.Fatalf("details: got %v", res.Details)
			}
		})
	}
}
