package checks

import (
	"context"
	"errors"
	"testing"

	"a11yaudit/internal/browser/browsertest"
	"a11yaudit/internal/rules"
)

func TestRemovesFocusOutline(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want bool
	}{
		{name: "outline none on focus", css: ":focus { outline: none; }", want: true},
		{name: "compact declaration", css: "button:focus{outline:none}", want: true},
		{name: "focus-visible replacement", css: ":focus { outline: none; } :focus-visible { outline: 2px solid; }", want: false},
		{name: "outline none without focus", css: ".card { outline: none; }", want: false},
		{name: "focus without removal", css: ":focus { outline: 2px solid blue; }", want: false},
		{name: "empty", css: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemovesFocusOutline(tt.css); got != tt.want {
				t.Fatalf("RemovesFocusOutline(%q) = %v, want %v", tt.css, got, tt.want)
			}
		})
	}
}

func TestFocusVisibleCheck_Evaluate(t *testing.T) {
	check := &FocusVisibleCheck{}

	tests := []struct {
		name       string
		blocks     []string
		wantStatus rules.Status
		wantDetail string
	}{
		{
			name:       "WARN when a block removes the outline",
			blocks:     []string{"body { margin: 0 }", ":focus { outline: none; }"},
			wantStatus: rules.StatusWarn,
			wantDetail: "<style> block #2",
		},
		{
			name:       "PASS when focus-visible is also present",
			blocks:     []string{":focus { outline: none; } :focus-visible { outline: 3px solid; }"},
			wantStatus: rules.StatusPass,
		},
		{
			name:       "PASS without style blocks",
			blocks:     []string{},
			wantStatus: rules.StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := check.Evaluate(context.Background(), browsertest.Static(tt.blocks))
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if res.Status != tt.wantStatus {
				t.Fatalf("want %v, got %v", tt.wantStatus, res.Status)
			}
			if res.CheckID != "focus-visible" {
				t.Fatalf("CheckID: got %q", res.CheckID)
			}
			if tt.wantDetail != "" && (len(res.Details) != 1 || res.Details[0] != tt.wantDetail) {
				t.Fatalf("details: got %v want [%s]", res.Details, tt.wantDetail)
			}
		})
	}
}

func TestFocusVisibleCheck_EvaluateError(t *testing.T) {
	boom := errors.New("target closed")
	page := &browsertest.Page{Handle: func(string) (any, error) { return nil, boom }}

	if _, err := (&FocusVisibleCheck{}).Evaluate(context.Background(), page); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
