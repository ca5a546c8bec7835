package browsertest

import (
	"context"
	"testing"
	"time"

	"a11yaudit/internal/browser"
)

// LaunchOrSkip starts a real headless browser closed at the end of the test.
// The test is skipped in -short mode or when no Chrome can be started.
func LaunchOrSkip(t testing.TB) *browser.Session {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in -short mode")
	}
	exec, err := browser.FindChrome("")
	if err != nil {
		t.Skipf("skipping browser test: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	s, err := browser.Launch(ctx, browser.Options{ExecPath: exec, Headless: true, NoSandbox: true, Width: 1280, Height: 800})
	if err != nil {
		t.Skipf("skipping browser test: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
