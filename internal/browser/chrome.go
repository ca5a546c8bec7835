package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrChromeNotFound is returned by FindChrome when no executable is found.
var ErrChromeNotFound = errors.New("no Chrome or Chromium executable found")

// chromeBinaries are looked up on PATH, in order.
var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// macAppPaths are checked on darwin after PATH lookup fails.
var macAppPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// FindChrome resolves the browser executable.
//
// Precedence:
//  1. explicit (must exist)
//  2. well-known binary names on PATH
//  3. application bundles on macOS
func FindChrome(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("chrome executable %q: %w", p, err)
		}
		return p, nil
	}

	for _, name := range chromeBinaries {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	if runtime.GOOS == "darwin" {
		for _, p := range macAppPaths {
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}

	return "", ErrChromeNotFound
}
