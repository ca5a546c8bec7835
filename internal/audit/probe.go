package audit

import (
	"fmt"
	"os"

	"a11yaudit/internal/axe"
	"a11yaudit/internal/browser"
	"a11yaudit/internal/config"
)

// Availability is the outcome of the dependency probe. The audit can run only
// when Reasons is empty.
type Availability struct {
	ChromePath string
	AxeSource  string
	Reasons    []string
}

func (a Availability) Available() bool {
	return len(a.Reasons) == 0
}

// Probe locates the browser executable and the axe-core script without
// starting anything.
func Probe(cfg *config.Config) Availability {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return probeFrom(cfg, wd)
}

func probeFrom(cfg *config.Config, dir string) Availability {
	var a Availability

	chrome, err := browser.FindChrome(cfg.Browser.ChromePath)
	if err != nil {
		a.Reasons = append(a.Reasons, fmt.Sprintf("browser automation unavailable: %v (install Chrome or Chromium, or set --chrome-path / CHROME_PATH)", err))
	} else {
		a.ChromePath = chrome
	}

	source, err := axe.FindSource(cfg.Audit.AxeSource, dir)
	if err != nil {
		a.Reasons = append(a.Reasons, fmt.Sprintf("rule engine unavailable: %v", err))
	} else {
		a.AxeSource = source
	}

	return a
}
