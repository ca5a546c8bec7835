package checks

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"a11yaudit/internal/browser"
	"a11yaudit/internal/rules"
)

const (
	defaultMinTouchTarget = 44
	maxTouchExamples      = 3
	maxTouchTextRunes     = 20
)

// clickableSelector matches the elements a pointer user is expected to tap.
const clickableSelector = `button, a, [role="button"], input[type="submit"]`

var touchTargetsScript = fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map((el) => {
  const r = el.getBoundingClientRect();
  return {
    tag: el.tagName,
    width: r.width,
    height: r.height,
    text: el.textContent || ""
  };
})`, clickableSelector)

// TouchTarget is a clickable element and its rendered size in CSS pixels.
type TouchTarget struct {
	Tag    string  `json:"tag"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

func (t TouchTarget) String() string {
	text := []rune(t.Text)
	if len(text) > maxTouchTextRunes {
		text = text[:maxTouchTextRunes]
	}
	return fmt.Sprintf(`%s: %dx%dpx "%s"`, t.Tag, int(math.Round(t.Width)), int(math.Round(t.Height)), string(text))
}

type TouchTargetSizeCheck struct {
	mu      sync.RWMutex
	minSize float64
}

func (c *TouchTargetSizeCheck) ID() string {
	return "touch-target-size"
}

func (c *TouchTargetSizeCheck) Title() string {
	return "Touch Targets Are Large Enough"
}

func (c *TouchTargetSizeCheck) Description() string {
	return "Measures buttons, links, role=button elements and submit inputs. Elements narrower or shorter than the minimum size (44x44 CSS pixels by default) are hard to activate on touch screens."
}

func (c *TouchTargetSizeCheck) Options() []rules.Option {
	return []rules.Option{
		{
			Name:        "min_size",
			Description: "Minimum width and height in CSS pixels",
			Default:     strconv.Itoa(defaultMinTouchTarget),
		},
	}
}

func (c *TouchTargetSizeCheck) Configure(opts map[string]string) error {
	raw, ok := opts["min_size"]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("min_size must be a positive number, got %q", raw)
	}
	c.mu.Lock()
	c.minSize = v
	c.mu.Unlock()
	return nil
}

func (c *TouchTargetSizeCheck) MinSize() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.minSize <= 0 {
		return defaultMinTouchTarget
	}
	return c.minSize
}

func (c *TouchTargetSizeCheck) Evaluate(ctx context.Context, page browser.Page) (rules.Result, error) {
	var targets []TouchTarget
	if err := page.Evaluate(ctx, touchTargetsScript, &targets); err != nil {
		return rules.Result{}, err
	}

	minSize := c.MinSize()
	small := Undersized(targets, minSize)
	if len(small) == 0 {
		return rules.PassResult(c.ID(), fmt.Sprintf("All %d interactive element(s) meet the %gx%gpx minimum", len(targets), minSize, minSize)), nil
	}

	var examples []string
	for i, t := range small {
		if i == maxTouchExamples {
			break
		}
		examples = append(examples, t.String())
	}
	return rules.WarnResultWithDetails(c.ID(),
		fmt.Sprintf("%d interactive element(s) smaller than %gx%gpx", len(small), minSize, minSize),
		examples,
		map[string]any{"undersized": len(small), "inspected": len(targets)},
	), nil
}

// Undersized returns the targets whose width or height is below minSize, in
// document order.
func Undersized(targets []TouchTarget, minSize float64) []TouchTarget {
	var out []TouchTarget
	for _, t := range targets {
		if t.Width < minSize || t.Height < minSize {
			out = append(out, t)
		}
	}
	return out
}
