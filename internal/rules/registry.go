package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Check)
	order    = make(map[string]int)
	mu       sync.RWMutex
)

// Register adds c to the registry. Checks are listed in registration order,
// which is the order they are reported in.
func Register(c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[c.ID()]; exists {
		panic(fmt.Sprintf("check %s already registered", c.ID()))
	}
	order[c.ID()] = len(order)
	registry[c.ID()] = c
}

func List() []Check {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []Check {
	var checks []Check
	for _, c := range registry {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool {
		return order[checks[i].ID()] < order[checks[j].ID()]
	})
	return checks
}

func Resolve(selector string) ([]Check, error) {
	mu.RLock()
	defer mu.RUnlock()

	if selector == "" {
		return listLocked(), nil
	}

	ids := strings.Split(selector, ",")
	var selected []Check
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if c, ok := registry[id]; ok {
			selected = append(selected, c)
		} else {
			return nil, fmt.Errorf("check not found: %s", id)
		}
	}
	return selected, nil
}

// ApplyOptions routes per-check options (as parsed from repeated --set flags)
// to the matching check's Configure method.
//
// Example:
//
//	a11yaudit https://example.com --set touch-target-size.min_size=48
func ApplyOptions(assignments map[string]map[string]string) error {
	if len(assignments) == 0 {
		return nil
	}

	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, checkID := range ids {
		opts := assignments[checkID]
		c, ok := registry[checkID]
		if !ok {
			return fmt.Errorf("unknown check ID %q", checkID)
		}
		cc, ok := c.(ConfigurableCheck)
		if !ok {
			return fmt.Errorf("check %q does not support options", checkID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cc.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for check %q", name, checkID)
			}
		}

		if err := cc.Configure(opts); err != nil {
			return fmt.Errorf("configure check %q: %w", checkID, err)
		}
	}

	return nil
}
