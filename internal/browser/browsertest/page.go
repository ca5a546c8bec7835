// Package browsertest provides an in-memory browser.Page for tests.
package browsertest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Page answers Evaluate calls from a handler instead of a real browser.
// Values returned by the handler are round-tripped through JSON, matching
// what a browser returns by value.
type Page struct {
	Handle func(expression string) (any, error)

	mu    sync.Mutex
	calls []string
}

// Static returns a Page answering every expression with v.
func Static(v any) *Page {
	return &Page{Handle: func(string) (any, error) { return v, nil }}
}

// Routes returns a Page answering with the value of the first route whose key
// is a substring of the expression.
func Routes(routes map[string]any) *Page {
	return &Page{Handle: func(expression string) (any, error) {
		for key, v := range routes {
			if strings.Contains(expression, key) {
				if err, ok := v.(error); ok {
					return nil, err
				}
				return v, nil
			}
		}
		return nil, fmt.Errorf("browsertest: no route for expression %.60q", expression)
	}}
}

func (p *Page) Evaluate(ctx context.Context, expression string, out any) error {
	p.mu.Lock()
	p.calls = append(p.calls, expression)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Handle == nil {
		return fmt.Errorf("browsertest: no handler")
	}
	v, err := p.Handle(expression)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Calls returns the evaluated expressions in order.
func (p *Page) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
