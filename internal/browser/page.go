// Package browser drives a headless Chrome over the DevTools protocol.
package browser

import "context"

// Page is a loaded document that can evaluate JavaScript.
//
// Evaluate runs expression in the page's main world, awaits the result if it
// is a promise and JSON-decodes the returned value into out. out may be nil
// when the value is not needed. Thrown exceptions and rejected promises are
// returned as errors.
type Page interface {
	Evaluate(ctx context.Context, expression string, out any) error
}
