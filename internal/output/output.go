// Package output renders scan results and provides context-aware output.
// Stdout is used for primary data output (the report table or JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"io"
	"os"
)

type ctxKey struct{}

// Printer carries the writer the report table or JSON goes to.
type Printer struct {
	w io.Writer
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Writer returns the writer renderers write to.
func (p *Printer) Writer() io.Writer {
	return p.w
}
