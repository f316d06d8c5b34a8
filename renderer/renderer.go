// Package renderer formats ledger state into markdown strings. It is pure
// presentation: it reads documents the core hands it and never mutates them.
package renderer

import (
	"fmt"
	"strings"
)

// mdRenderer accumulates markdown output.
type mdRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func newRenderer() *mdRenderer {
	return &mdRenderer{Builder: &strings.Builder{}}
}
