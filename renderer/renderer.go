// Package renderer defines the output contract of the engine: a backend
// consumes a finished layout document and its committed geometry verbatim.
// Backends draw inside the boxes the layout produced and never move them.
package renderer

import "github.com/treyder38/folio/layout"

// Renderer turns a layout document into final file bytes (a PDF, an image).
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Options controls the debug overlays shared by backends.
type Options struct {
	// DrawFrames strokes every block bbox.
	DrawFrames bool
	// DrawWordFrames strokes every word bbox inside text blocks.
	DrawWordFrames bool
}
