// Package renderer defines the contract every menu rendering surface
// implements. All renderers consume the same paginated document and the
// same standardized dimensions, which is what keeps page breaks and text
// sizes in agreement across surfaces.
package renderer

import "github.com/menuforge/menuforge/layout"

// Renderer produces the final bytes for one surface (PDF document, HTML
// page) from a paginated document.
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}
