package render

import (
	"context"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Renderer converts an inferred Schema into source text (Python, JSON Schema,
// HTML, ...).
type Renderer interface {
	Name() string
	ContentType() string
	// FileExtension is the extension, dot included, of files this renderer
	// writes. Used to pick a renderer from an output path.
	FileExtension() string
	Render(ctx context.Context, schema model.Schema, options RenderOptions) ([]byte, error)
}
