package modelgen

import (
	"io/fs"

	"github.com/goliatone/go-modelgen/pkg/renderers/preview"
	"github.com/goliatone/go-modelgen/pkg/renderers/pydantic"
)

// EmbeddedTemplates exposes the built-in Pydantic document template so callers
// can copy or extend it and pass it back through pydantic.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return pydantic.TemplatesFS()
}

// EmbeddedPreviewTemplates exposes the HTML preview templates.
func EmbeddedPreviewTemplates() fs.FS {
	return preview.TemplatesFS()
}
