package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the schema.
type RenderOptions struct {
	// SourceLocation identifies the sample the schema was inferred from.
	// Renderers that emit headers or titles may include it.
	SourceLocation string
	// Title overrides the document title where the output format has one
	// (JSON Schema title, OpenAPI info title, HTML heading). Defaults to the
	// root record name.
	Title string
}

// TitleFor returns the configured title or the schema's root name.
func (o RenderOptions) TitleFor(root string) string {
	if o.Title != "" {
		return o.Title
	}
	return root
}
