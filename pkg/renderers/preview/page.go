package preview

import (
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

type page struct {
	Title   string       `json:"title"`
	Source  string       `json:"source,omitempty"`
	Root    string       `json:"root"`
	Records []recordView `json:"records"`
}

type recordView struct {
	Name   string      `json:"name"`
	Path   string      `json:"path,omitempty"`
	Fields []fieldView `json:"fields,omitempty"`
}

type fieldView struct {
	Local   string `json:"local"`
	Wire    string `json:"wire"`
	Type    string `json:"type"`
	Ref     string `json:"ref,omitempty"`
	Example string `json:"example,omitempty"`
}

func newPage(schema model.Schema, options render.RenderOptions) page {
	p := page{
		Title:   options.TitleFor(schema.Root),
		Source:  options.SourceLocation,
		Root:    schema.Root,
		Records: make([]recordView, 0, len(schema.Records)),
	}
	for _, rec := range schema.Records {
		view := recordView{Name: rec.Name, Path: rec.Path}
		for _, field := range rec.Fields {
			view.Fields = append(view.Fields, fieldView{
				Local:   field.LocalName,
				Wire:    field.WireName,
				Type:    typeLabel(field.Type),
				Ref:     recordTarget(field.Type),
				Example: sanitizeExample(field.Example),
			})
		}
		p.Records = append(p.Records, view)
	}
	return p
}

func typeLabel(ref model.TypeRef) string {
	switch ref.Kind {
	case model.TypeString:
		return "string"
	case model.TypeNumber:
		return "number"
	case model.TypeBool:
		return "boolean"
	case model.TypeList:
		if ref.Elem == nil {
			return "list"
		}
		return "list of " + typeLabel(*ref.Elem)
	case model.TypeRecord:
		if ref.Record != "" {
			return ref.Record
		}
	}
	return "any"
}

// recordTarget returns the record a field links to, looking through lists.
func recordTarget(ref model.TypeRef) string {
	for ref.Kind == model.TypeList && ref.Elem != nil {
		ref = *ref.Elem
	}
	if ref.Kind == model.TypeRecord {
		return ref.Record
	}
	return ""
}
