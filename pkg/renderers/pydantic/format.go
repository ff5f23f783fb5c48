package pydantic

import (
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/naming"
)

// Preamble is the fixed import block every document starts with.
const Preamble = "from pydantic import BaseModel, Field\nfrom typing import Any\n"

const (
	indent          = "    "
	placeholderBody = indent + "...\n"
)

// TypeExpr returns the Python annotation for a type, without the optional
// suffix.
func TypeExpr(ref model.TypeRef) string {
	switch ref.Kind {
	case model.TypeString:
		return "str"
	case model.TypeNumber:
		return "float"
	case model.TypeBool:
		return "bool"
	case model.TypeList:
		if ref.Elem == nil {
			return "list"
		}
		return "list[" + TypeExpr(*ref.Elem) + "]"
	case model.TypeRecord:
		if ref.Record == "" {
			return "Any"
		}
		return ref.Record
	default:
		return "Any"
	}
}

// FieldLine renders one field declaration, indentation and newline excluded.
func FieldLine(field model.FieldDescriptor) string {
	var b strings.Builder
	b.WriteString(field.LocalName)
	b.WriteString(": ")
	b.WriteString(TypeExpr(field.Type))
	b.WriteString(" | None = Field(None, alias=\"")
	b.WriteString(naming.EscapePython(field.WireName))
	b.WriteString("\")")
	return b.String()
}

// RenderRecord renders one class declaration. Records without fields get a
// placeholder body because Python rejects an empty class body.
func RenderRecord(def model.RecordDefinition) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(def.Name)
	b.WriteString("(BaseModel):\n")

	if def.Opaque || len(def.Fields) == 0 {
		b.WriteString(placeholderBody)
		return b.String()
	}
	for _, field := range def.Fields {
		b.WriteString(indent)
		b.WriteString(FieldLine(field))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderDocument renders the preamble followed by each record, separated by a
// blank line. It is the template free equivalent of Renderer.Render.
func RenderDocument(records []model.RecordDefinition) string {
	var b strings.Builder
	b.WriteString(Preamble)
	for _, def := range records {
		b.WriteByte('\n')
		b.WriteString(RenderRecord(def))
	}
	return b.String()
}

// RecordView is one record as document.tmpl sees it. Opaque records carry no
// fields.
type RecordView struct {
	Name   string      `json:"name"`
	Fields []FieldView `json:"fields"`
}

// FieldView is one field line as document.tmpl sees it. Wire is raw; templates
// escape it with the pyquote filter.
type FieldView struct {
	Local string `json:"local"`
	Type  string `json:"type"`
	Wire  string `json:"wire"`
}

// Views converts records into template data, in emission order.
func Views(records []model.RecordDefinition) []RecordView {
	out := make([]RecordView, 0, len(records))
	for _, def := range records {
		view := RecordView{Name: def.Name, Fields: []FieldView{}}
		if !def.Opaque {
			for _, field := range def.Fields {
				view.Fields = append(view.Fields, FieldView{
					Local: field.LocalName,
					Type:  TypeExpr(field.Type),
					Wire:  field.WireName,
				})
			}
		}
		out = append(out, view)
	}
	return out
}
