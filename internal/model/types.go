package model

// TypeKind enumerates the type descriptors a field can carry.
type TypeKind string

const (
	TypeString TypeKind = "string"
	TypeNumber TypeKind = "number"
	TypeBool   TypeKind = "bool"
	TypeAny    TypeKind = "any"
	TypeList   TypeKind = "list"
	TypeRecord TypeKind = "record"
)

// TypeRef describes the declared type of a field. Lists carry their element
// type in Elem; a list with a nil Elem is the untyped list inferred from an
// empty array and renders as a bare list rather than a list of Any. Record
// references carry the referenced record name.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Elem   *TypeRef `json:"elem,omitempty"`
	Record string   `json:"record,omitempty"`
}

// Scalar returns a scalar type descriptor.
func Scalar(kind TypeKind) TypeRef {
	return TypeRef{Kind: kind}
}

// ListOf returns a list type with the supplied element type.
func ListOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeList, Elem: &elem}
}

// UntypedList returns the bare list type used for empty arrays.
func UntypedList() TypeRef {
	return TypeRef{Kind: TypeList}
}

// RecordRef returns a reference to a named record.
func RecordRef(name string) TypeRef {
	return TypeRef{Kind: TypeRecord, Record: name}
}

// IsScalar reports whether the type is one of string, number, bool or any.
func (t TypeRef) IsScalar() bool {
	switch t.Kind {
	case TypeString, TypeNumber, TypeBool, TypeAny:
		return true
	default:
		return false
	}
}

// IsUntypedList reports whether the type is a list without element type.
func (t TypeRef) IsUntypedList() bool {
	return t.Kind == TypeList && t.Elem == nil
}

// Equal compares two type descriptors structurally.
func (t TypeRef) Equal(other TypeRef) bool {
	if t.Kind != other.Kind || t.Record != other.Record {
		return false
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == nil && other.Elem == nil
	}
	return t.Elem.Equal(*other.Elem)
}

// FieldDescriptor models one field of an inferred record. Optional is always
// true for inferred fields: a single sample cannot prove a key is required.
// Example carries the sample's scalar text for documentation renderers.
type FieldDescriptor struct {
	WireName  string  `json:"wireName"`
	LocalName string  `json:"localName"`
	Type      TypeRef `json:"type"`
	Optional  bool    `json:"optional"`
	Example   string  `json:"example,omitempty"`
}

// RecordDefinition is a named group of fields inferred from one object shape.
// Opaque marks records created for non-object input; they have no fields.
// Path is the location in the sample where the shape was discovered.
type RecordDefinition struct {
	Name   string            `json:"name"`
	Path   string            `json:"path,omitempty"`
	Opaque bool              `json:"opaque,omitempty"`
	Fields []FieldDescriptor `json:"fields"`
}

// SameShape reports whether two records declare the same fields in the same
// order with the same types. Names, paths and examples are ignored.
func (r RecordDefinition) SameShape(other RecordDefinition) bool {
	if r.Opaque != other.Opaque || len(r.Fields) != len(other.Fields) {
		return false
	}
	for i := range r.Fields {
		a, b := r.Fields[i], other.Fields[i]
		if a.WireName != b.WireName || a.LocalName != b.LocalName || a.Optional != b.Optional {
			return false
		}
		if !a.Type.Equal(b.Type) {
			return false
		}
	}
	return true
}

// Schema is the drained output of one inference run: the root record name and
// every record in emission order.
type Schema struct {
	Root    string             `json:"root"`
	Records []RecordDefinition `json:"records"`
}

// Record looks up a record by name. With the overwrite collision policy a name
// can occur more than once; the first occurrence is returned.
func (s Schema) Record(name string) (RecordDefinition, bool) {
	for _, rec := range s.Records {
		if rec.Name == name {
			return rec, true
		}
	}
	return RecordDefinition{}, false
}

// Names lists record names in emission order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Records))
	for _, rec := range s.Records {
		names = append(names, rec.Name)
	}
	return names
}
