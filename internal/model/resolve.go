package model

import (
	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/naming"
)

// fallbackRecordName names records derived from an empty wire name.
const fallbackRecordName = "Unnamed"

// resolveType returns the type descriptor for a field value. Object values and
// arrays whose first element is an object are built into records on the way,
// so the referenced names are registered before the enclosing record.
func (w *walk) resolveType(value jsonvalue.Value, wireName, enclosing, path string) TypeRef {
	switch value.Kind() {
	case jsonvalue.KindString:
		return Scalar(TypeString)
	case jsonvalue.KindNumber:
		return Scalar(TypeNumber)
	case jsonvalue.KindBool:
		return Scalar(TypeBool)
	case jsonvalue.KindObject:
		name := w.build(value, childRecordName(wireName), enclosing, path)
		return RecordRef(name)
	case jsonvalue.KindArray:
		return w.resolveArray(value, wireName, enclosing, path)
	default:
		return Scalar(TypeAny)
	}
}

// resolveArray samples only the first element; the remaining elements are
// never inspected.
func (w *walk) resolveArray(value jsonvalue.Value, wireName, enclosing, path string) TypeRef {
	if value.Len() == 0 {
		return UntypedList()
	}
	first := value.Index(0)
	switch first.Kind() {
	case jsonvalue.KindObject:
		name := w.build(first, childRecordName(wireName), enclosing, path+"[0]")
		return ListOf(RecordRef(name))
	case jsonvalue.KindString:
		return ListOf(Scalar(TypeString))
	case jsonvalue.KindNumber:
		return ListOf(Scalar(TypeNumber))
	case jsonvalue.KindBool:
		return ListOf(Scalar(TypeBool))
	default:
		return ListOf(Scalar(TypeAny))
	}
}

func childRecordName(wireName string) string {
	if name := naming.ToRecordName(wireName); name != "" {
		return name
	}
	return fallbackRecordName
}

// exampleOf returns the text shown as a sample for a field. Only scalars and
// arrays of scalars carry one.
func exampleOf(value jsonvalue.Value) string {
	switch value.Kind() {
	case jsonvalue.KindString, jsonvalue.KindNumber, jsonvalue.KindBool:
		return value.Text()
	case jsonvalue.KindArray:
		first := value.Index(0)
		switch first.Kind() {
		case jsonvalue.KindString, jsonvalue.KindNumber, jsonvalue.KindBool:
			return first.Text()
		}
	}
	return ""
}
