package model

import (
	"fmt"
	"strings"
)

// Decorator adjusts an inferred schema after the builder has produced it and
// before it is rendered.
type Decorator interface {
	Decorate(*Schema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Schema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *Schema) error {
	return fn(schema)
}

// RenameRecords returns a Decorator that renames records and rewrites every
// field reference to them. Renaming onto a name that is already used by a
// record outside the mapping is rejected.
func RenameRecords(mapping map[string]string) Decorator {
	return DecoratorFunc(func(schema *Schema) error {
		if schema == nil || len(mapping) == 0 {
			return nil
		}

		renames := make(map[string]string, len(mapping))
		for from, to := range mapping {
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)
			if from == "" || to == "" {
				return fmt.Errorf("model: rename %q -> %q: names are required", from, to)
			}
			if from != to {
				renames[from] = to
			}
		}

		final := make(map[string]string)
		for _, rec := range schema.Records {
			name := rec.Name
			if to, ok := renames[name]; ok {
				name = to
			}
			if owner, taken := final[name]; taken && owner != rec.Name {
				return fmt.Errorf("model: rename %q -> %q collides with record %q", rec.Name, name, owner)
			}
			final[name] = rec.Name
		}

		for i := range schema.Records {
			rec := &schema.Records[i]
			if to, ok := renames[rec.Name]; ok {
				rec.Name = to
			}
			for j := range rec.Fields {
				rec.Fields[j].Type = renameRef(rec.Fields[j].Type, renames)
			}
		}
		if to, ok := renames[schema.Root]; ok {
			schema.Root = to
		}
		return nil
	})
}

func renameRef(ref TypeRef, renames map[string]string) TypeRef {
	if ref.Kind == TypeRecord {
		if to, ok := renames[ref.Record]; ok {
			ref.Record = to
		}
		return ref
	}
	if ref.Elem != nil {
		elem := renameRef(*ref.Elem, renames)
		ref.Elem = &elem
	}
	return ref
}

// ParseRenames parses "From=To" pairs into a rename mapping.
func ParseRenames(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("model: invalid rename %q, expected From=To", pair)
		}
		out[from] = to
	}
	return out, nil
}
