package model

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/naming"
)

// Builder infers record definitions from a sample value.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Collision != "" {
		opts.Collision = options.Collision
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	if options.Reserved != nil {
		opts.Reserved = options.Reserved
	}
	return &Builder{opts: opts}
}

// Build walks value and returns every record it discovers, the root record
// named rootName (DefaultRootName when empty). Build never fails: values
// without a structure to infer degrade to Any or to an opaque root.
func (b *Builder) Build(value jsonvalue.Value, rootName string) Schema {
	rootName = strings.TrimSpace(rootName)
	if rootName == "" {
		rootName = DefaultRootName
	}

	registry := NewRegistry(b.opts.Collision, b.opts.Logger)
	registry.Reserve(rootName)
	for _, name := range b.opts.Reserved {
		registry.Reserve(name)
	}

	w := &walk{registry: registry}
	w.build(value, rootName, "", "$")

	records := registry.Drain()
	b.opts.Logger.Debug("schema inferred",
		slog.String("root", rootName),
		slog.Int("records", len(records)),
	)
	return Schema{Root: rootName, Records: records}
}

type walk struct {
	registry *Registry
}

// build computes the fields of one record, registering nested records as it
// meets them, and registers the record itself once its field list is
// complete. An empty parent marks the root. The returned name is the one the
// record ended up under. Children are qualified with the derived name, since
// the final one is only claimed after them.
func (w *walk) build(value jsonvalue.Value, name, parent, path string) string {
	def := RecordDefinition{Name: name, Path: path}

	if !value.IsObject() {
		def.Opaque = true
	} else {
		members := value.Members()
		def.Fields = make([]FieldDescriptor, 0, len(members))
		for _, member := range members {
			def.Fields = append(def.Fields, FieldDescriptor{
				WireName:  member.Key,
				LocalName: naming.ToLocalIdentifier(member.Key),
				Type:      w.resolveType(member.Value, member.Key, name, memberPath(path, member.Key)),
				Optional:  true,
				Example:   exampleOf(member.Value),
			})
		}
	}

	if parent == "" {
		w.registry.Register(name, def)
		return name
	}
	return w.registry.Claim(def, parent)
}

func memberPath(parent, key string) string {
	if isPlainKey(key) {
		return parent + "." + key
	}
	return parent + "[" + strconv.Quote(key) + "]"
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}
