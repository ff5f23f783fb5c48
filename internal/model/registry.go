package model

import (
	"log/slog"
	"strconv"
)

// Registry stores record definitions by name alongside the order in which they
// were registered. Lookups resolve to the latest definition for a name, so
// Drain renders what a name holds at read time.
//
// A Registry serves a single inference run and is not safe for concurrent use.
type Registry struct {
	policy      CollisionPolicy
	logger      *slog.Logger
	definitions map[string]RecordDefinition
	order       []string
	reserved    map[string]struct{}
}

// NewRegistry creates an empty registry applying the given collision policy.
func NewRegistry(policy CollisionPolicy, logger *slog.Logger) *Registry {
	if policy == "" {
		policy = CollisionQualify
	}
	if logger == nil {
		logger = defaultOptions().Logger
	}
	return &Registry{
		policy:      policy,
		logger:      logger,
		definitions: make(map[string]RecordDefinition),
		reserved:    make(map[string]struct{}),
	}
}

// Reserve keeps a name out of reach of Claim so only Register can use it. The
// root record name is reserved before the walk starts.
func (r *Registry) Reserve(name string) {
	r.reserved[name] = struct{}{}
}

// Register overwrite-inserts def under name and appends name to the emission
// order unconditionally.
func (r *Registry) Register(name string, def RecordDefinition) {
	def.Name = name
	r.definitions[name] = def
	r.order = append(r.order, name)
}

// Claim registers def under def.Name or, when that name is taken, under the
// name the collision policy settles on. parent is the enclosing record name
// used for qualification. The returned name is the one def was stored (or
// deduplicated) under.
func (r *Registry) Claim(def RecordDefinition, parent string) string {
	if r.policy == CollisionOverwrite {
		if _, exists := r.definitions[def.Name]; exists {
			r.logger.Debug("record overwritten", slog.String("record", def.Name), slog.String("path", def.Path))
		}
		r.Register(def.Name, def)
		return def.Name
	}

	for i := 0; ; i++ {
		candidate, ok := candidateName(def.Name, parent, i)
		if !ok {
			continue
		}
		if _, reserved := r.reserved[candidate]; reserved {
			continue
		}
		existing, taken := r.definitions[candidate]
		if !taken {
			if candidate != def.Name {
				r.logger.Debug("record name qualified",
					slog.String("derived", def.Name),
					slog.String("record", candidate),
					slog.String("path", def.Path),
				)
			}
			r.Register(candidate, def)
			return candidate
		}
		if existing.SameShape(def) {
			return candidate
		}
	}
}

// candidateName returns the i-th name Claim tries: the derived name, the
// parent-qualified name, then name2, name3 and so on. The sequence never ends
// and only finitely many names are ever taken, so Claim always terminates.
func candidateName(name, parent string, i int) (string, bool) {
	switch i {
	case 0:
		return name, true
	case 1:
		return parent + name, parent != ""
	default:
		return name + strconv.Itoa(i), true
	}
}

// Lookup returns the current definition for name.
func (r *Registry) Lookup(name string) (RecordDefinition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// Len reports the number of entries in the emission order.
func (r *Registry) Len() int {
	return len(r.order)
}

// Drain consumes the emission order front to back, resolving every name
// through the definitions at read time. The registry is empty afterwards.
func (r *Registry) Drain() []RecordDefinition {
	out := make([]RecordDefinition, 0, len(r.order))
	for _, name := range r.order {
		def, ok := r.definitions[name]
		if !ok {
			continue
		}
		out = append(out, def)
	}
	r.order = nil
	r.definitions = make(map[string]RecordDefinition)
	return out
}
