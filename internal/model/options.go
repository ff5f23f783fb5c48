package model

import (
	"io"
	"log/slog"
)

// DefaultRootName names the top-level record when callers do not supply one.
const DefaultRootName = "Model"

// CollisionPolicy decides what happens when two different object shapes
// derive the same record name.
type CollisionPolicy string

const (
	// CollisionQualify reuses a name when the shapes are identical and
	// otherwise prefixes the enclosing record name, falling back to a numeric
	// suffix.
	CollisionQualify CollisionPolicy = "qualify"
	// CollisionOverwrite lets the later shape replace the earlier one while
	// both keep their slot in the emission order.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// ParseCollisionPolicy maps a textual policy to a CollisionPolicy. Empty input
// yields the default.
func ParseCollisionPolicy(raw string) (CollisionPolicy, bool) {
	switch CollisionPolicy(raw) {
	case "":
		return CollisionQualify, true
	case CollisionQualify, CollisionOverwrite:
		return CollisionPolicy(raw), true
	default:
		return "", false
	}
}

// ReservedNames are the names the generated module imports. Nested records
// never claim them under CollisionQualify, since a class of that name would
// rebind the import.
var ReservedNames = []string{"BaseModel", "Field", "Any"}

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Collision CollisionPolicy
	Logger    *slog.Logger
	// Reserved replaces ReservedNames when non-nil.
	Reserved []string
}

func defaultOptions() Options {
	return Options{
		Collision: CollisionQualify,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Reserved:  ReservedNames,
	}
}
