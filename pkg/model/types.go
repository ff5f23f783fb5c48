package model

import internalmodel "github.com/goliatone/go-modelgen/internal/model"

// TypeKind re-exports the internal TypeKind enumeration.
type TypeKind = internalmodel.TypeKind

const (
	TypeString = internalmodel.TypeString
	TypeNumber = internalmodel.TypeNumber
	TypeBool   = internalmodel.TypeBool
	TypeAny    = internalmodel.TypeAny
	TypeList   = internalmodel.TypeList
	TypeRecord = internalmodel.TypeRecord
)

// DefaultRootName names the root record when a request omits one.
const DefaultRootName = internalmodel.DefaultRootName

type TypeRef = internalmodel.TypeRef
type FieldDescriptor = internalmodel.FieldDescriptor
type RecordDefinition = internalmodel.RecordDefinition
type Schema = internalmodel.Schema

// CollisionPolicy re-exports the record name collision policies.
type CollisionPolicy = internalmodel.CollisionPolicy

const (
	CollisionQualify   = internalmodel.CollisionQualify
	CollisionOverwrite = internalmodel.CollisionOverwrite
)

// ParseCollisionPolicy maps a textual policy name to a CollisionPolicy.
func ParseCollisionPolicy(raw string) (CollisionPolicy, bool) {
	return internalmodel.ParseCollisionPolicy(raw)
}

func Scalar(kind TypeKind) TypeRef  { return internalmodel.Scalar(kind) }
func ListOf(elem TypeRef) TypeRef   { return internalmodel.ListOf(elem) }
func UntypedList() TypeRef          { return internalmodel.UntypedList() }
func RecordRef(name string) TypeRef { return internalmodel.RecordRef(name) }
