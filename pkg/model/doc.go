// Package model defines the inferred schema consumed by renderers. Builders
// reside in internal/model but return the types defined here. A Schema lists
// records in emission order: every record referenced by a field is present,
// and with the default qualify policy every name occurs once. Fields are
// always optional and carry both the wire name found in the sample and the
// snake_case local name used in generated declarations.
package model
