// Package jsonvalue holds the immutable value tree the inference engine walks.
// Objects keep their members in document order, which the generated models
// rely on to emit fields in the same order as the sample. Decoders exist for
// JSON (buger/jsonparser) and YAML (yaml.v3 nodes); both stop at the first
// malformed token and report it, so the engine never sees a partial tree.
package jsonvalue
