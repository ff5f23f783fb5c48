// Package pydantic renders inferred schemas as Pydantic model source. Every
// record becomes a BaseModel subclass and every field is declared optional
// with an alias carrying the original wire name:
//
//	street_name: str | None = Field(None, alias="streetName")
//
// Records are emitted in the schema's order, which places child records before
// the records that reference them.
package pydantic
