// Package sample exposes the public contracts for loading example documents:
// where a sample comes from (Source), the raw payload plus its format
// (Document), and the Loader that fetches it. Implementations live under
// internal/sample so transport details stay out of the public API.
package sample
