// Package dsl provides the node engine behind restshape: adapters for leaf
// values, object and array schemas with per-schema unknown-key policies, and
// deferred fields resolved at bind time.
//
// Schemas are defined once and bound per request. Bind never mutates the
// receiver; it returns an independently owned clone, so a schema value defined
// at process start can be shared across concurrent requests safely.
package dsl
