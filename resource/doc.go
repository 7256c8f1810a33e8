// Package resource provides the request-oriented schemas of a
// resource-oriented API: the configurable base resource mapping, the
// permission (ACL) schema, the typed leaf fields headers and querystrings are
// made of, and the header/querystring/body/request composition schemas.
//
// Schemas here only shape data. They never evaluate permissions, never touch
// storage, and never enforce read-only fields; callers query IsReadonly and
// act on it.
package resource
