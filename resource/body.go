package resource

import (
	"context"

	"github.com/restshape/restshape/dsl"
)

// RecordSchema validates a record body: a data mapping plus an optional
// permission mapping, both resolved at bind time. Unknown body keys are
// rejected.
//
// data is supplied through the binding context. If the supplied schema
// accepts an empty record (every sub-field has a default), the whole data
// field becomes optional with default {}.
//
// permissions stays deferred when absent from the context, so the body can be
// bound on a plain resource first and permissions bound later on a shareable
// one.
func RecordSchema() *dsl.ObjectSchema {
	return dsl.Object().UnknownRaise().
		DeferredField("data", dataResolver).
		DeferredField("permissions", contextResolver("permissions")).
		Build()
}

func dataResolver(kw dsl.BindContext) (dsl.AnyAdapter, bool) {
	ad, ok := adapterFromContext(kw["data"])
	if !ok {
		return dsl.AnyAdapter{}, false
	}
	// Probe whether an empty record is allowed (e.g. every schema field has
	// a default).
	if _, err := ad.Parse(context.Background(), map[string]any{}); err == nil {
		return ad.DefaultFunc(func() any { return map[string]any{} }), true
	}
	return ad.Required(), true
}

var patchOps = []string{"test", "add", "remove", "replace", "move", "copy"}

// Anchored at the start only: the path must begin with /-separated word
// segments, but may carry a remainder (JSON Pointer escapes like ~1 appear
// past the matched prefix).
const patchPathPattern = `^(/\w*)+`

// JSONPatchOperationSchema validates a single JSON Patch operation
// (RFC 6902): op, path, optional from, optional value. Unknown keys are
// rejected. from is required semantically for move/copy but not enforced
// structurally here.
func JSONPatchOperationSchema() *dsl.ObjectSchema {
	return dsl.Object().UnknownRaise().
		Field("op", dsl.StringOf().OneOf(patchOps...)).Required().
		Field("path", dsl.StringOf().Pattern(patchPathPattern, "")).Required().
		Field("from", dsl.StringOf().Pattern(patchPathPattern, "")).
		Field("value", dsl.AnyOf()).
		Build()
}

// JSONPatchBodySchema validates a body used with JSON Patch
// (application/json-patch+json): an ordered sequence of operations. Patches
// apply in order, so input order is preserved.
func JSONPatchBodySchema() *dsl.ArraySchema {
	return dsl.Array(dsl.FromSchema[map[string]any](JSONPatchOperationSchema()))
}
