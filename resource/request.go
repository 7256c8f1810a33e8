package resource

import (
	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
)

// RequestSchema aggregates the header and querystring partitions of a
// request. Both are resolved from the binding context; when the context
// supplies neither, the generic HeaderSchema and QuerySchema are injected
// once binding completes. Parsing yields the validated partitions grouped by
// key.
func RequestSchema() *dsl.ObjectSchema {
	return requestBuilder().Build()
}

// PayloadRequestSchema is RequestSchema plus a deferred body for methods
// carrying a JSON payload. The body stays deferred when the context has none,
// allowing a later binding pass to supply it.
func PayloadRequestSchema() *dsl.ObjectSchema {
	return requestBuilder().
		DeferredField("body", contextResolver("body")).
		Build()
}

// JSONPatchRequestSchema is the request schema for
// application/json-patch+json. The shape is fixed regardless of the targeted
// resource, so nothing is deferred.
func JSONPatchRequestSchema() *dsl.ObjectSchema {
	return dsl.Object().UnknownIgnore().
		Field("body", dsl.FromSchema[[]any](JSONPatchBodySchema())).Required().
		Field("querystring", dsl.FromSchema[map[string]any](QuerySchema())).
		Field("header", dsl.FromSchema[map[string]any](PatchHeaderSchema())).
		Build()
}

func requestBuilder() *dsl.ObjectBuilder {
	return dsl.Object().UnknownIgnore().
		DeferredField("header", contextResolver("header")).
		DeferredField("querystring", contextResolver("querystring")).
		AfterBind(func(o *dsl.ObjectSchema, kw dsl.BindContext) {
			// Default sub-schemas for partitions the context left unbound.
			if !o.HasField("header") {
				o.SetField("header", dsl.FromSchema[map[string]any](HeaderSchema()))
			}
			if !o.HasField("querystring") {
				o.SetField("querystring", dsl.FromSchema[map[string]any](QuerySchema()))
			}
		})
}

// contextResolver resolves a deferred field to the schema registered in the
// binding context under name, keeping the field deferred when absent.
func contextResolver(name string) dsl.Resolver {
	return func(kw dsl.BindContext) (dsl.AnyAdapter, bool) {
		return adapterFromContext(kw[name])
	}
}

func adapterFromContext(v any) (dsl.AnyAdapter, bool) {
	switch s := v.(type) {
	case nil:
		return dsl.AnyAdapter{}, false
	case dsl.AnyAdapter:
		return s, true
	case restshape.Schema[map[string]any]:
		return dsl.FromSchema(s), true
	case restshape.Schema[[]any]:
		return dsl.FromSchema(s), true
	}
	return dsl.AnyAdapter{}, false
}
