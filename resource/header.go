package resource

import "github.com/restshape/restshape/dsl"

// HeaderSchema validates and deserializes request headers. Unknown headers
// are preserved: intermediate proxies and clients add headers that must not
// cause rejection. An empty header set is valid.
func HeaderSchema() *dsl.ObjectSchema {
	return headerBuilder().Build()
}

// PatchHeaderSchema is HeaderSchema plus the Response-Behavior header used
// with PATCH requests.
func PatchHeaderSchema() *dsl.ObjectSchema {
	return headerBuilder().
		Field("Response-Behavior", HeaderField(dsl.StringOf().OneOf("full", "light", "diff"))).
		Build()
}

func headerBuilder() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("If-Match", HeaderQuotedInteger()).
		Field("If-None-Match", HeaderQuotedInteger()).
		UnknownPreserve()
}
