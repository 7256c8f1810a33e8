// Package restshape is a declarative validation-and-coercion engine for
// structured request data: HTTP headers, query parameters, and JSON bodies.
//
// Given raw, loosely typed input (strings and nested mappings/sequences of
// primitives) and a schema describing the expected shape, it produces either
// a fully typed, normalized value or a precise validation error via Issues.
// It never trusts the caller's types.
//
// Design policy:
//   - Keep only the error model, policies, and public Schema contract in the
//     root package.
//   - Place the node engine and deferred binding under dsl/, the request-domain
//     schemas under resource/, and input decoders under source/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	record := resource.RecordSchema().Bind(dsl.BindContext{"data": dataSchema})
//	req := resource.PayloadRequestSchema().Bind(dsl.BindContext{"body": record})
//	v, err := req.Parse(ctx, raw)
package restshape
