// Package middleware adapts net/http requests into the engine's inputs: it
// extracts the header and querystring mappings, decodes a JSON body when one
// is present, runs a bound request schema, and either stores the validated
// value in the request context or writes a 400 response shaped from the
// issues. Transport and routing stay outside; this is only the boundary
// adapter.
package middleware

import (
	"context"
	"io"
	"net/http"

	j "github.com/goccy/go-json"

	restshape "github.com/restshape/restshape"
	srcjson "github.com/restshape/restshape/source/json"
)

// ctxKeyValidated is a typed context key for storing the validated request.
type ctxKeyValidated struct{}

// ContextWithValidated attaches a validated request value to the context.
func ContextWithValidated(ctx context.Context, v map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, v)
}

// ValidatedFromContext retrieves the validated request value from context.
func ValidatedFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyValidated{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues restshape.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

// Validate wraps next with request validation against a bound request
// schema. The schema must already be bound; Validate performs no binding of
// its own so each caller controls the per-request schema graph.
func Validate(schema restshape.Schema[map[string]any], next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := rawRequest(r)
		if err == nil {
			var out map[string]any
			out, err = schema.Parse(r.Context(), raw)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), out)))
				return
			}
		}
		iss, ok := restshape.AsIssues(err)
		if !ok {
			iss = restshape.Issues{{Path: "/", Code: restshape.CodeParseError, Message: err.Error(), Cause: err}}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = j.NewEncoder(w).Encode(ErrorPayload(iss))
	})
}

// rawRequest splits a request into the three raw partitions the request
// schemas consume.
func rawRequest(r *http.Request) (map[string]any, error) {
	hdr := make(map[string]any, len(r.Header))
	for k := range r.Header {
		hdr[k] = r.Header.Get(k)
	}
	q := r.URL.Query()
	qs := make(map[string]any, len(q))
	for k := range q {
		qs[k] = q.Get(k)
	}
	raw := map[string]any{"header": hdr, "querystring": qs}
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, restshape.Issues{{Path: "/body", Code: restshape.CodeParseError, Message: "Unable to read request body", Cause: err}}
		}
		if len(b) > 0 {
			body, err := srcjson.DecodeBytes(b)
			if err != nil {
				return nil, restshape.RebaseIssues("/body", mustIssues(err))
			}
			raw["body"] = body
		}
	}
	return raw, nil
}

func mustIssues(err error) restshape.Issues {
	if iss, ok := restshape.AsIssues(err); ok {
		return iss
	}
	return restshape.Issues{{Path: "/", Code: restshape.CodeParseError, Message: err.Error(), Cause: err}}
}
