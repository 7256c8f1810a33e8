package dsl

import (
	"context"
	"sort"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/i18n"
)

// ObjectSchema validates a mapping against declared fields and an unknown-key
// policy. Fields added through DeferredField stay unresolved until Bind
// supplies a context; parsing input that touches an unresolved field fails
// with CodeUnbound.
type ObjectSchema struct {
	fields    map[string]AnyAdapter
	deferred  map[string]Resolver
	policy    restshape.UnknownPolicy
	afterBind []AfterBindHook
	// sortedKeys is precomputed at build and bind time. Parse only reads it,
	// so a schema defined once can be shared across concurrent requests.
	sortedKeys []string
}

var _ restshape.Schema[map[string]any] = (*ObjectSchema)(nil)

// Policy returns the schema's unknown-key policy.
func (o *ObjectSchema) Policy() restshape.UnknownPolicy { return o.policy }

// HasField reports whether name is declared and resolved.
func (o *ObjectSchema) HasField(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// SetField declares (or replaces) a resolved field. A deferred declaration of
// the same name is discharged. Intended for AfterBind hooks and binding; a
// shared schema must not be mutated once in use (clone through Bind instead).
func (o *ObjectSchema) SetField(name string, ad AnyAdapter) {
	o.fields[name] = ad
	delete(o.deferred, name)
	o.sortedKeys = fieldKeys(o.fields)
}

// sortedKnownKeys returns declared field keys in ascending order for
// deterministic behavior. It never writes to the schema.
func (o *ObjectSchema) sortedKnownKeys() []string {
	if o.sortedKeys != nil {
		return o.sortedKeys
	}
	return fieldKeys(o.fields)
}

func fieldKeys(fields map[string]AnyAdapter) []string {
	ks := make([]string, 0, len(fields))
	for k := range fields {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError.
func issuesFromErr(path string, err error) restshape.Issues {
	if err == nil {
		return nil
	}
	if i2, ok := restshape.AsIssues(err); ok {
		return i2
	}
	return restshape.Issues{{Path: path, Code: restshape.CodeParseError, Message: err.Error(), Cause: err}}
}

// collectKnown parses declared fields, applying defaults and required checks.
func (o *ObjectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, restshape.Issues) {
	out := make(map[string]any, len(src))
	var iss restshape.Issues
	for _, k := range o.sortedKnownKeys() {
		ad := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, err := ad.Parse(ctx, val)
			if err != nil {
				iss = restshape.AppendIssues(iss, restshape.RebaseIssues("/"+k, issuesFromErr("/"+k, err))...)
				if restshape.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		// missing: apply default, else enforce required, else drop
		if ad.HasDefault() {
			dv, err := ad.ApplyDefault(ctx)
			if err != nil {
				iss = restshape.AppendIssues(iss, issuesFromErr("/"+k, err)...)
				if restshape.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = dv
			continue
		}
		if ad.IsRequired() {
			iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeRequired, Message: i18n.T(restshape.CodeRequired, nil), Hint: "required property missing"})
			if restshape.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// collectResidual applies the unknown-key policy to keys not consumed by
// declared fields, and flags input reaching unresolved deferred fields.
func (o *ObjectSchema) collectResidual(src map[string]any, out map[string]any) restshape.Issues {
	var iss restshape.Issues
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		if _, def := o.deferred[k]; def {
			iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeUnbound, Message: i18n.T(restshape.CodeUnbound, nil), Hint: "bind the schema before deserializing"})
			continue
		}
		switch o.policy {
		case restshape.UnknownRaise:
			iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeUnknownKey, Message: i18n.T(restshape.CodeUnknownKey, nil)})
		case restshape.UnknownIgnore:
			// drop
		case restshape.UnknownPreserve:
			out[k] = src[k]
		}
	}
	return iss
}

func (o *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected mapping"}}
	}
	out, iss := o.collectKnown(ctx, src)
	if restshape.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if i2 := o.collectResidual(src, out); len(i2) > 0 {
		iss = restshape.AppendIssues(iss, i2...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *ObjectSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected mapping"}}
	}
	return nil
}

func (o *ObjectSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var iss restshape.Issues
	for _, k := range o.sortedKnownKeys() {
		ad := o.fields[k]
		if _, ok := m[k]; !ok && ad.IsRequired() && !ad.HasDefault() {
			iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeRequired, Message: i18n.T(restshape.CodeRequired, nil), Hint: "required property missing"})
			if restshape.IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (o *ObjectSchema) Validate(ctx context.Context, v any) error {
	if err := o.TypeCheck(ctx, v); err != nil {
		return err
	}
	return o.RuleCheck(ctx, v)
}

func (o *ObjectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	for _, k := range o.sortedKnownKeys() {
		ad := o.fields[k]
		if val, ok := v[k]; ok {
			if err := ad.ValidateValue(ctx, val); err != nil {
				return restshape.RebaseIssues("/"+k, issuesFromErr("/"+k, err))
			}
		} else if ad.IsRequired() && !ad.HasDefault() {
			return restshape.Issues{{Path: "/" + k, Code: restshape.CodeRequired, Message: i18n.T(restshape.CodeRequired, nil), Hint: "required property missing"}}
		}
	}
	return nil
}
