package resource

import (
	"context"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
)

// Options configures a resource schema. The zero value means no read-only
// fields and unknown keys ignored; DefaultOptions preserves unknown keys,
// which keeps resources schema-less by default.
type Options struct {
	// ReadonlyFields lists fields that must not be updated. The schema only
	// reports them through IsReadonly; enforcement happens in the caller.
	ReadonlyFields []string
	// PreserveUnknown selects the unknown-key policy: true preserves unknown
	// keys, false drops them. The policy only governs unknown keys; declared
	// fields absent from the payload are dropped, not rejected.
	PreserveUnknown bool
}

// DefaultOptions returns the schema-less defaults.
func DefaultOptions() Options { return Options{PreserveUnknown: true} }

// ResourceSchema is the base mapping schema resource authors extend with
// typed fields. It never rejects unknown keys.
type ResourceSchema struct {
	opts  Options
	inner *dsl.ObjectSchema
}

var _ restshape.Schema[map[string]any] = (*ResourceSchema)(nil)

// New builds a resource schema from options and typed fields.
func New(opts Options, fields map[string]dsl.AnyAdapter) *ResourceSchema {
	b := dsl.Object()
	for name, ad := range fields {
		b.Field(name, ad)
	}
	if opts.PreserveUnknown {
		b.UnknownPreserve()
	} else {
		b.UnknownIgnore()
	}
	return &ResourceSchema{opts: opts, inner: b.Build()}
}

// IsReadonly reports whether the field name is read-only per the options.
func (r *ResourceSchema) IsReadonly(field string) bool {
	for _, f := range r.opts.ReadonlyFields {
		if f == field {
			return true
		}
	}
	return false
}

func (r *ResourceSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	return r.inner.Parse(ctx, v)
}

func (r *ResourceSchema) TypeCheck(ctx context.Context, v any) error { return r.inner.TypeCheck(ctx, v) }

func (r *ResourceSchema) RuleCheck(ctx context.Context, v any) error { return r.inner.RuleCheck(ctx, v) }

func (r *ResourceSchema) Validate(ctx context.Context, v any) error { return r.inner.Validate(ctx, v) }

func (r *ResourceSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	return r.inner.ValidateValue(ctx, v)
}
