package restshape

import "context"

// Schema surfaces the SRP-aligned pillars of construction, type checking,
// value validation, and typed validation.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> Default ->
	// Validate). It returns an error when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// TypeCheck verifies structure, types, and unknown-policy decisions.
	TypeCheck(ctx context.Context, v any) error

	// RuleCheck runs length/pattern/enum validations assuming TypeCheck
	// already succeeded.
	RuleCheck(ctx context.Context, v any) error

	// Validate composes TypeCheck followed by RuleCheck.
	Validate(ctx context.Context, v any) error

	// ValidateValue verifies a value already typed as T without any conversion.
	ValidateValue(ctx context.Context, v T) error
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s (TypeCheck+RuleCheck).
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithParseOpt applies the bundled parsing options to the context.
func WithParseOpt(ctx context.Context, opt ParseOpt) context.Context {
	return WithFailFast(ctx, opt.FailFast)
}

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// It is consumed by schema implementations; the default is to collect every
// issue before reporting.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
