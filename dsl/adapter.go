package dsl

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/i18n"
)

// AnyAdapter adapts a Schema[T] (or a bespoke parse function) to an any-typed
// wrapper usable as an object field. Missing-value behavior travels with the
// adapter: absent keys are dropped unless the adapter carries a default or is
// marked required.
type AnyAdapter struct {
	parse         func(context.Context, any) (any, error)
	validateValue func(context.Context, any) error
	applyDefault  func(context.Context) (any, error)
	required      bool
}

// FromSchema wraps a strongly typed Schema[T] as an AnyAdapter.
func FromSchema[T any](s restshape.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: "invalid field type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
	}
}

// Adapter wraps a bespoke parse function as an AnyAdapter. Validation is
// whatever the parse function enforces.
func Adapter(parse func(context.Context, any) (any, error)) AnyAdapter {
	return AnyAdapter{
		parse: parse,
		validateValue: func(ctx context.Context, v any) error {
			_, err := parse(ctx, v)
			return err
		},
	}
}

// Parse runs the adapter on a present value.
func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

// ValidateValue verifies an already-typed value.
func (ad AnyAdapter) ValidateValue(ctx context.Context, v any) error {
	if ad.validateValue == nil {
		return nil
	}
	return ad.validateValue(ctx, v)
}

// HasDefault reports whether the adapter substitutes a value for absent keys.
func (ad AnyAdapter) HasDefault() bool { return ad.applyDefault != nil }

// ApplyDefault produces the substitute value for an absent key.
func (ad AnyAdapter) ApplyDefault(ctx context.Context) (any, error) {
	if ad.applyDefault == nil {
		return nil, nil
	}
	return ad.applyDefault(ctx)
}

// IsRequired reports whether an absent key is a validation error.
func (ad AnyAdapter) IsRequired() bool { return ad.required }

// Required marks absent keys as a validation error.
func (ad AnyAdapter) Required() AnyAdapter {
	out := ad
	out.required = true
	return out
}

// Default sets the value substituted when the key is absent. The raw default
// is run through the adapter's parse so coercions and validations apply to it
// as well.
func (ad AnyAdapter) Default(v any) AnyAdapter {
	out := ad
	out.required = false
	out.applyDefault = func(ctx context.Context) (any, error) { return ad.Parse(ctx, v) }
	return out
}

// DefaultFunc is Default with a late-evaluated value (e.g. current time).
// The produced value bypasses parse; the producer owns its type.
func (ad AnyAdapter) DefaultFunc(fn func() any) AnyAdapter {
	out := ad
	out.required = false
	out.applyDefault = func(ctx context.Context) (any, error) { return fn(), nil }
	return out
}

// Prepare installs a pre-validation transform run on present values before
// the underlying parse.
func (ad AnyAdapter) Prepare(fn func(any) any) AnyAdapter {
	prev := ad.parse
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		v = fn(v)
		if prev == nil {
			return v, nil
		}
		return prev(ctx, v)
	}
	return out
}

// OneOf restricts a string value to the given choices. The failure message
// enumerates the valid set. Non-string values are ignored by this guard (type
// errors are handled elsewhere).
func (ad AnyAdapter) OneOf(choices ...string) AnyAdapter {
	return ad.check(func(v any) error {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		for _, c := range choices {
			if s == c {
				return nil
			}
		}
		msg := fmt.Sprintf("%q is not one of %s", s, strings.Join(choices, ", "))
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidEnum, Message: msg}}
	})
}

// Pattern requires a string value to match the anchored expression. msg is
// the failure message; empty selects the dictionary default.
func (ad AnyAdapter) Pattern(expr, msg string) AnyAdapter {
	re := regexp.MustCompile(expr)
	if msg == "" {
		msg = i18n.T(restshape.CodePattern, nil)
	}
	return ad.check(func(v any) error {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		if !re.MatchString(s) {
			return restshape.Issues{{Path: "/", Code: restshape.CodePattern, Message: msg}}
		}
		return nil
	})
}

// MinLen requires string or sequence values to hold at least n elements.
func (ad AnyAdapter) MinLen(n int) AnyAdapter {
	return ad.check(func(v any) error {
		if l, ok := lengthOf(v); ok && l < n {
			return restshape.Issues{{Path: "/", Code: restshape.CodeTooShort, Message: i18n.T(restshape.CodeTooShort, nil)}}
		}
		return nil
	})
}

// MaxLen requires string or sequence values to hold at most n elements.
func (ad AnyAdapter) MaxLen(n int) AnyAdapter {
	return ad.check(func(v any) error {
		if l, ok := lengthOf(v); ok && l > n {
			return restshape.Issues{{Path: "/", Code: restshape.CodeTooLong, Message: i18n.T(restshape.CodeTooLong, nil)}}
		}
		return nil
	})
}

// Check appends a custom post-parse validation to the adapter.
func (ad AnyAdapter) Check(fn func(any) error) AnyAdapter { return ad.check(fn) }

func (ad AnyAdapter) check(fn func(any) error) AnyAdapter {
	prevParse := ad.parse
	prevValidate := ad.validateValue
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if prevParse != nil {
			val, err := prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
			v = val
		}
		if err := fn(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		return fn(v)
	}
	return out
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []any:
		return len(t), true
	case []string:
		return len(t), true
	}
	return 0, false
}
