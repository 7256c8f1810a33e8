package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/i18n"
)

// String returns the minimal string schema implementation.
func String() restshape.Schema[string] { return stringSchema{} }

// Bool returns the minimal bool schema implementation.
func Bool() restshape.Schema[bool] { return boolSchema{} }

// Int returns the integer schema. It accepts Go integers, integral
// json.Number and float64 values, and decimal strings, normalizing to int64.
func Int() restshape.Schema[int64] { return intSchema{} }

// Float returns the float schema, normalizing to float64.
func Float() restshape.Schema[float64] { return floatSchema{} }

// StringOf returns a string field adapter.
func StringOf() AnyAdapter { return FromSchema[string](stringSchema{}) }

// BoolOf returns a bool field adapter.
func BoolOf() AnyAdapter { return FromSchema[bool](boolSchema{}) }

// IntOf returns an integer field adapter.
func IntOf() AnyAdapter { return FromSchema[int64](intSchema{}) }

// FloatOf returns a float field adapter.
func FloatOf() AnyAdapter { return FromSchema[float64](floatSchema{}) }

// AnyOf returns a type-agnostic pass-through adapter: no coercion, no
// validation. It never fails.
func AnyOf() AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return v, nil },
	}
}

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected string"}}
	}
	return s, nil
}

func (stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected string"}}
	}
	return nil
}

func (stringSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (stringSchema) Validate(ctx context.Context, v any) error {
	return (stringSchema{}).TypeCheck(ctx, v)
}

func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected boolean"}}
	}
	return b, nil
}

func (boolSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(bool); !ok {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected boolean"}}
	}
	return nil
}

func (boolSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (boolSchema) Validate(ctx context.Context, v any) error { return (boolSchema{}).TypeCheck(ctx, v) }

func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }

type intSchema struct{}

func intIssue(cause error) restshape.Issues {
	return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected integer", Cause: cause}}
}

func (intSchema) Parse(ctx context.Context, v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			return 0, intIssue(err)
		}
		return i64, nil
	case float64:
		if math.Trunc(t) != t {
			return 0, intIssue(nil)
		}
		return int64(t), nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, intIssue(err)
		}
		return i64, nil
	default:
		return 0, intIssue(nil)
	}
}

func (intSchema) TypeCheck(ctx context.Context, v any) error {
	_, err := (intSchema{}).Parse(ctx, v)
	return err
}

func (intSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (intSchema) Validate(ctx context.Context, v any) error { return (intSchema{}).TypeCheck(ctx, v) }

func (intSchema) ValidateValue(ctx context.Context, v int64) error { return nil }

type floatSchema struct{}

func (floatSchema) Parse(ctx context.Context, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected number", Cause: err}}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected number", Cause: err}}
		}
		return f, nil
	default:
		return 0, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected number"}}
	}
}

func (floatSchema) TypeCheck(ctx context.Context, v any) error {
	_, err := (floatSchema{}).Parse(ctx, v)
	return err
}

func (floatSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (floatSchema) Validate(ctx context.Context, v any) error { return (floatSchema{}).TypeCheck(ctx, v) }

func (floatSchema) ValidateValue(ctx context.Context, v float64) error { return nil }
