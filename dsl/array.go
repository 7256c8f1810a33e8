package dsl

import (
	"context"
	"strconv"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/i18n"
)

// Array returns an ordered sequence schema with the given element adapter.
// Element order is preserved; element failures are collected with /<index>
// paths.
func Array(elem AnyAdapter) *ArraySchema { return &ArraySchema{elem: elem} }

// ArrayOf adapts Array(elem) to an AnyAdapter for use as an object field.
func ArrayOf(elem AnyAdapter) AnyAdapter { return FromSchema[[]any](Array(elem)) }

type ArraySchema struct {
	elem AnyAdapter
}

var _ restshape.Schema[[]any] = (*ArraySchema)(nil)

func (a *ArraySchema) Parse(ctx context.Context, v any) ([]any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected sequence"}}
	}
	res := make([]any, 0, len(src))
	var iss restshape.Issues
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			base := "/" + strconv.Itoa(i)
			iss = restshape.AppendIssues(iss, restshape.RebaseIssues(base, issuesFromErr(base, err))...)
			if restshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		res = append(res, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return res, nil
}

func (a *ArraySchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.([]any); !ok {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected sequence"}}
	}
	return nil
}

func (a *ArraySchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (a *ArraySchema) Validate(ctx context.Context, v any) error { return a.TypeCheck(ctx, v) }

func (a *ArraySchema) ValidateValue(ctx context.Context, v []any) error {
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			base := "/" + strconv.Itoa(i)
			return restshape.RebaseIssues(base, issuesFromErr(base, err))
		}
	}
	return nil
}
