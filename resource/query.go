package resource

import (
	"context"
	"strings"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
	"github.com/restshape/restshape/i18n"
)

// FilterQuerySchema validates declared querystring fields, then guesses the
// type of every remaining raw key (field filters) and merges it in.
//
// e.g. ?exclude_id=a,b&deleted=true -> {"exclude_id": ["a", "b"], "deleted": true}
type FilterQuerySchema struct {
	inner *dsl.ObjectSchema
}

var _ restshape.Schema[map[string]any] = (*FilterQuerySchema)(nil)

// QuerySchema returns the generic querystring schema: no declared fields,
// every key guessed.
func QuerySchema() *FilterQuerySchema {
	return &FilterQuerySchema{inner: queryBuilder().Build()}
}

// CollectionQuerySchema declares the paging/sorting/filtering fields used
// with collections.
func CollectionQuerySchema() *FilterQuerySchema {
	return &FilterQuerySchema{inner: collectionQueryBuilder().Build()}
}

// RecordGetQuerySchema declares the _fields selection used with GET record
// requests.
func RecordGetQuerySchema() *FilterQuerySchema {
	return &FilterQuerySchema{inner: queryBuilder().Field("_fields", FieldList()).Build()}
}

// CollectionGetQuerySchema is CollectionQuerySchema plus _fields.
func CollectionGetQuerySchema() *FilterQuerySchema {
	return &FilterQuerySchema{inner: collectionQueryBuilder().Field("_fields", FieldList()).Build()}
}

func queryBuilder() *dsl.ObjectBuilder {
	return dsl.Object().UnknownIgnore()
}

func collectionQueryBuilder() *dsl.ObjectBuilder {
	return queryBuilder().
		Field("_limit", QueryField(dsl.IntOf())).
		Field("_sort", FieldList()).
		Field("_token", QueryField(dsl.StringOf())).
		Field("_since", QueryField(dsl.IntOf())).
		Field("_to", QueryField(dsl.IntOf())).
		Field("_before", QueryField(dsl.IntOf())).
		Field("id", QueryField(dsl.StringOf())).
		Field("last_modified", QueryField(dsl.IntOf())).Optional()
}

func (q *FilterQuerySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected mapping"}}
	}
	declared, err := q.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}

	// Guess field filters from the raw input. in_ and exclude_ filters carry
	// comma-separated lists whose elements are native-valued independently.
	values := make(map[string]any, len(src))
	for k, raw := range src {
		s, ok := raw.(string)
		if !ok {
			values[k] = raw
			continue
		}
		if strings.HasPrefix(k, "in_") || strings.HasPrefix(k, "exclude_") {
			parts := strings.Split(s, ",")
			lst := make([]any, 0, len(parts))
			for _, p := range parts {
				lst = append(lst, restshape.NativeValue(p))
			}
			values[k] = lst
			continue
		}
		values[k] = restshape.NativeValue(s)
	}

	// Declared-field values take precedence on key collision.
	for k, dv := range declared {
		values[k] = dv
	}
	return values, nil
}

func (q *FilterQuerySchema) TypeCheck(ctx context.Context, v any) error {
	return q.inner.TypeCheck(ctx, v)
}

func (q *FilterQuerySchema) RuleCheck(ctx context.Context, v any) error {
	return q.inner.RuleCheck(ctx, v)
}

func (q *FilterQuerySchema) Validate(ctx context.Context, v any) error {
	return q.inner.Validate(ctx, v)
}

func (q *FilterQuerySchema) ValidateValue(ctx context.Context, v map[string]any) error {
	return q.inner.ValidateValue(ctx, v)
}
