package dsl_test

import (
	"context"
	"testing"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
)

func TestArray_ParsePreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.StringOf())
	out, err := s.Parse(ctx, []any{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 || out[0] != "a" || out[2] != "c" {
		t.Fatalf("order must be preserved, got %#v", out)
	}
}

func TestArray_CollectsIndexedIssues(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.StringOf())
	_, err := s.Parse(ctx, []any{"a", 1, true})
	iss, ok := restshape.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two collected issues, got %v", err)
	}
	if iss[0].Path != "/1" || iss[1].Path != "/2" {
		t.Fatalf("expected indexed paths, got %v", iss)
	}
}

func TestArray_NonSequenceInput(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.StringOf())
	_, err := s.Parse(ctx, "abc")
	iss, ok := restshape.AsIssues(err)
	if !ok || iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestArray_FailFast(t *testing.T) {
	ctx := restshape.WithFailFast(context.Background(), true)
	s := dsl.Array(dsl.StringOf())
	_, err := s.Parse(ctx, []any{1, 2, 3})
	iss, ok := restshape.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("fail-fast should stop at the first element, got %v", err)
	}
}

func TestArray_NestedObjectElements(t *testing.T) {
	ctx := context.Background()
	elem := dsl.Object().Field("id", dsl.StringOf()).Required().Build()
	s := dsl.Array(dsl.FromSchema[map[string]any](elem))
	_, err := s.Parse(ctx, []any{
		map[string]any{"id": "a"},
		map[string]any{},
	})
	iss, ok := restshape.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/1/id" {
		t.Fatalf("expected /1/id, got %v", err)
	}
}
