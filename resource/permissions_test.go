package resource_test

import (
	"context"
	"reflect"
	"testing"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/resource"
)

func TestPermissions_ClosedVocabulary(t *testing.T) {
	ctx := context.Background()
	s := resource.Permissions("read", "write")

	out, err := s.Parse(ctx, map[string]any{
		"read":  []any{"fxa:alice"},
		"write": []any{"fxa:bob", "group:admins"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out["write"], []any{"fxa:bob", "group:admins"}) {
		t.Fatalf("unexpected write principals %#v", out["write"])
	}
}

func TestPermissions_ClosedRejectsUnknownName(t *testing.T) {
	ctx := context.Background()
	s := resource.Permissions("read", "write")

	_, err := s.Parse(ctx, map[string]any{"destroy": []any{"fxa:alice"}})
	iss, ok := restshape.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != restshape.CodeInvalidEnum || iss[0].Path != "/destroy" {
		t.Fatalf("expected invalid_enum at /destroy, got %v", iss)
	}
	if iss[0].Message != `"destroy" is not one of read, write` {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
}

func TestPermissions_OpenVocabulary(t *testing.T) {
	ctx := context.Background()
	s := resource.Permissions()

	out, err := s.Parse(ctx, map[string]any{
		"groups:create": []any{"fxa:70a9335eecfe440fa445ba752a750f3d"},
		"anything":      []any{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out["groups:create"], []any{"fxa:70a9335eecfe440fa445ba752a750f3d"}) {
		t.Fatalf("unexpected principals %#v", out["groups:create"])
	}
	if !reflect.DeepEqual(out["anything"], []any{}) {
		t.Fatalf("empty principal lists are valid, got %#v", out["anything"])
	}
}

func TestPermissions_PrincipalsMustBeStrings(t *testing.T) {
	ctx := context.Background()

	_, err := resource.Permissions().Parse(ctx, map[string]any{"read": []any{"ok", 42}})
	iss, ok := restshape.AsIssues(err)
	if !ok || iss[0].Path != "/read/1" || iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type at /read/1, got %v", err)
	}

	_, err = resource.Permissions("read").Parse(ctx, map[string]any{"read": "not a list"})
	iss, ok = restshape.AsIssues(err)
	if !ok || iss[0].Path != "/read" || iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type at /read, got %v", err)
	}
}

func TestPermissions_CollectsAllEntries(t *testing.T) {
	ctx := context.Background()
	s := resource.Permissions()

	_, err := s.Parse(ctx, map[string]any{
		"a": "bad",
		"b": []any{1},
		"c": []any{"fine"},
	})
	iss, ok := restshape.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected both failing entries reported, got %v", err)
	}
	if iss[0].Path != "/a" || iss[1].Path != "/b/0" {
		t.Fatalf("expected deterministic paths, got %v", iss)
	}
}

func TestPermissions_NonMappingInput(t *testing.T) {
	ctx := context.Background()
	_, err := resource.Permissions("read").Parse(ctx, []any{"read"})
	iss, ok := restshape.AsIssues(err)
	if !ok || iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestPermissions_MissingEntriesAllowed(t *testing.T) {
	ctx := context.Background()
	out, err := resource.Permissions("read", "write").Parse(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("permissions are each optional: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("absent permissions must be dropped, got %#v", out)
	}
}
