package resource_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
	"github.com/restshape/restshape/resource"
)

func issuesOf(t *testing.T, err error) restshape.Issues {
	t.Helper()
	iss, ok := restshape.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss
}

func TestHeaderQuotedInteger(t *testing.T) {
	ctx := context.Background()
	ad := resource.HeaderQuotedInteger()

	v, err := ad.Parse(ctx, `"42"`)
	if err != nil || v != int64(42) {
		t.Fatalf(`"42" should parse to int64(42), got %#v %v`, v, err)
	}

	v, err = ad.Parse(ctx, "*")
	if err != nil || v != "*" {
		t.Fatalf("* should pass through as wildcard, got %#v %v", v, err)
	}

	_, err = ad.Parse(ctx, "42")
	iss := issuesOf(t, err)
	if iss[0].Code != restshape.CodePattern {
		t.Fatalf("unquoted integer must be rejected, got %v", iss)
	}
	if iss[0].Message != "The value should be integer between double quotes" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}

	_, err = ad.Parse(ctx, `"abc"`)
	if iss := issuesOf(t, err); iss[0].Code != restshape.CodePattern {
		t.Fatalf("quoted non-integer must be rejected, got %v", iss)
	}
}

func TestHeaderQuotedInteger_ByteValues(t *testing.T) {
	ctx := context.Background()
	ad := resource.HeaderQuotedInteger()

	v, err := ad.Parse(ctx, []byte(`"7"`))
	if err != nil || v != int64(7) {
		t.Fatalf("byte headers should decode as UTF-8 first, got %#v %v", v, err)
	}

	_, err = ad.Parse(ctx, []byte{0xff, 0xfe})
	iss := issuesOf(t, err)
	if iss[0].Code != restshape.CodeInvalidFormat {
		t.Fatalf("invalid UTF-8 must fail, got %v", iss)
	}
}

func TestHeaderField_DecodesBytes(t *testing.T) {
	ctx := context.Background()
	ad := resource.HeaderField(dsl.StringOf().OneOf("full", "light", "diff"))

	v, err := ad.Parse(ctx, []byte("diff"))
	if err != nil || v != "diff" {
		t.Fatalf("expected diff, got %#v %v", v, err)
	}

	_, err = ad.Parse(ctx, "bogus")
	if iss := issuesOf(t, err); iss[0].Code != restshape.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum, got %v", iss)
	}
}

func TestQueryField_PromotesNativeValues(t *testing.T) {
	ctx := context.Background()
	intAd := resource.QueryField(dsl.IntOf())

	v, err := intAd.Parse(ctx, "40")
	if err != nil || v != int64(40) {
		t.Fatalf("expected int64(40), got %#v %v", v, err)
	}

	_, err = intAd.Parse(ctx, "abc")
	if iss := issuesOf(t, err); iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", iss)
	}
}

func TestFieldList(t *testing.T) {
	ctx := context.Background()
	ad := resource.FieldList()

	v, err := ad.Parse(ctx, "field1,field2,field3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"field1", "field2", "field3"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("expected %#v, got %#v", want, v)
	}

	v, err = ad.Parse(ctx, []any{"a", "b"})
	if err != nil || !reflect.DeepEqual(v, []any{"a", "b"}) {
		t.Fatalf("list input should pass through validated, got %#v %v", v, err)
	}

	_, err = ad.Parse(ctx, 5)
	iss := issuesOf(t, err)
	if iss[0].Code != restshape.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", iss)
	}
	if iss[0].Message != "The value should be a list of comma separated attributes" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}

	_, err = ad.Parse(ctx, []any{"a", 5})
	if iss := issuesOf(t, err); iss[0].Path != "/1" {
		t.Fatalf("non-string element should fail with its index, got %v", iss)
	}
}

func TestTimestamp_AutoNow(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().Field("last_modified", resource.Timestamp()).Build()

	before := time.Now().UnixMilli()
	out, err := s.Parse(ctx, map[string]any{})
	after := time.Now().UnixMilli()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := out["last_modified"].(int64)
	if !ok {
		t.Fatalf("expected int64 timestamp, got %#v", out["last_modified"])
	}
	if ts < before || ts > after {
		t.Fatalf("timestamp %d outside [%d, %d]", ts, before, after)
	}
}

func TestTimestamp_ProvidedValueWins(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().Field("last_modified", resource.Timestamp()).Build()

	out, err := s.Parse(ctx, map[string]any{"last_modified": int64(1234)})
	if err != nil || out["last_modified"] != int64(1234) {
		t.Fatalf("provided timestamp must win, got %#v %v", out, err)
	}
}

func TestTimestampMissing_Override(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().Field("deleted_at", resource.TimestampMissing(nil)).Build()

	out, err := s.Parse(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, present := out["deleted_at"]
	if !present || v != nil {
		t.Fatalf("missing override should surface as explicit null, got %#v", out)
	}
}

func TestURL(t *testing.T) {
	ctx := context.Background()
	ad := resource.URL()

	v, err := ad.Parse(ctx, "  https://example.com/path?q=1  ")
	if err != nil || v != "https://example.com/path?q=1" {
		t.Fatalf("whitespace should be stripped, got %#v %v", v, err)
	}

	_, err = ad.Parse(ctx, "not a url")
	iss := issuesOf(t, err)
	if iss[0].Code != restshape.CodeInvalidFormat || iss[0].Message != "Must be a URL" {
		t.Fatalf("expected Must be a URL, got %v", iss)
	}

	_, err = ad.Parse(ctx, "/relative/only")
	if iss := issuesOf(t, err); iss[0].Code != restshape.CodeInvalidFormat {
		t.Fatalf("scheme-less URL must be rejected, got %v", iss)
	}
}

func TestAnyField_NeverFails(t *testing.T) {
	ctx := context.Background()
	ad := resource.AnyField()
	for _, in := range []any{nil, "x", 42, []any{1}, map[string]any{"k": "v"}} {
		if _, err := ad.Parse(ctx, in); err != nil {
			t.Fatalf("AnyField must accept %#v, got %v", in, err)
		}
	}
}
