package resource

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
	"github.com/restshape/restshape/i18n"
)

// Timestamp is an integer field set to the current server timestamp in
// epoch milliseconds when no value is provided.
func Timestamp() dsl.AnyAdapter {
	return dsl.IntOf().DefaultFunc(func() any { return time.Now().UnixMilli() })
}

// TimestampMissing is Timestamp without auto-now: an absent value yields the
// configured missing default unchanged (nil for "null").
func TimestampMissing(missing any) dsl.AnyAdapter {
	return dsl.IntOf().DefaultFunc(func() any { return missing })
}

// URL is a string field holding a URL of at most 2048 characters.
// Surrounding whitespace is stripped before validation.
func URL() dsl.AnyAdapter {
	return dsl.StringOf().
		Prepare(stripWhitespace).
		Check(urlCheck).
		MinLen(1).
		MaxLen(2048)
}

func stripWhitespace(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

func urlCheck(v any) error {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidFormat, Message: "Must be a URL", Cause: err}}
	}
	return nil
}

// AnyField passes values through untouched: no coercion, no validation.
func AnyField() dsl.AnyAdapter { return dsl.AnyOf() }

// HeaderField wraps a field whose value originates from an HTTP header.
// Raw byte values are decoded as UTF-8 text before the inner adapter runs;
// absent values are dropped.
func HeaderField(inner dsl.AnyAdapter) dsl.AnyAdapter {
	return dsl.Adapter(func(ctx context.Context, v any) (any, error) {
		v, err := decodeHeader(v)
		if err != nil {
			return nil, err
		}
		return inner.Parse(ctx, v)
	})
}

func decodeHeader(v any) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return v, nil
	}
	if !utf8.Valid(b) {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidFormat, Message: "Headers should be UTF-8 encoded"}}
	}
	return string(b), nil
}

// QueryField wraps a field whose value originates from a querystring.
// Textual values are run through the native-value guesser before the inner
// adapter validates the result; absent values are dropped.
func QueryField(inner dsl.AnyAdapter) dsl.AnyAdapter {
	return dsl.Adapter(func(ctx context.Context, v any) (any, error) {
		if s, ok := v.(string); ok {
			v = restshape.NativeValue(s)
		}
		return inner.Parse(ctx, v)
	})
}

const fieldListMsg = "The value should be a list of comma separated attributes"

// FieldList is a string field representing a list of attributes: a textual
// value is split on commas, and every element must be a string.
func FieldList() dsl.AnyAdapter {
	seq := dsl.Array(dsl.StringOf())
	return dsl.Adapter(func(ctx context.Context, v any) (any, error) {
		if s, ok := v.(string); ok {
			parts := strings.Split(s, ",")
			lst := make([]any, 0, len(parts))
			for _, p := range parts {
				lst = append(lst, p)
			}
			v = lst
		}
		out, err := seq.Parse(ctx, v)
		if err != nil {
			if _, ok := v.([]any); !ok {
				return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: fieldListMsg}}
			}
			return nil, err
		}
		return out, nil
	})
}

var quotedIntRe = regexp.MustCompile(`^"([0-9]+)"$`)

const quotedIntMsg = "The value should be integer between double quotes"

// HeaderQuotedInteger parses precondition headers carrying an integer between
// double quotes (quoted ETags). A literal * is accepted and returned
// unchanged as the wildcard.
func HeaderQuotedInteger() dsl.AnyAdapter {
	return dsl.Adapter(func(ctx context.Context, v any) (any, error) {
		v, err := decodeHeader(v)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected string"}}
		}
		if s == "*" {
			return s, nil
		}
		m := quotedIntRe.FindStringSubmatch(s)
		if m == nil {
			return nil, restshape.Issues{{Path: "/", Code: restshape.CodePattern, Message: quotedIntMsg}}
		}
		i64, perr := strconv.ParseInt(m[1], 10, 64)
		if perr != nil {
			return nil, restshape.Issues{{Path: "/", Code: restshape.CodePattern, Message: quotedIntMsg, Cause: perr}}
		}
		return i64, nil
	})
}
