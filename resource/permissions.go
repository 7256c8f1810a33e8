package resource

import (
	"context"
	"fmt"
	"sort"
	"strings"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
	"github.com/restshape/restshape/i18n"
)

// PermissionsSchema validates a permission mapping: permission names as keys,
// principal lists as values.
//
//	{
//	    "write": ["fxa:af3e077eb9f5444a949ad65aa86e82ff"],
//	    "groups:create": ["fxa:70a9335eecfe440fa445ba752a750f3d"]
//	}
//
// With a known-permission vocabulary the key set is closed: any other key is
// rejected with a message enumerating the valid names. Without one, any
// string key is accepted and each value is validated as a list of principal
// strings.
type PermissionsSchema struct {
	known  []string
	closed *dsl.ObjectSchema // nil in open-vocabulary mode
}

var _ restshape.Schema[map[string]any] = (*PermissionsSchema)(nil)

// Permissions builds a permission schema; known fixes the vocabulary, none
// leaves it open.
func Permissions(known ...string) *PermissionsSchema {
	p := &PermissionsSchema{known: known}
	if len(known) > 0 {
		b := dsl.Object().UnknownRaise()
		for _, perm := range known {
			b.Field(perm, principalList())
		}
		p.closed = b.Build()
	}
	return p
}

// principalList validates an ordered-irrelevant set of principal identifiers.
// A principal failing string validation fails the whole entry.
func principalList() dsl.AnyAdapter { return dsl.ArrayOf(dsl.StringOf()) }

func (p *PermissionsSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected mapping"}}
	}

	// Closed vocabulary: check keys first to produce fancy error messages,
	// then delegate to the structural mapping (raise; every key is known by
	// now, so any other discrepancy is a genuine error).
	if p.closed != nil {
		var iss restshape.Issues
		for _, k := range sortedKeys(m) {
			if !p.isKnown(k) {
				msg := fmt.Sprintf("%q is not one of %s", k, strings.Join(p.known, ", "))
				iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeInvalidEnum, Message: msg})
			}
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return p.closed.Parse(ctx, v)
	}

	// Open vocabulary: validate each value independently as a sequence of
	// principal strings, bypassing the declared-field machinery (it would
	// require an a-priori fixed field set).
	seq := dsl.Array(dsl.StringOf())
	out := make(map[string]any, len(m))
	var iss restshape.Issues
	for _, k := range sortedKeys(m) {
		principals, err := seq.Parse(ctx, m[k])
		if err != nil {
			base := "/" + k
			if i2, ok := restshape.AsIssues(err); ok {
				iss = restshape.AppendIssues(iss, restshape.RebaseIssues(base, i2)...)
			} else {
				iss = restshape.AppendIssues(iss, restshape.Issue{Path: base, Code: restshape.CodeParseError, Message: err.Error(), Cause: err})
			}
			if restshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = principals
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (p *PermissionsSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return restshape.Issues{{Path: "/", Code: restshape.CodeInvalidType, Message: i18n.T(restshape.CodeInvalidType, nil), Hint: "expected mapping"}}
	}
	return nil
}

func (p *PermissionsSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if p.closed == nil {
		return nil
	}
	var iss restshape.Issues
	for _, k := range sortedKeys(m) {
		if !p.isKnown(k) {
			msg := fmt.Sprintf("%q is not one of %s", k, strings.Join(p.known, ", "))
			iss = restshape.AppendIssues(iss, restshape.Issue{Path: "/" + k, Code: restshape.CodeInvalidEnum, Message: msg})
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (p *PermissionsSchema) Validate(ctx context.Context, v any) error {
	if err := p.TypeCheck(ctx, v); err != nil {
		return err
	}
	return p.RuleCheck(ctx, v)
}

func (p *PermissionsSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	_, err := p.Parse(ctx, v)
	return err
}

func (p *PermissionsSchema) isKnown(k string) bool {
	for _, perm := range p.known {
		if perm == k {
			return true
		}
	}
	return false
}

// sortedKeys returns mapping keys in ascending order for deterministic issue
// ordering.
func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
