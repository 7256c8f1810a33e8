package dsl

import (
	restshape "github.com/restshape/restshape"
)

type ObjectBuilder struct {
	fields    map[string]AnyAdapter
	deferred  map[string]Resolver
	policy    restshape.UnknownPolicy
	afterBind []AfterBindHook
}

type fieldStep struct {
	b    *ObjectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownRaise).
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		fields:   map[string]AnyAdapter{},
		deferred: map[string]Resolver{},
		policy:   restshape.UnknownRaise,
	}
}

// Field registers a field with its adapter.
func (b *ObjectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *ObjectBuilder {
	f.b.fields[f.name] = f.b.fields[f.name].Required()
	return f.b
}

// Optional marks the field as dropped-when-absent (the default) and returns
// the builder.
func (f *fieldStep) Optional() *ObjectBuilder { return f.b }

// Default sets a default for the current field.
func (f *fieldStep) Default(v any) *ObjectBuilder {
	f.b.fields[f.name] = f.b.fields[f.name].Default(v)
	return f.b
}

func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep { return f.b.Field(name, ad) }

func (f *fieldStep) DeferredField(name string, r Resolver) *ObjectBuilder {
	return f.b.DeferredField(name, r)
}

func (f *fieldStep) UnknownRaise() *ObjectBuilder    { return f.b.UnknownRaise() }
func (f *fieldStep) UnknownIgnore() *ObjectBuilder   { return f.b.UnknownIgnore() }
func (f *fieldStep) UnknownPreserve() *ObjectBuilder { return f.b.UnknownPreserve() }

func (f *fieldStep) AfterBind(fn AfterBindHook) *ObjectBuilder { return f.b.AfterBind(fn) }

func (f *fieldStep) Build() *ObjectSchema { return f.b.Build() }

// DeferredField declares a field whose adapter is resolved only at bind time.
func (b *ObjectBuilder) DeferredField(name string, r Resolver) *ObjectBuilder {
	b.deferred[name] = r
	return b
}

// UnknownRaise rejects unknown keys.
func (b *ObjectBuilder) UnknownRaise() *ObjectBuilder {
	b.policy = restshape.UnknownRaise
	return b
}

// UnknownIgnore drops unknown keys silently.
func (b *ObjectBuilder) UnknownIgnore() *ObjectBuilder {
	b.policy = restshape.UnknownIgnore
	return b
}

// UnknownPreserve passes unknown keys through unchanged.
func (b *ObjectBuilder) UnknownPreserve() *ObjectBuilder {
	b.policy = restshape.UnknownPreserve
	return b
}

// AfterBind registers a hook run on the bound clone once Bind resolved the
// deferred fields.
func (b *ObjectBuilder) AfterBind(fn AfterBindHook) *ObjectBuilder {
	if fn != nil {
		b.afterBind = append(b.afterBind, fn)
	}
	return b
}

// Build returns the schema.
func (b *ObjectBuilder) Build() *ObjectSchema {
	fields := make(map[string]AnyAdapter, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	deferred := make(map[string]Resolver, len(b.deferred))
	for k, v := range b.deferred {
		deferred[k] = v
	}
	return &ObjectSchema{
		fields:     fields,
		deferred:   deferred,
		policy:     b.policy,
		afterBind:  append([]AfterBindHook(nil), b.afterBind...),
		sortedKeys: fieldKeys(fields),
	}
}
