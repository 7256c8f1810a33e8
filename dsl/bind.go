package dsl

// BindContext is the per-request context handed to deferred-field resolvers.
// Recognized keys are "data", "permissions", "header", "querystring", and
// "body"; values are pre-built schemas or adapters.
type BindContext map[string]any

// Resolver resolves a deferred field from the binding context. Returning
// ok=false keeps the field deferred so a later Bind pass can still supply it.
type Resolver func(kw BindContext) (AnyAdapter, bool)

// AfterBindHook runs on the bound clone after the deferred fields were
// resolved, e.g. to inject default sub-schemas.
type AfterBindHook func(o *ObjectSchema, kw BindContext)

// Bind resolves the schema's deferred fields against kw and returns a new,
// independently owned schema graph. The receiver is never mutated: schemas
// defined once at process start can be shared across concurrent requests, and
// each request binds its own clone. Binding an already-bound clone again is
// allowed; resolvers that stayed deferred get a second chance.
func (o *ObjectSchema) Bind(kw BindContext) *ObjectSchema {
	c := o.clone()
	for name, r := range o.deferred {
		if ad, ok := r(kw); ok {
			c.fields[name] = ad
			delete(c.deferred, name)
		}
	}
	c.sortedKeys = fieldKeys(c.fields)
	for _, h := range c.afterBind {
		h(c, kw)
	}
	return c
}

func (o *ObjectSchema) clone() *ObjectSchema {
	fields := make(map[string]AnyAdapter, len(o.fields))
	for k, v := range o.fields {
		fields[k] = v
	}
	deferred := make(map[string]Resolver, len(o.deferred))
	for k, v := range o.deferred {
		deferred[k] = v
	}
	return &ObjectSchema{
		fields:     fields,
		deferred:   deferred,
		policy:     o.policy,
		afterBind:  o.afterBind,
		sortedKeys: o.sortedKeys,
	}
}
