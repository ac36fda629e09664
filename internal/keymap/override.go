package keymap

import "github.com/dshills/keyforge/internal/key"

// Override is one user decision about a key: route it to an action, or
// explicitly unbind it from its default owner.
type Override struct {
	Action Action
	Unbind bool
}

// ContextOverrides is a context's sparse flat map from token to override.
// One entry per token: assigning a key that was already overridden
// replaces the previous decision ("last override wins").
type ContextOverrides map[key.Token]Override

// Overrides is the whole user-mutable state, keyed by context.
type Overrides map[Context]ContextOverrides

// Clone returns a deep copy.
func (o Overrides) Clone() Overrides {
	if o == nil {
		return nil
	}
	out := make(Overrides, len(o))
	for ctx, co := range o {
		cc := make(ContextOverrides, len(co))
		for tok, ov := range co {
			cc[tok] = ov
		}
		out[ctx] = cc
	}
	return out
}

// Context returns the override map for a context, which may be nil.
func (o Overrides) Context(ctx Context) ContextOverrides {
	if o == nil {
		return nil
	}
	return o[ctx]
}

// Set routes tok to act in ctx, replacing any previous override for tok.
func (o Overrides) Set(ctx Context, tok key.Token, act Action) {
	co := o[ctx]
	if co == nil {
		co = make(ContextOverrides)
		o[ctx] = co
	}
	co[tok] = Override{Action: act}
}

// SetUnbound marks tok explicitly unbound in ctx.
func (o Overrides) SetUnbound(ctx Context, tok key.Token) {
	co := o[ctx]
	if co == nil {
		co = make(ContextOverrides)
		o[ctx] = co
	}
	co[tok] = Override{Unbind: true}
}

// Remove drops the override for tok in ctx, restoring default behavior
// for that key. Removing a missing entry is a no-op.
func (o Overrides) Remove(ctx Context, tok key.Token) {
	if co := o[ctx]; co != nil {
		delete(co, tok)
		if len(co) == 0 {
			delete(o, ctx)
		}
	}
}

// ClearContext drops every override in ctx.
func (o Overrides) ClearContext(ctx Context) {
	delete(o, ctx)
}

// ClearAll drops every override in every context.
func (o Overrides) ClearAll() {
	for ctx := range o {
		delete(o, ctx)
	}
}

// Empty reports whether no overrides exist anywhere.
func (o Overrides) Empty() bool {
	for _, co := range o {
		if len(co) > 0 {
			return false
		}
	}
	return true
}
