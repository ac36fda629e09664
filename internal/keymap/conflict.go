package keymap

import "github.com/dshills/keyforge/internal/key"

// Conflict reports that a key is already held by another action in the
// same context. It is a transient report value, never persisted.
type Conflict struct {
	Context Context
	Key     key.Token
	Action  Action
	Label   string
}

// DetectConflicts returns one Conflict per action, other than exclude,
// whose merged active keys contain exactly tok. Chord tokens match by
// full string equality, never by prefix. Contexts are checked in
// isolation; callers wanting cross-context reports call per context.
func DetectConflicts(defs *DefaultSet, ov Overrides, ctx Context, tok key.Token, exclude Action) []Conflict {
	if tok.IsZero() {
		return nil
	}
	var out []Conflict
	for _, mb := range ComputeMerged(defs, ov, ctx) {
		if mb.Action == exclude {
			continue
		}
		if containsToken(mb.ActiveKeys, tok) {
			out = append(out, Conflict{
				Context: ctx,
				Key:     tok,
				Action:  mb.Action,
				Label:   mb.Label,
			})
		}
	}
	return out
}

// Report is the full verdict on a candidate token: the hard reserved
// block, the terminal advisory, and any same-context action conflicts.
type Report struct {
	Token          key.Token
	Reserved       bool
	ReservedReason string
	Terminal       bool
	TerminalNote   string
	Conflicts      []Conflict
}

// Blocked reports whether confirmation must be refused. Only the
// reserved set blocks; everything else is advisory.
func (r Report) Blocked() bool {
	return r.Reserved
}

// Clean reports whether there is nothing to warn about.
func (r Report) Clean() bool {
	return !r.Reserved && !r.Terminal && len(r.Conflicts) == 0
}

// Check evaluates a candidate token against one context's merged
// bindings.
func Check(defs *DefaultSet, ov Overrides, ctx Context, tok key.Token, exclude Action) Report {
	r := Report{Token: tok}
	if tok.IsZero() {
		return r
	}
	if reason, ok := reservedReason(tok); ok {
		r.Reserved = true
		r.ReservedReason = reason
	}
	if note := TerminalConflictNote(tok); note != "" {
		r.Terminal = true
		r.TerminalNote = note
	}
	r.Conflicts = DetectConflicts(defs, ov, ctx, tok, exclude)
	return r
}
