package keymap

import (
	"sort"

	"github.com/dshills/keyforge/internal/key"
)

// MergedBinding is the display-ready union of defaults and overrides for
// one action. It is derived on demand and never stored.
//
// ActiveKeys is what the binding answers to right now: the default keys
// minus those explicitly unbound, minus those reassigned to another
// action, plus the added keys. A default key reassigned elsewhere leaves
// ActiveKeys without appearing in UnboundKeys; the flat override map has
// one owner per key and the new owner's view shows it under AddedKeys.
type MergedBinding struct {
	Context     Context
	Action      Action
	Label       string
	Description string
	Group       string

	DefaultKeys []key.Token
	UnboundKeys []key.Token
	AddedKeys   []key.Token
	ActiveKeys  []key.Token
	IsModified  bool
}

// ComputeMerged derives the merged bindings for one context, in action
// registration order. It is a pure function of its inputs; callers
// re-invoke it after every override mutation.
func ComputeMerged(defs *DefaultSet, ov Overrides, ctx Context) []MergedBinding {
	infos := defs.Actions(ctx)
	if len(infos) == 0 {
		return nil
	}
	co := ov.Context(ctx)

	out := make([]MergedBinding, 0, len(infos))
	for _, info := range infos {
		mb := MergedBinding{
			Context:     ctx,
			Action:      info.Action,
			Label:       info.Label,
			Description: info.Description,
			Group:       info.Group,
			DefaultKeys: defs.Keys(ctx, info.Action),
		}

		for _, tok := range mb.DefaultKeys {
			o, ok := co[tok]
			switch {
			case !ok:
				mb.ActiveKeys = append(mb.ActiveKeys, tok)
			case o.Unbind:
				mb.UnboundKeys = append(mb.UnboundKeys, tok)
			case o.Action == info.Action:
				// Redundant self-assignment; the key stays active and
				// the binding does not count as modified by it.
				mb.ActiveKeys = append(mb.ActiveKeys, tok)
			default:
				// Reassigned to another action; it shows up there.
			}
		}

		for tok, o := range co {
			if o.Unbind || o.Action != info.Action {
				continue
			}
			if containsToken(mb.DefaultKeys, tok) {
				continue
			}
			mb.AddedKeys = append(mb.AddedKeys, tok)
		}
		sort.Slice(mb.AddedKeys, func(i, j int) bool {
			return mb.AddedKeys[i] < mb.AddedKeys[j]
		})
		mb.ActiveKeys = append(mb.ActiveKeys, mb.AddedKeys...)

		mb.IsModified = len(mb.UnboundKeys) > 0 || len(mb.AddedKeys) > 0
		out = append(out, mb)
	}
	return out
}

// MergedFor derives the merged binding for a single action.
func MergedFor(defs *DefaultSet, ov Overrides, ctx Context, a Action) (MergedBinding, bool) {
	for _, mb := range ComputeMerged(defs, ov, ctx) {
		if mb.Action == a {
			return mb, true
		}
	}
	return MergedBinding{}, false
}

func containsToken(list []key.Token, tok key.Token) bool {
	for _, t := range list {
		if t == tok {
			return true
		}
	}
	return false
}
