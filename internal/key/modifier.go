package key

import "strings"

// Modifier is a bitmask of modifier keys held during a key event.
type Modifier uint8

// Modifier flags. Declaration order is the canonical token order:
// alt, ctrl, meta, shift.
const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModMeta
	ModShift

	ModNone Modifier = 0
)

// canonicalModifiers lists every modifier in canonical token order.
var canonicalModifiers = []struct {
	mod  Modifier
	name string
}{
	{ModAlt, "alt"},
	{ModCtrl, "ctrl"},
	{ModMeta, "meta"},
	{ModShift, "shift"},
}

// Has reports whether all bits in mod are set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// With returns m with the given bits set.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with the given bits cleared.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsZero reports whether no modifier is set.
func (m Modifier) IsZero() bool {
	return m == ModNone
}

// String returns the canonical token fragment for the set modifiers,
// e.g. "ctrl+shift". Empty when no modifier is set.
func (m Modifier) String() string {
	if m.IsZero() {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, cm := range canonicalModifiers {
		if m.Has(cm.mod) {
			parts = append(parts, cm.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNames maps spelled-out modifier names and their common aliases
// to flags. Keys are lowercase.
var modifierNames = map[string]Modifier{
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
	"shift":   ModShift,
}

// ModifierFromName resolves a modifier name or alias, case-insensitively.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNames[strings.ToLower(name)]
	return m, ok
}

// isBareModifierName reports whether name is itself the base-key name of a
// modifier press. Bare modifier presses are never bindable.
func isBareModifierName(name string) bool {
	switch name {
	case "alt", "control", "ctrl", "shift", "meta":
		return true
	}
	return false
}
