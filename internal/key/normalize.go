package key

import (
	"strings"
	"unicode"
)

// Normalize converts an event into its canonical token, or "" when the
// event is not bindable (bare modifier press, unknown key).
//
// Modifiers always appear in the fixed order alt, ctrl, meta, shift no
// matter the order they were held in, so two events for the same logical
// combination produce identical tokens. Terminals encode Shift into
// printable runes, so an uppercase rune is folded to shift plus its
// lowercase form.
func Normalize(ev Event) Token {
	mod := ev.Mod
	var base string

	switch {
	case ev.Key == KeyRune:
		r := ev.Rune
		if r == 0 {
			return ""
		}
		if r == ' ' {
			base = keyNames[KeySpace]
			break
		}
		if unicode.IsUpper(r) {
			mod = mod.With(ModShift)
			r = unicode.ToLower(r)
		}
		base = string(r)
	default:
		base = keyNames[ev.Key]
	}

	return buildToken(mod, base)
}

// NormalizeRaw builds a token from a raw key name plus modifier flags,
// the shape keyboard events arrive in before terminal decoding. The name
// is lowercased; bare modifier names yield ""; space and arrow names map
// to their short forms; anything else is taken verbatim.
func NormalizeRaw(name string, mod Modifier) Token {
	if name == "" {
		return ""
	}
	lower := name
	if name != " " {
		lower = strings.ToLower(name)
	}
	if isBareModifierName(lower) {
		return ""
	}
	if k, ok := KeyFromName(lower); ok {
		return buildToken(mod, keyNames[k])
	}
	return buildToken(mod, lower)
}

// buildToken assembles modifiers in canonical order ahead of the base key.
func buildToken(mod Modifier, base string) Token {
	if base == "" {
		return ""
	}
	prefix := mod.String()
	if prefix == "" {
		return Token(base)
	}
	return Token(prefix + "+" + base)
}
