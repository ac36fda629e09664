package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key spec")
	ErrInvalidSpec = errors.New("invalid key spec")
)

// Parse converts a user-typed key spec into a canonical token. Accepted
// forms: "ctrl+s", "Ctrl+Shift+K", "alt+up", "space", "g g" (chord),
// "ctrl++" (the "+" key). Modifier order in the input is irrelevant; the
// result is always canonical. A single uppercase letter implies shift.
func Parse(spec string) (Token, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", ErrEmptySpec
	}
	fields := strings.Fields(spec)
	switch len(fields) {
	case 1:
		return parseOne(fields[0])
	case 2:
		first, err := parseOne(fields[0])
		if err != nil {
			return "", err
		}
		second, err := parseOne(fields[1])
		if err != nil {
			return "", err
		}
		return Chord(first, second), nil
	default:
		return "", fmt.Errorf("%w: %q has more than two chord keys", ErrInvalidSpec, spec)
	}
}

// MustParse is Parse for compile-time-known specs; it panics on error.
func MustParse(spec string) Token {
	t, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParse(%q): %v", spec, err))
	}
	return t
}

func parseOne(spec string) (Token, error) {
	parts := strings.Split(spec, "+")
	// A literal "+" base key splits into empty trailing parts; repair it.
	if n := len(parts); n >= 2 && parts[n-1] == "" && parts[n-2] == "" {
		parts = append(parts[:n-2], "+")
	}

	var mod Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := ModifierFromName(p)
		if !ok {
			return "", fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mod = mod.With(m)
	}

	base := parts[len(parts)-1]
	if base == "" {
		return "", fmt.Errorf("%w: missing base key in %q", ErrInvalidSpec, spec)
	}
	if isBareModifierName(strings.ToLower(base)) {
		return "", fmt.Errorf("%w: %q is a modifier, not a base key", ErrInvalidSpec, base)
	}
	if k, ok := KeyFromName(base); ok {
		return buildToken(mod, keyNames[k]), nil
	}
	if r, size := utf8.DecodeRuneInString(base); size == len(base) && r != utf8.RuneError {
		if unicode.IsUpper(r) {
			mod = mod.With(ModShift)
			r = unicode.ToLower(r)
		}
		return buildToken(mod, string(r)), nil
	}
	return "", fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, base, spec)
}
