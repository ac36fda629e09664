// Package key models keyboard input for Keyforge: modifier flags, named
// keys, key events, and the canonical string tokens bindings are keyed by.
//
// A token is zero or more modifier names in the fixed order
// alt, ctrl, meta, shift joined by "+", followed by a lowercase base key
// name ("ctrl+shift+k", "alt+up", "space"). A chord is two such tokens
// joined by a single space ("g g"). The empty token means "nothing
// bindable" and is produced for bare modifier presses.
package key

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a canonical key combination, possibly a two-key chord.
type Token string

// IsZero reports whether the token is empty (not bindable).
func (t Token) IsZero() bool {
	return t == ""
}

// IsChord reports whether the token is a two-key chord.
func (t Token) IsChord() bool {
	return strings.ContainsRune(string(t), ' ')
}

// Split returns the chord halves. For a single-key token the second
// return is empty and chord is false.
func (t Token) Split() (first, second Token, chord bool) {
	i := strings.IndexByte(string(t), ' ')
	if i < 0 {
		return t, "", false
	}
	return t[:i], t[i+1:], true
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return string(t)
}

// Display returns a human-oriented rendering: modifier names and known
// key names title-cased, single-rune bases upper-cased ("Ctrl+Shift+K",
// "G G", "Alt+Up"). The canonical form is unchanged by this.
func (t Token) Display() string {
	if t.IsZero() {
		return ""
	}
	parts := strings.Split(string(t), " ")
	for i, p := range parts {
		parts[i] = displayOne(p)
	}
	return strings.Join(parts, " ")
}

func displayOne(tok string) string {
	segs := strings.Split(tok, "+")
	// A trailing empty segment means the base key is "+" itself.
	if n := len(segs); n >= 2 && segs[n-1] == "" && segs[n-2] == "" {
		segs = append(segs[:n-2], "+")
	}
	for i, s := range segs {
		switch {
		case s == "":
		case i < len(segs)-1:
			segs[i] = titleCase(s)
		case utf8.RuneCountInString(s) == 1:
			segs[i] = strings.ToUpper(s)
		default:
			segs[i] = titleCase(s)
		}
	}
	return strings.Join(segs, "+")
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Chord joins two single-key tokens into a chord token.
func Chord(first, second Token) Token {
	if first.IsZero() {
		return second
	}
	if second.IsZero() {
		return first
	}
	return first + " " + second
}
