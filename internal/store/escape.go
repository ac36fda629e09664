package store

import "strings"

// escapePath escapes gjson/sjson path metacharacters in a single path
// component. Key tokens can contain punctuation base keys ("ctrl+.",
// "shift+*") that would otherwise read as path syntax.
func escapePath(s string) string {
	if !strings.ContainsAny(s, `.|#@*?\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '.', '|', '#', '@', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
