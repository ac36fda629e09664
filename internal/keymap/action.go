// Package keymap holds the binding model: the contexts and actions a host
// application exposes, its immutable default keymap, user overrides, the
// merged view the UI renders, and conflict detection over that view.
package keymap

import "strings"

// Context is a scope within which bindings apply. Bindings in different
// contexts are independent and never conflict.
type Context string

// The product's contexts.
const (
	ContextGlobal Context = "global"
	ContextEditor Context = "editor"
	ContextList   Context = "list"
	ContextPrompt Context = "prompt"
)

var contextOrder = []Context{ContextGlobal, ContextEditor, ContextList, ContextPrompt}

// Contexts returns every context in display order.
func Contexts() []Context {
	out := make([]Context, len(contextOrder))
	copy(out, contextOrder)
	return out
}

// ValidContext reports whether c names a known context.
func ValidContext(c Context) bool {
	for _, v := range contextOrder {
		if v == c {
			return true
		}
	}
	return false
}

// ContextFromName resolves a context name, case-insensitively.
func ContextFromName(name string) (Context, bool) {
	c := Context(strings.ToLower(strings.TrimSpace(name)))
	if ValidContext(c) {
		return c, true
	}
	return "", false
}

// Action identifies a bindable behavior, unique within a context.
type Action string

// ActionInfo is the display metadata registered with an action.
type ActionInfo struct {
	Action      Action
	Label       string
	Description string
	Group       string
}
