package keymap

import (
	"fmt"

	"github.com/dshills/keyforge/internal/key"
)

// DefaultSet is the immutable built-in table of context → action →
// ordered default key tokens, plus action display metadata. It is fixed
// at construction and never mutated afterward.
type DefaultSet struct {
	contexts map[Context]*contextDefaults
}

type contextDefaults struct {
	order []Action
	info  map[Action]ActionInfo
	keys  map[Action][]key.Token
}

// NewDefaultSet creates an empty table; hosts register their defaults
// with Register before handing the set out.
func NewDefaultSet() *DefaultSet {
	return &DefaultSet{contexts: make(map[Context]*contextDefaults)}
}

// Register adds an action with its default keys. Registration order is
// display order. Registering the same action twice replaces its keys and
// metadata without changing its position.
func (d *DefaultSet) Register(ctx Context, info ActionInfo, keys ...key.Token) {
	cd := d.contexts[ctx]
	if cd == nil {
		cd = &contextDefaults{
			info: make(map[Action]ActionInfo),
			keys: make(map[Action][]key.Token),
		}
		d.contexts[ctx] = cd
	}
	if _, exists := cd.info[info.Action]; !exists {
		cd.order = append(cd.order, info.Action)
	}
	cd.info[info.Action] = info
	cd.keys[info.Action] = append([]key.Token(nil), keys...)
}

// Actions returns the context's actions in registration order.
func (d *DefaultSet) Actions(ctx Context) []ActionInfo {
	cd := d.contexts[ctx]
	if cd == nil {
		return nil
	}
	out := make([]ActionInfo, 0, len(cd.order))
	for _, a := range cd.order {
		out = append(out, cd.info[a])
	}
	return out
}

// Keys returns the default tokens for an action, in registered order.
func (d *DefaultSet) Keys(ctx Context, a Action) []key.Token {
	cd := d.contexts[ctx]
	if cd == nil {
		return nil
	}
	return append([]key.Token(nil), cd.keys[a]...)
}

// Has reports whether the action is registered in the context.
func (d *DefaultSet) Has(ctx Context, a Action) bool {
	cd := d.contexts[ctx]
	if cd == nil {
		return false
	}
	_, ok := cd.info[a]
	return ok
}

// Info returns the metadata for an action.
func (d *DefaultSet) Info(ctx Context, a Action) (ActionInfo, bool) {
	cd := d.contexts[ctx]
	if cd == nil {
		return ActionInfo{}, false
	}
	info, ok := cd.info[a]
	return info, ok
}

// Label returns the display label for an action, falling back to the
// identifier when the action is unknown.
func (d *DefaultSet) Label(ctx Context, a Action) string {
	if info, ok := d.Info(ctx, a); ok && info.Label != "" {
		return info.Label
	}
	return string(a)
}

// Builtin returns the stock keymap the host editor ships with.
func Builtin() *DefaultSet {
	d := NewDefaultSet()

	reg := func(ctx Context, a Action, label, desc, group string, specs ...string) {
		keys := make([]key.Token, 0, len(specs))
		for _, s := range specs {
			t, err := key.Parse(s)
			if err != nil {
				panic(fmt.Sprintf("keymap: builtin default %q for %s/%s: %v", s, ctx, a, err))
			}
			keys = append(keys, t)
		}
		d.Register(ctx, ActionInfo{Action: a, Label: label, Description: desc, Group: group}, keys...)
	}

	reg(ContextGlobal, "show-help", "Show help", "Open the help overlay", "General", "f1", "?")
	reg(ContextGlobal, "command-palette", "Command palette", "Search and run any command", "General", "ctrl+p")
	reg(ContextGlobal, "next-context", "Next panel", "Cycle focus to the next panel", "Navigation", "tab")
	reg(ContextGlobal, "quit", "Quit", "Exit the application", "General", "ctrl+q")

	reg(ContextEditor, "save-file", "Save file", "Write the current buffer to disk", "File", "ctrl+s")
	reg(ContextEditor, "open-file", "Open file", "Open a file by path", "File", "ctrl+o")
	reg(ContextEditor, "find", "Find", "Search within the buffer", "Search", "ctrl+f")
	reg(ContextEditor, "find-next", "Find next", "Jump to the next match", "Search", "f3")
	reg(ContextEditor, "goto-line", "Go to line", "Jump to a line number", "Navigation", "ctrl+g")
	reg(ContextEditor, "goto-top", "Go to top", "Jump to the start of the buffer", "Navigation", "g g")
	reg(ContextEditor, "goto-bottom", "Go to bottom", "Jump to the end of the buffer", "Navigation", "shift+g")
	reg(ContextEditor, "delete-line", "Delete line", "Delete the current line", "Edit", "d d")
	reg(ContextEditor, "undo", "Undo", "Undo the last edit", "Edit", "u")
	reg(ContextEditor, "redo", "Redo", "Redo the last undone edit", "Edit", "ctrl+r")

	reg(ContextList, "move-down", "Move down", "Select the next entry", "Navigation", "j", "down")
	reg(ContextList, "move-up", "Move up", "Select the previous entry", "Navigation", "k", "up")
	reg(ContextList, "select", "Select", "Activate the highlighted entry", "Navigation", "enter")
	reg(ContextList, "filter", "Filter", "Filter the list", "Search", "/")
	reg(ContextList, "refresh", "Refresh", "Reload the list contents", "General", "r")

	reg(ContextPrompt, "accept", "Accept", "Submit the prompt", "Prompt", "enter")
	reg(ContextPrompt, "cancel", "Cancel", "Dismiss the prompt", "Prompt", "escape")
	reg(ContextPrompt, "history-prev", "Previous history", "Recall the previous entry", "Prompt", "up")
	reg(ContextPrompt, "history-next", "Next history", "Recall the next entry", "Prompt", "down")
	reg(ContextPrompt, "complete", "Complete", "Complete the current word", "Prompt", "tab")

	return d
}
