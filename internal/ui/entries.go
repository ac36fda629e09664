package ui

import (
	"fmt"
	"strings"

	"github.com/dshills/keyforge/internal/keymap"
)

type entryKind int

const (
	entryHeader entryKind = iota
	entryAction
)

// entry is one renderable row: a context header or an action binding.
type entry struct {
	kind    entryKind
	context keymap.Context
	binding keymap.MergedBinding
}

// buildEntries derives the visible row list from the merged bindings.
// Collapsed contexts contribute only their header; a non-empty filter
// forces every context open and hides contexts with no matching action.
func buildEntries(merged map[keymap.Context][]keymap.MergedBinding, expanded map[keymap.Context]bool, filter string) []entry {
	filter = strings.ToLower(strings.TrimSpace(filter))
	var out []entry
	for _, c := range keymap.Contexts() {
		bindings := merged[c]
		if filter != "" {
			var kept []keymap.MergedBinding
			for _, mb := range bindings {
				if matchesFilter(mb, filter) {
					kept = append(kept, mb)
				}
			}
			if len(kept) == 0 {
				continue
			}
			out = append(out, entry{kind: entryHeader, context: c})
			for _, mb := range kept {
				out = append(out, entry{kind: entryAction, context: c, binding: mb})
			}
			continue
		}

		out = append(out, entry{kind: entryHeader, context: c})
		if !expanded[c] {
			continue
		}
		for _, mb := range bindings {
			out = append(out, entry{kind: entryAction, context: c, binding: mb})
		}
	}
	return out
}

// matchesFilter checks the action's label, description, group, and every
// bound key's display string, case-insensitively.
func matchesFilter(mb keymap.MergedBinding, filter string) bool {
	if strings.Contains(strings.ToLower(mb.Label), filter) ||
		strings.Contains(strings.ToLower(mb.Description), filter) ||
		strings.Contains(strings.ToLower(mb.Group), filter) ||
		strings.Contains(strings.ToLower(string(mb.Action)), filter) {
		return true
	}
	for _, tok := range mb.ActiveKeys {
		if strings.Contains(strings.ToLower(tok.Display()), filter) {
			return true
		}
	}
	return false
}

// keyCell renders an action's keys for its row: active keys joined, "-"
// when nothing answers.
func keyCell(mb keymap.MergedBinding) string {
	if len(mb.ActiveKeys) == 0 {
		return "-"
	}
	parts := make([]string, len(mb.ActiveKeys))
	for i, tok := range mb.ActiveKeys {
		parts[i] = tok.Display()
	}
	return strings.Join(parts, ", ")
}

// headerLabel renders a context header with its modification count.
func headerLabel(c keymap.Context, bindings []keymap.MergedBinding, expanded bool) string {
	marker := "▸"
	if expanded {
		marker = "▾"
	}
	modified := 0
	for _, mb := range bindings {
		if mb.IsModified {
			modified++
		}
	}
	label := fmt.Sprintf("%s %s (%d actions", marker, c, len(bindings))
	if modified > 0 {
		label += fmt.Sprintf(", %d modified", modified)
	}
	return label + ")"
}

func isSelectable(entries []entry, i int) bool {
	return i >= 0 && i < len(entries) && entries[i].kind == entryAction
}

// nearestSelectable returns the closest action row to i, preferring
// forward, or -1 when the list has none.
func nearestSelectable(entries []entry, i int) int {
	if i < 0 {
		i = 0
	}
	for j := i; j < len(entries); j++ {
		if entries[j].kind == entryAction {
			return j
		}
	}
	for j := min(i, len(entries)-1); j >= 0; j-- {
		if entries[j].kind == entryAction {
			return j
		}
	}
	return -1
}
