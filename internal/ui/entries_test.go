package ui

import (
	"testing"

	"github.com/dshills/keyforge/internal/keymap"
)

func testMerged() map[keymap.Context][]keymap.MergedBinding {
	defs := keymap.Builtin()
	out := make(map[keymap.Context][]keymap.MergedBinding)
	for _, c := range keymap.Contexts() {
		out[c] = keymap.ComputeMerged(defs, keymap.Overrides{}, c)
	}
	return out
}

func allExpanded() map[keymap.Context]bool {
	m := make(map[keymap.Context]bool)
	for _, c := range keymap.Contexts() {
		m[c] = true
	}
	return m
}

func TestBuildEntriesExpanded(t *testing.T) {
	merged := testMerged()
	entries := buildEntries(merged, allExpanded(), "")

	headers := 0
	actions := 0
	for _, e := range entries {
		switch e.kind {
		case entryHeader:
			headers++
		case entryAction:
			actions++
		}
	}
	if headers != len(keymap.Contexts()) {
		t.Errorf("headers = %d, want one per context (%d)", headers, len(keymap.Contexts()))
	}
	want := 0
	for _, bindings := range merged {
		want += len(bindings)
	}
	if actions != want {
		t.Errorf("action rows = %d, want %d", actions, want)
	}
	if entries[0].kind != entryHeader || entries[0].context != keymap.ContextGlobal {
		t.Errorf("first entry = %+v, want the global header", entries[0])
	}
}

func TestBuildEntriesCollapsed(t *testing.T) {
	merged := testMerged()
	expanded := allExpanded()
	expanded[keymap.ContextEditor] = false

	for _, e := range buildEntries(merged, expanded, "") {
		if e.kind == entryAction && e.context == keymap.ContextEditor {
			t.Fatalf("collapsed context still lists action %s", e.binding.Action)
		}
	}
}

func TestBuildEntriesFilter(t *testing.T) {
	merged := testMerged()
	// Filter forces contexts open and hides those with no match.
	entries := buildEntries(merged, map[keymap.Context]bool{}, "save")

	var found bool
	for _, e := range entries {
		switch e.kind {
		case entryHeader:
			if e.context != keymap.ContextEditor {
				t.Errorf("header for %s with filter %q, want editor only", e.context, "save")
			}
		case entryAction:
			if e.binding.Action == "save-file" {
				found = true
			}
		}
	}
	if !found {
		t.Error("save-file row missing for filter \"save\"")
	}
}

func TestBuildEntriesFilterMatchesKeyDisplay(t *testing.T) {
	merged := testMerged()
	entries := buildEntries(merged, allExpanded(), "Ctrl+P")

	var actions []keymap.Action
	for _, e := range entries {
		if e.kind == entryAction {
			actions = append(actions, e.binding.Action)
		}
	}
	if len(actions) != 1 || actions[0] != "command-palette" {
		t.Errorf("actions matching Ctrl+P = %v, want [command-palette]", actions)
	}
}

func TestMatchesFilterFields(t *testing.T) {
	mb := keymap.MergedBinding{
		Action:      "goto-top",
		Label:       "Go to top",
		Description: "Jump to the start of the buffer",
		Group:       "Navigation",
		ActiveKeys:  tokensOf("g g"),
	}
	for _, q := range []string{"go to", "jump", "navigation", "g g", "goto"} {
		if !matchesFilter(mb, q) {
			t.Errorf("matchesFilter(%q) = false, want true", q)
		}
	}
	if matchesFilter(mb, "save") {
		t.Error("matchesFilter(save) = true for goto-top")
	}
}

func TestKeyCell(t *testing.T) {
	mb := keymap.MergedBinding{ActiveKeys: tokensOf("ctrl+s", "ctrl+shift+s")}
	if got := keyCell(mb); got != "Ctrl+S, Ctrl+Shift+S" {
		t.Errorf("keyCell() = %q", got)
	}
	if got := keyCell(keymap.MergedBinding{}); got != "-" {
		t.Errorf("keyCell(no keys) = %q, want -", got)
	}
}

func TestNearestSelectable(t *testing.T) {
	entries := buildEntries(testMerged(), allExpanded(), "")
	if got := nearestSelectable(entries, 0); got != 1 {
		t.Errorf("nearestSelectable(0) = %d, want the first action row 1", got)
	}
	if got := nearestSelectable(entries, len(entries)+5); !isSelectable(entries, got) {
		t.Errorf("nearestSelectable(past end) = %d, not selectable", got)
	}
	if got := nearestSelectable(nil, 0); got != -1 {
		t.Errorf("nearestSelectable(empty) = %d, want -1", got)
	}
}
