package key

import "testing"

func TestNormalizeRawCanonicalOrder(t *testing.T) {
	// However the flags were assembled, the token comes out in the fixed
	// alt, ctrl, meta, shift order.
	combos := []Modifier{
		ModCtrl | ModShift,
		ModShift | ModCtrl,
	}
	for _, mod := range combos {
		if got := NormalizeRaw("k", mod); got != "ctrl+shift+k" {
			t.Errorf("NormalizeRaw(k, %v) = %q, want %q", mod, got, "ctrl+shift+k")
		}
	}
	all := ModShift | ModMeta | ModCtrl | ModAlt
	if got := NormalizeRaw("x", all); got != "alt+ctrl+meta+shift+x" {
		t.Errorf("NormalizeRaw(x, all) = %q, want %q", got, "alt+ctrl+meta+shift+x")
	}
}

func TestNormalizeRaw(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mod  Modifier
		want Token
	}{
		{"plain letter", "a", ModNone, "a"},
		{"uppercase name lowered", "A", ModNone, "a"},
		{"ctrl letter", "s", ModCtrl, "ctrl+s"},
		{"space remapped", " ", ModNone, "space"},
		{"space with ctrl", " ", ModCtrl, "ctrl+space"},
		{"arrow up remapped", "ArrowUp", ModNone, "up"},
		{"arrow down remapped", "ArrowDown", ModNone, "down"},
		{"arrow left remapped", "ArrowLeft", ModNone, "left"},
		{"arrow right remapped", "ArrowRight", ModNone, "right"},
		{"arrow with modifiers", "ArrowUp", ModAlt | ModShift, "alt+shift+up"},
		{"named key lowered", "PageDown", ModNone, "pagedown"},
		{"escape", "Escape", ModNone, "escape"},
		{"function key", "F5", ModNone, "f5"},
		{"unknown name lowered verbatim", "MediaPlayPause", ModNone, "mediaplaypause"},
		{"bare shift ignored", "Shift", ModShift, ""},
		{"bare control ignored", "Control", ModCtrl, ""},
		{"bare ctrl ignored", "ctrl", ModCtrl, ""},
		{"bare alt ignored", "Alt", ModAlt, ""},
		{"bare meta ignored", "Meta", ModMeta, ""},
		{"empty name", "", ModCtrl, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRaw(tt.key, tt.mod); got != tt.want {
				t.Errorf("NormalizeRaw(%q, %v) = %q, want %q", tt.key, tt.mod, got, tt.want)
			}
		})
	}
}

func TestNormalizeEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want Token
	}{
		{"plain rune", NewRuneEvent('g', ModNone), "g"},
		{"ctrl rune", NewRuneEvent('s', ModCtrl), "ctrl+s"},
		{"uppercase folds to shift", NewRuneEvent('S', ModNone), "shift+s"},
		{"uppercase with ctrl", NewRuneEvent('S', ModCtrl), "ctrl+shift+s"},
		{"space rune", NewRuneEvent(' ', ModNone), "space"},
		{"named key", NewKeyEvent(KeyUp, ModNone), "up"},
		{"named key with modifiers", NewKeyEvent(KeyUp, ModCtrl|ModAlt), "alt+ctrl+up"},
		{"escape", NewKeyEvent(KeyEscape, ModNone), "escape"},
		{"none key", NewKeyEvent(KeyNone, ModCtrl), ""},
		{"zero rune", Event{Key: KeyRune}, ""},
		{"punctuation rune", NewRuneEvent('.', ModShift), "shift+."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.ev); got != tt.want {
				t.Errorf("Normalize(%v) = %q, want %q", tt.ev, got, tt.want)
			}
		})
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "ctrl"},
		{ModShift | ModCtrl, "ctrl+shift"},
		{ModMeta | ModAlt, "alt+meta"},
		{ModAlt | ModCtrl | ModMeta | ModShift, "alt+ctrl+meta+shift"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%b).String() = %q, want %q", uint8(tt.mod), got, tt.want)
		}
	}
}
