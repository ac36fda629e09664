package key

import tea "github.com/charmbracelet/bubbletea"

// FromTea converts a bubbletea key message. ok is false for messages that
// carry nothing bindable (paste chunks, multi-rune input, unknown keys).
func FromTea(msg tea.KeyMsg) (Event, bool) {
	var mod Modifier
	if msg.Alt {
		mod = mod.With(ModAlt)
	}
	if msg.Paste {
		return Event{}, false
	}

	t := msg.Type
	switch t {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Event{}, false
		}
		return NewRuneEvent(msg.Runes[0], mod), true
	case tea.KeySpace:
		return NewKeyEvent(KeySpace, mod), true
	case tea.KeyEnter:
		return NewKeyEvent(KeyEnter, mod), true
	case tea.KeyTab:
		return NewKeyEvent(KeyTab, mod), true
	case tea.KeyShiftTab:
		return NewKeyEvent(KeyTab, mod.With(ModShift)), true
	case tea.KeyEscape:
		return NewKeyEvent(KeyEscape, mod), true
	case tea.KeyBackspace:
		return NewKeyEvent(KeyBackspace, mod), true
	case tea.KeyDelete:
		return NewKeyEvent(KeyDelete, mod), true
	case tea.KeyInsert:
		return NewKeyEvent(KeyInsert, mod), true
	case tea.KeyHome:
		return NewKeyEvent(KeyHome, mod), true
	case tea.KeyEnd:
		return NewKeyEvent(KeyEnd, mod), true
	case tea.KeyPgUp:
		return NewKeyEvent(KeyPageUp, mod), true
	case tea.KeyPgDown:
		return NewKeyEvent(KeyPageDown, mod), true
	case tea.KeyUp:
		return NewKeyEvent(KeyUp, mod), true
	case tea.KeyDown:
		return NewKeyEvent(KeyDown, mod), true
	case tea.KeyLeft:
		return NewKeyEvent(KeyLeft, mod), true
	case tea.KeyRight:
		return NewKeyEvent(KeyRight, mod), true
	case tea.KeyShiftUp:
		return NewKeyEvent(KeyUp, mod.With(ModShift)), true
	case tea.KeyShiftDown:
		return NewKeyEvent(KeyDown, mod.With(ModShift)), true
	case tea.KeyShiftLeft:
		return NewKeyEvent(KeyLeft, mod.With(ModShift)), true
	case tea.KeyShiftRight:
		return NewKeyEvent(KeyRight, mod.With(ModShift)), true
	case tea.KeyCtrlUp:
		return NewKeyEvent(KeyUp, mod.With(ModCtrl)), true
	case tea.KeyCtrlDown:
		return NewKeyEvent(KeyDown, mod.With(ModCtrl)), true
	case tea.KeyCtrlLeft:
		return NewKeyEvent(KeyLeft, mod.With(ModCtrl)), true
	case tea.KeyCtrlRight:
		return NewKeyEvent(KeyRight, mod.With(ModCtrl)), true
	case tea.KeyCtrlShiftUp:
		return NewKeyEvent(KeyUp, mod.With(ModCtrl|ModShift)), true
	case tea.KeyCtrlShiftDown:
		return NewKeyEvent(KeyDown, mod.With(ModCtrl|ModShift)), true
	case tea.KeyCtrlShiftLeft:
		return NewKeyEvent(KeyLeft, mod.With(ModCtrl|ModShift)), true
	case tea.KeyCtrlShiftRight:
		return NewKeyEvent(KeyRight, mod.With(ModCtrl|ModShift)), true
	case tea.KeyCtrlHome:
		return NewKeyEvent(KeyHome, mod.With(ModCtrl)), true
	case tea.KeyCtrlEnd:
		return NewKeyEvent(KeyEnd, mod.With(ModCtrl)), true
	case tea.KeyCtrlPgUp:
		return NewKeyEvent(KeyPageUp, mod.With(ModCtrl)), true
	case tea.KeyCtrlPgDown:
		return NewKeyEvent(KeyPageDown, mod.With(ModCtrl)), true
	}

	if t <= tea.KeyF1 && t >= tea.KeyF12 {
		return NewKeyEvent(KeyF1+Key(tea.KeyF1-t), mod), true
	}

	// ASCII control codes; Tab, Enter, and Backspace were consumed above.
	if t >= tea.KeyCtrlA && t <= tea.KeyCtrlZ {
		r := rune('a' + int(t-tea.KeyCtrlA))
		return NewRuneEvent(r, mod.With(ModCtrl)), true
	}
	switch t {
	case tea.KeyCtrlAt:
		return NewKeyEvent(KeySpace, mod.With(ModCtrl)), true
	case tea.KeyCtrlBackslash:
		return NewRuneEvent('\\', mod.With(ModCtrl)), true
	case tea.KeyCtrlCloseBracket:
		return NewRuneEvent(']', mod.With(ModCtrl)), true
	case tea.KeyCtrlCaret:
		return NewRuneEvent('^', mod.With(ModCtrl)), true
	case tea.KeyCtrlUnderscore:
		return NewRuneEvent('_', mod.With(ModCtrl)), true
	}

	return Event{}, false
}
