package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event. ok is false for events that carry
// nothing bindable. Terminals fold several combinations together
// (Ctrl+I is Tab, Ctrl+M is Enter); the named form wins.
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	mod := fromTcellMod(ev.Modifiers())
	k := ev.Key()

	switch k {
	case tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mod), true
	case tcell.KeyEscape:
		return NewKeyEvent(KeyEscape, mod), true
	case tcell.KeyEnter:
		return NewKeyEvent(KeyEnter, mod), true
	case tcell.KeyTab:
		return NewKeyEvent(KeyTab, mod), true
	case tcell.KeyBacktab:
		return NewKeyEvent(KeyTab, mod.With(ModShift)), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return NewKeyEvent(KeyBackspace, mod), true
	case tcell.KeyDelete:
		return NewKeyEvent(KeyDelete, mod), true
	case tcell.KeyInsert:
		return NewKeyEvent(KeyInsert, mod), true
	case tcell.KeyHome:
		return NewKeyEvent(KeyHome, mod), true
	case tcell.KeyEnd:
		return NewKeyEvent(KeyEnd, mod), true
	case tcell.KeyPgUp:
		return NewKeyEvent(KeyPageUp, mod), true
	case tcell.KeyPgDn:
		return NewKeyEvent(KeyPageDown, mod), true
	case tcell.KeyUp:
		return NewKeyEvent(KeyUp, mod), true
	case tcell.KeyDown:
		return NewKeyEvent(KeyDown, mod), true
	case tcell.KeyLeft:
		return NewKeyEvent(KeyLeft, mod), true
	case tcell.KeyRight:
		return NewKeyEvent(KeyRight, mod), true
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return NewKeyEvent(KeyF1+Key(k-tcell.KeyF1), mod), true
	}

	// Control characters arrive as dedicated key codes with the modifier
	// sometimes unreported; restore it. Tab, Enter, and Backspace codes
	// were consumed above.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + int(k-tcell.KeyCtrlA))
		return NewRuneEvent(r, mod.With(ModCtrl)), true
	}
	switch k {
	case tcell.KeyCtrlSpace:
		return NewKeyEvent(KeySpace, mod.With(ModCtrl)), true
	case tcell.KeyCtrlBackslash:
		return NewRuneEvent('\\', mod.With(ModCtrl)), true
	case tcell.KeyCtrlRightSq:
		return NewRuneEvent(']', mod.With(ModCtrl)), true
	case tcell.KeyCtrlCarat:
		return NewRuneEvent('^', mod.With(ModCtrl)), true
	case tcell.KeyCtrlUnderscore:
		return NewRuneEvent('_', mod.With(ModCtrl)), true
	}

	return Event{}, false
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModAlt != 0 {
		mod = mod.With(ModAlt)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(ModCtrl)
	}
	if m&tcell.ModMeta != 0 {
		mod = mod.With(ModMeta)
	}
	if m&tcell.ModShift != 0 {
		mod = mod.With(ModShift)
	}
	return mod
}
