package key

import (
	"strconv"
	"strings"
)

// Key identifies a non-printable key. Printable input is carried as a rune
// alongside KeyRune.
type Key uint16

// Named keys.
const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyRune
)

// keyNames maps keys to their canonical token names.
var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeySpace:     "space",
}

// keyFromName maps canonical names and accepted aliases to keys. Aliases
// cover browser-style event names and common shorthand. Keys are lowercase.
var keyFromName = map[string]Key{
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"tab":        KeyTab,
	"backspace":  KeyBackspace,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"insert":     KeyInsert,
	"ins":        KeyInsert,
	"home":       KeyHome,
	"end":        KeyEnd,
	"pageup":     KeyPageUp,
	"pgup":       KeyPageUp,
	"pagedown":   KeyPageDown,
	"pgdn":       KeyPageDown,
	"up":         KeyUp,
	"arrowup":    KeyUp,
	"down":       KeyDown,
	"arrowdown":  KeyDown,
	"left":       KeyLeft,
	"arrowleft":  KeyLeft,
	"right":      KeyRight,
	"arrowright": KeyRight,
	"space":      KeySpace,
	" ":          KeySpace,
}

func init() {
	for i := 0; i < 12; i++ {
		k := KeyF1 + Key(i)
		name := "f" + strconv.Itoa(i+1)
		keyNames[k] = name
		keyFromName[name] = k
	}
}

// Name returns the canonical token name for k, or "" for KeyNone and
// KeyRune (rune keys are named by their rune).
func (k Key) Name() string {
	return keyNames[k]
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if n := k.Name(); n != "" {
		return n
	}
	switch k {
	case KeyRune:
		return "rune"
	default:
		return "none"
	}
}

// KeyFromName resolves a key name or alias, case-insensitively.
func KeyFromName(name string) (Key, bool) {
	if name == " " {
		return KeySpace, true
	}
	k, ok := keyFromName[strings.ToLower(name)]
	return k, ok
}
