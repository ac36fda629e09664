package keymap

import "github.com/dshills/keyforge/internal/key"

// reservedKeys can never be bound. These are the signal and EOF keys a
// terminal application must leave alone.
var reservedKeys = map[key.Token]string{
	"ctrl+c":  "interrupts the application (SIGINT)",
	"ctrl+d":  "sends end-of-file",
	"ctrl+z":  "suspends the application (SIGTSTP)",
	"ctrl+\\": "force-quits the application (SIGQUIT)",
}

// terminalConflicts are legal to bind but commonly intercepted by
// terminal emulators or multiplexers before the application sees them.
var terminalConflicts = map[key.Token]string{
	"ctrl+s": "pauses terminal output (XOFF flow control)",
	"ctrl+q": "resumes terminal output (XON flow control)",
	"ctrl+a": "tmux/screen leader key on many setups",
	"ctrl+b": "tmux leader key",
	"ctrl+w": "erases a word in many shells",
	"ctrl+u": "kills the input line in many shells",
	"ctrl+h": "indistinguishable from backspace",
	"ctrl+i": "indistinguishable from tab",
	"ctrl+m": "indistinguishable from enter",
	"ctrl+[": "indistinguishable from escape",
	"ctrl+j": "indistinguishable from newline",
}

// IsReserved reports whether any part of tok is reserved. Chords count
// as reserved when either half is: the first keystroke would already be
// swallowed before the chord completes.
func IsReserved(tok key.Token) bool {
	_, hit := reservedReason(tok)
	return hit
}

// ReservedReason returns why tok is reserved, or "" when it is not.
func ReservedReason(tok key.Token) string {
	reason, _ := reservedReason(tok)
	return reason
}

func reservedReason(tok key.Token) (string, bool) {
	first, second, chord := tok.Split()
	if r, ok := reservedKeys[first]; ok {
		return r, true
	}
	if chord {
		if r, ok := reservedKeys[second]; ok {
			return r, true
		}
	}
	return "", false
}

// IsTerminalConflict reports whether any part of tok is a shortcut
// terminals commonly intercept.
func IsTerminalConflict(tok key.Token) bool {
	return TerminalConflictNote(tok) != ""
}

// TerminalConflictNote explains the terminal collision, or returns ""
// when there is none.
func TerminalConflictNote(tok key.Token) string {
	first, second, chord := tok.Split()
	if n, ok := terminalConflicts[first]; ok {
		return n
	}
	if chord {
		if n, ok := terminalConflicts[second]; ok {
			return n
		}
	}
	return ""
}
