package key

import "time"

// Event is a single keyboard event after terminal decoding.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
	When time.Time
}

// NewRuneEvent creates an event for a printable key.
func NewRuneEvent(r rune, mod Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Mod: mod, When: time.Now()}
}

// NewKeyEvent creates an event for a named key.
func NewKeyEvent(k Key, mod Modifier) Event {
	return Event{Key: k, Mod: mod, When: time.Now()}
}

// IsRune reports whether the event carries a printable rune.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// String implements fmt.Stringer using the canonical token form.
func (e Event) String() string {
	return string(Normalize(e))
}
