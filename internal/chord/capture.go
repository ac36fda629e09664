// Package chord turns a stream of normalized key tokens into binding
// candidates, pairing two keystrokes that arrive within a short window
// into a single two-key chord.
package chord

import (
	"sync"
	"time"

	"github.com/dshills/keyforge/internal/key"
)

// DefaultWindow is how long a first keystroke waits for a chord partner.
const DefaultWindow = 1500 * time.Millisecond

// Candidate is an emitted binding candidate. Final is false while the
// window is still open and the candidate may yet extend into a chord;
// a timeout re-emits the standing candidate with Final set and the
// token unchanged.
type Candidate struct {
	Token key.Token
	Final bool
}

type state uint8

const (
	stateIdle state = iota
	stateAwaiting
)

// Capture is the chord state machine. Feed it events (or tokens); it
// emits candidates through the callback given at construction. Methods
// are safe for concurrent use with the internal timer.
type Capture struct {
	mu     sync.Mutex
	window time.Duration
	emit   func(Candidate)
	state  state
	first  key.Token
	timer  *time.Timer
	gen    uint64
	closed bool
}

// New creates a capture with the given chord window. A zero or negative
// window falls back to DefaultWindow. emit may be nil.
func New(window time.Duration, emit func(Candidate)) *Capture {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Capture{window: window, emit: emit}
}

// Window returns the configured chord window.
func (c *Capture) Window() time.Duration {
	return c.window
}

// Pending reports whether a first keystroke is waiting for a partner.
func (c *Capture) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateAwaiting
}

// Feed normalizes an event and advances the machine. Events that
// normalize to nothing (bare modifiers) are ignored in every state.
func (c *Capture) Feed(ev key.Event) {
	c.FeedToken(key.Normalize(ev))
}

// FeedToken advances the machine with an already-normalized token.
func (c *Capture) FeedToken(tok key.Token) {
	if tok.IsZero() {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var out Candidate
	switch c.state {
	case stateIdle:
		c.first = tok
		c.state = stateAwaiting
		c.resetTimer()
		out = Candidate{Token: tok}
	case stateAwaiting:
		c.stopTimer()
		out = Candidate{Token: key.Chord(c.first, tok), Final: true}
		c.first = ""
		c.state = stateIdle
	}
	emit := c.emit
	c.mu.Unlock()

	if emit != nil {
		emit(out)
	}
}

// Clear cancels any pending timer and discards the current candidate.
// Nothing is emitted.
func (c *Capture) Clear() {
	c.mu.Lock()
	c.stopTimer()
	c.first = ""
	c.state = stateIdle
	c.mu.Unlock()
}

// Close clears the machine and drops all further input. Safe to call
// more than once.
func (c *Capture) Close() {
	c.mu.Lock()
	c.stopTimer()
	c.first = ""
	c.state = stateIdle
	c.closed = true
	c.mu.Unlock()
}

// resetTimer arms the chord window, cancelling any previous timer first.
// Only one timer is ever live. Callers hold c.mu.
func (c *Capture) resetTimer() {
	c.stopTimer()
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.window, func() {
		c.timeout(gen)
	})
}

// stopTimer cancels the live timer, if any. Callers hold c.mu.
func (c *Capture) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// timeout finalizes the standing one-key candidate when the window
// lapses. The generation check drops callbacks that lost a race with
// Stop and fired against state that has already moved on.
func (c *Capture) timeout(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state != stateAwaiting {
		c.mu.Unlock()
		return
	}
	out := Candidate{Token: c.first, Final: true}
	c.first = ""
	c.state = stateIdle
	c.timer = nil
	emit := c.emit
	c.mu.Unlock()

	if emit != nil {
		emit(out)
	}
}
