package chord

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/keyforge/internal/key"
)

// recorder collects emitted candidates.
type recorder struct {
	mu   sync.Mutex
	got  []Candidate
	seen chan struct{}
}

func newRecorder() *recorder {
	return &recorder{seen: make(chan struct{}, 16)}
}

func (r *recorder) emit(c Candidate) {
	r.mu.Lock()
	r.got = append(r.got, c)
	r.mu.Unlock()
	r.seen <- struct{}{}
}

func (r *recorder) candidates() []Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Candidate, len(r.got))
	copy(out, r.got)
	return out
}

// wait blocks until n candidates have been emitted or the deadline hits.
func (r *recorder) wait(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-r.seen:
		case <-deadline:
			t.Fatalf("timed out waiting for %d candidates, have %d", n, len(r.candidates()))
		}
	}
}

func TestChordComposition(t *testing.T) {
	rec := newRecorder()
	c := New(time.Second, rec.emit)
	defer c.Close()

	c.FeedToken("g")
	c.FeedToken("g")
	rec.wait(t, 2)

	got := rec.candidates()
	if got[0].Token != "g" || got[0].Final {
		t.Errorf("first candidate = %+v, want pending g", got[0])
	}
	if got[1].Token != "g g" || !got[1].Final {
		t.Errorf("second candidate = %+v, want final %q", got[1], "g g")
	}
}

func TestChordTimeoutFinalizesSingleKey(t *testing.T) {
	rec := newRecorder()
	c := New(30*time.Millisecond, rec.emit)
	defer c.Close()

	c.FeedToken("g")
	rec.wait(t, 2)

	got := rec.candidates()
	if got[0].Token != "g" || got[0].Final {
		t.Errorf("first candidate = %+v, want pending g", got[0])
	}
	if got[1].Token != "g" || !got[1].Final {
		t.Errorf("timeout candidate = %+v, want final g", got[1])
	}
	if got[1].Token.IsChord() {
		t.Errorf("timeout candidate %q has a trailing chord part", got[1].Token)
	}
	if c.Pending() {
		t.Error("Pending() = true after timeout")
	}
}

func TestClearCancelsTimer(t *testing.T) {
	rec := newRecorder()
	c := New(30*time.Millisecond, rec.emit)
	defer c.Close()

	c.FeedToken("g")
	rec.wait(t, 1)
	c.Clear()

	time.Sleep(100 * time.Millisecond)
	got := rec.candidates()
	if len(got) != 1 {
		t.Fatalf("got %d candidates after Clear, want 1 (no timeout emission)", len(got))
	}
	if c.Pending() {
		t.Error("Pending() = true after Clear")
	}
}

func TestNewCaptureCancelsPriorTimer(t *testing.T) {
	rec := newRecorder()
	c := New(60*time.Millisecond, rec.emit)
	defer c.Close()

	c.FeedToken("g")
	rec.wait(t, 1)
	c.Clear()
	c.FeedToken("h")
	rec.wait(t, 2)

	// Only the h timeout may fire; a late g emission would be a stale
	// callback surviving its cancellation.
	time.Sleep(100 * time.Millisecond)
	got := rec.candidates()
	want := []Candidate{
		{Token: "g"},
		{Token: "h"},
		{Token: "h", Final: true},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSecondKeyCancelsTimer(t *testing.T) {
	rec := newRecorder()
	c := New(40*time.Millisecond, rec.emit)
	defer c.Close()

	c.FeedToken("ctrl+k")
	c.FeedToken("ctrl+c")
	rec.wait(t, 2)

	time.Sleep(100 * time.Millisecond)
	got := rec.candidates()
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (timer must not fire after chord)", len(got))
	}
	if got[1].Token != "ctrl+k ctrl+c" || !got[1].Final {
		t.Errorf("chord candidate = %+v, want final %q", got[1], "ctrl+k ctrl+c")
	}
}

func TestCloseDropsPendingAndFurtherInput(t *testing.T) {
	rec := newRecorder()
	c := New(30*time.Millisecond, rec.emit)

	c.FeedToken("g")
	rec.wait(t, 1)
	c.Close()
	c.FeedToken("h")

	time.Sleep(100 * time.Millisecond)
	if got := rec.candidates(); len(got) != 1 {
		t.Fatalf("got %d candidates after Close, want 1", len(got))
	}
	c.Close() // idempotent
}

func TestBareModifierIgnored(t *testing.T) {
	rec := newRecorder()
	c := New(time.Second, rec.emit)
	defer c.Close()

	c.Feed(key.NewKeyEvent(key.KeyNone, key.ModShift))
	c.FeedToken("")
	if got := rec.candidates(); len(got) != 0 {
		t.Fatalf("got %d candidates for bare modifiers, want 0", len(got))
	}

	// While awaiting a second key, bare modifiers change nothing.
	c.FeedToken("g")
	rec.wait(t, 1)
	c.FeedToken("")
	if !c.Pending() {
		t.Error("Pending() = false after bare modifier while awaiting")
	}
	c.FeedToken("g")
	rec.wait(t, 1)
	got := rec.candidates()
	if got[len(got)-1].Token != "g g" {
		t.Errorf("candidate after bare modifier = %+v, want chord g g", got[len(got)-1])
	}
}

func TestDefaultWindow(t *testing.T) {
	c := New(0, nil)
	defer c.Close()
	if c.Window() != DefaultWindow {
		t.Errorf("Window() = %v, want %v", c.Window(), DefaultWindow)
	}
}
