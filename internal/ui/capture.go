package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keyforge/internal/chord"
	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

// candidateMsg carries a chord candidate from the capture timer into the
// bubbletea loop. Session ties it to the overlay that produced it so a
// late timeout from a closed overlay is dropped.
type candidateMsg struct {
	session   int
	candidate chord.Candidate
}

// captureView is the add-key overlay: it owns a chord capture session
// for one action and shows the live candidate with its conflict report.
type captureView struct {
	session int
	context keymap.Context
	action  keymap.Action
	label   string

	cap *chord.Capture

	candidate key.Token
	pending   bool
	has       bool
	report    keymap.Report
}

// newCaptureView opens a capture session. Candidates flow through ch;
// the session number keeps stale timer emissions from other sessions
// out.
func newCaptureView(session int, c keymap.Context, a keymap.Action, label string, win time.Duration, ch chan<- candidateMsg) *captureView {
	cv := &captureView{
		session: session,
		context: c,
		action:  a,
		label:   label,
	}
	cv.cap = chord.New(win, func(cd chord.Candidate) {
		ch <- candidateMsg{session: session, candidate: cd}
	})
	return cv
}

// feed routes a key message into the chord machine. Enter and Escape
// are the overlay's own controls and never become candidates.
func (cv *captureView) feed(msg tea.KeyMsg) {
	ev, ok := key.FromTea(msg)
	if !ok {
		return
	}
	cv.cap.Feed(ev)
}

// apply folds a candidate emission into the view state. The conflict
// report is recomputed by the caller, which owns the service.
func (cv *captureView) apply(cd chord.Candidate) {
	cv.candidate = cd.Token
	cv.has = !cd.Token.IsZero()
	cv.pending = !cd.Final
}

// clear discards the current candidate and any pending chord window.
func (cv *captureView) clear() {
	cv.cap.Clear()
	cv.candidate = ""
	cv.has = false
	cv.pending = false
	cv.report = keymap.Report{}
}

// close tears the session down; no further emissions reach the loop.
func (cv *captureView) close() {
	cv.cap.Close()
}

// confirmable reports whether Enter may commit the candidate. Reserved
// keys are a hard block; conflicts and terminal advisories are not.
func (cv *captureView) confirmable() bool {
	return cv.has && !cv.report.Blocked()
}
