// Package ui is the interactive keybinding editor: browse merged
// bindings per context, capture new keys with chord support, and apply
// override mutations through the shared service.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/dshills/keyforge/internal/app"
	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
	"github.com/dshills/keyforge/internal/store"
)

// reloadMsg reports an external edit to the keybindings document.
type reloadMsg struct{}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

type pickerPurpose int

const (
	pickUnbind pickerPurpose = iota
	pickRemove
)

// pickerView selects one key out of several for unbind/remove.
type pickerView struct {
	purpose pickerPurpose
	context keymap.Context
	action  keymap.Action
	label   string
	items   []pickItem
	cursor  int
}

type pickItem struct {
	tok  key.Token
	note string
}

type confirmKind int

const (
	confirmResetContext confirmKind = iota
	confirmResetAll
)

// confirmView is a y/n prompt for the bulk resets.
type confirmView struct {
	kind    confirmKind
	context keymap.Context
	prompt  string
}

// Model is the editor's bubbletea model.
type Model struct {
	svc *app.Service
	st  styles

	width  int
	height int

	entries  []entry
	merged   map[keymap.Context][]keymap.MergedBinding
	cursor   int
	scroll   int
	expanded map[keymap.Context]bool

	searching bool
	search    textinput.Model
	filter    string

	capture *captureView
	session int
	candCh  chan candidateMsg

	picker  *pickerView
	confirm *confirmView

	status     string
	statusKind statusKind

	watcher *store.Watcher
}

// New creates the editor over an opened service. watcher may be nil when
// external-edit reloading is disabled; the caller owns its lifecycle.
func New(svc *app.Service, watcher *store.Watcher) *Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter actions and keys"

	m := &Model{
		svc:      svc,
		st:       defaultStyles(),
		expanded: make(map[keymap.Context]bool),
		search:   search,
		candCh:   make(chan candidateMsg, 8),
		watcher:  watcher,
	}
	for _, c := range keymap.Contexts() {
		m.expanded[c] = true
	}
	m.rebuild()
	return m
}

// SetWatchError records that watching for external document edits could
// not start. The message shows in the status line so a user who enabled
// watching learns reloads are off.
func (m *Model) SetWatchError(err error) {
	m.setStatus(statusError, "external-edit reload disabled: %v", err)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitCandidate()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitReload())
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitCandidate() tea.Cmd {
	return func() tea.Msg {
		return <-m.candCh
	}
}

func (m *Model) waitReload() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher.Events()
		return reloadMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case candidateMsg:
		if m.capture != nil && msg.session == m.capture.session {
			m.capture.apply(msg.candidate)
			if m.capture.has {
				m.capture.report = m.svc.Check(m.capture.context, m.capture.candidate, m.capture.action)
			}
		}
		return m, m.waitCandidate()

	case reloadMsg:
		if err := m.svc.Reload(context.Background()); err != nil {
			m.setStatus(statusError, "reload failed: %v", err)
		} else {
			m.rebuild()
			m.setStatus(statusInfo, "keybindings reloaded after external edit")
		}
		return m, m.waitReload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.capture != nil:
		return m.handleCaptureKey(msg)
	case m.picker != nil:
		return m.handlePickerKey(msg)
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cv := m.capture
	switch msg.String() {
	case "enter":
		if !cv.has {
			return m, nil
		}
		if !cv.confirmable() {
			m.setStatus(statusError, "%s is reserved: %s", cv.candidate.Display(), cv.report.ReservedReason)
			return m, nil
		}
		tok, act, c := cv.candidate, cv.action, cv.context
		m.closeCapture()
		if err := m.svc.SetBinding(context.Background(), c, tok, act); err != nil {
			m.setStatus(statusError, "save failed: %v", err)
			return m, nil
		}
		m.rebuild()
		m.setStatus(statusOK, "bound %s to %s", tok.Display(), m.svc.Defaults().Label(c, act))
		return m, nil

	case "esc":
		if cv.has || cv.pending {
			cv.clear()
			return m, nil
		}
		m.closeCapture()
		return m, nil
	}

	cv.feed(msg)
	return m, nil
}

func (m *Model) closeCapture() {
	if m.capture != nil {
		m.capture.close()
		m.capture = nil
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "esc":
		m.picker = nil
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "enter":
		item := p.items[p.cursor]
		m.picker = nil
		m.applyPick(p, item.tok)
	}
	return m, nil
}

func (m *Model) applyPick(p *pickerView, tok key.Token) {
	ctx := context.Background()
	switch p.purpose {
	case pickUnbind:
		if err := m.svc.UnbindKey(ctx, p.context, tok); err != nil {
			m.setStatus(statusError, "unbind failed: %v", err)
			return
		}
		m.rebuild()
		m.setStatus(statusOK, "unbound %s from %s", tok.Display(), p.label)
	case pickRemove:
		if err := m.svc.RemoveOverride(ctx, p.context, tok); err != nil {
			m.setStatus(statusError, "restore failed: %v", err)
			return
		}
		m.rebuild()
		m.setStatus(statusOK, "restored %s", tok.Display())
	}
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cf := m.confirm
	switch msg.String() {
	case "y", "Y":
		m.confirm = nil
		ctx := context.Background()
		switch cf.kind {
		case confirmResetContext:
			if err := m.svc.ResetContext(ctx, cf.context); err != nil {
				m.setStatus(statusError, "reset failed: %v", err)
				return m, nil
			}
			m.rebuild()
			m.setStatus(statusOK, "reset every override in %s", cf.context)
		case confirmResetAll:
			if err := m.svc.ResetAll(ctx); err != nil {
				m.setStatus(statusError, "reset failed: %v", err)
				return m, nil
			}
			m.rebuild()
			m.setStatus(statusOK, "reset every override (backup written)")
		}
	case "n", "N", "esc":
		m.confirm = nil
		m.setStatus(statusInfo, "cancelled")
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter = ""
		m.rebuild()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter = m.search.Value()
	m.rebuild()
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		if m.filter != "" {
			m.search.SetValue("")
			m.filter = ""
			m.rebuild()
		}
		return m, nil

	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)

	case "tab", "h", "l", "left", "right":
		if c, ok := m.cursorContext(); ok && m.filter == "" {
			m.expanded[c] = !m.expanded[c]
			m.rebuild()
		}

	case "enter", "a":
		if e, ok := m.selected(); ok {
			m.openCapture(e)
		}

	case "u":
		if e, ok := m.selected(); ok {
			m.startUnbind(e)
		}

	case "d":
		if e, ok := m.selected(); ok {
			m.startRemove(e)
		}

	case "r":
		if e, ok := m.selected(); ok {
			m.resetAction(e)
		}

	case "R":
		if c, ok := m.cursorContext(); ok {
			m.confirm = &confirmView{
				kind:    confirmResetContext,
				context: c,
				prompt:  fmt.Sprintf("Reset every override in %s? (y/n)", c),
			}
		}

	case "A":
		m.confirm = &confirmView{
			kind:   confirmResetAll,
			prompt: "Reset every override in every context? (y/n)",
		}
	}

	return m, nil
}

func (m *Model) openCapture(e entry) {
	m.session++
	m.capture = newCaptureView(
		m.session,
		e.context,
		e.binding.Action,
		e.binding.Label,
		m.svc.Config().ChordWindow(),
		m.candCh,
	)
	m.setStatus(statusInfo, "")
}

// startUnbind unbinds the selected action's still-active default key,
// via a picker when it has more than one.
func (m *Model) startUnbind(e entry) {
	mb := e.binding
	var items []pickItem
	for _, tok := range mb.ActiveKeys {
		if containsToken(mb.DefaultKeys, tok) {
			items = append(items, pickItem{tok: tok, note: "default"})
		}
	}
	switch len(items) {
	case 0:
		m.setStatus(statusInfo, "%s has no active default key to unbind", mb.Label)
	case 1:
		p := &pickerView{purpose: pickUnbind, context: e.context, action: mb.Action, label: mb.Label}
		m.applyPick(p, items[0].tok)
	default:
		m.picker = &pickerView{
			purpose: pickUnbind,
			context: e.context,
			action:  mb.Action,
			label:   mb.Label,
			items:   items,
		}
	}
}

// startRemove removes one of the selected action's override entries,
// via a picker when it has more than one.
func (m *Model) startRemove(e entry) {
	mb := e.binding
	var items []pickItem
	for _, tok := range mb.AddedKeys {
		items = append(items, pickItem{tok: tok, note: "added"})
	}
	for _, tok := range mb.UnboundKeys {
		items = append(items, pickItem{tok: tok, note: "unbound"})
	}
	switch len(items) {
	case 0:
		m.setStatus(statusInfo, "%s has no overrides", mb.Label)
	case 1:
		p := &pickerView{purpose: pickRemove, context: e.context, action: mb.Action, label: mb.Label}
		m.applyPick(p, items[0].tok)
	default:
		m.picker = &pickerView{
			purpose: pickRemove,
			context: e.context,
			action:  mb.Action,
			label:   mb.Label,
			items:   items,
		}
	}
}

// resetAction removes every override touching the selected action.
func (m *Model) resetAction(e entry) {
	mb := e.binding
	if !mb.IsModified {
		m.setStatus(statusInfo, "%s is already at its default", mb.Label)
		return
	}
	ctx := context.Background()
	for _, tok := range append(append([]key.Token(nil), mb.AddedKeys...), mb.UnboundKeys...) {
		if err := m.svc.RemoveOverride(ctx, e.context, tok); err != nil {
			m.setStatus(statusError, "reset failed: %v", err)
			return
		}
	}
	m.rebuild()
	m.setStatus(statusOK, "reset %s to its default", mb.Label)
}

func (m *Model) selected() (entry, bool) {
	if isSelectable(m.entries, m.cursor) {
		return m.entries[m.cursor], true
	}
	return entry{}, false
}

// cursorContext resolves the context the cursor sits in, header rows
// included.
func (m *Model) cursorContext() (keymap.Context, bool) {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return m.entries[m.cursor].context, true
	}
	return "", false
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.entries) {
		if m.entries[next].kind == entryAction {
			m.cursor = next
			m.ensureVisible()
			return
		}
		next += delta
	}
}

// rebuild recomputes merged views and the row list. Pure recomputation
// after every mutation; nothing is cached across edits.
func (m *Model) rebuild() {
	m.merged = make(map[keymap.Context][]keymap.MergedBinding)
	for _, c := range keymap.Contexts() {
		m.merged[c] = m.svc.Merged(c)
	}
	m.entries = buildEntries(m.merged, m.expanded, m.filter)
	if !isSelectable(m.entries, m.cursor) {
		m.cursor = nearestSelectable(m.entries, m.cursor)
	}
	m.ensureVisible()
}

func (m *Model) listHeight() int {
	// Title, search line, blank, status, help.
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.cursor < 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) setStatus(kind statusKind, format string, args ...any) {
	m.statusKind = kind
	if format == "" {
		m.status = ""
		return
	}
	m.status = fmt.Sprintf(format, args...)
}

func containsToken(list []key.Token, tok key.Token) bool {
	for _, t := range list {
		if t == tok {
			return true
		}
	}
	return false
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("Keyforge — keybindings"))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.search.View())
	} else if m.filter != "" {
		b.WriteString(m.st.muted.Render("filter: " + m.filter + "  (esc clears)"))
	}
	b.WriteString("\n")

	switch {
	case m.capture != nil:
		b.WriteString(m.viewCapture(width))
	case m.picker != nil:
		b.WriteString(m.viewPicker(width))
	default:
		b.WriteString(m.viewList(width))
	}
	b.WriteString("\n")

	b.WriteString(m.viewStatus(width))
	b.WriteString("\n")
	b.WriteString(m.viewHelp(width))
	return b.String()
}

func (m *Model) viewList(width int) string {
	h := m.listHeight()
	var lines []string
	for i := 0; i < h; i++ {
		idx := m.scroll + i
		if idx >= len(m.entries) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.renderEntry(idx, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderEntry(idx, width int) string {
	e := m.entries[idx]
	switch e.kind {
	case entryHeader:
		label := headerLabel(e.context, m.merged[e.context], m.filter != "" || m.expanded[e.context])
		return ansi.Truncate(m.st.header.Render(label), width, "")
	case entryAction:
		mb := e.binding
		keyWidth := 28
		if width < keyWidth+20 {
			keyWidth = width / 2
		}
		keys := keyCell(mb)
		style := m.st.keys
		if mb.IsModified {
			style = m.st.keysMod
		}
		mark := " "
		if mb.IsModified {
			mark = "*"
		}
		line := "  " + style.Render(padRight(keys, keyWidth)) + " " + mark + " " + mb.Label
		line = ansi.Truncate(line, width, "")
		if idx == m.cursor {
			return m.st.selected.Render(line)
		}
		return line
	default:
		return ""
	}
}

func (m *Model) viewCapture(width int) string {
	cv := m.capture
	var lines []string
	lines = append(lines, m.st.title.Render(fmt.Sprintf("Add key for %s (%s)", cv.label, cv.context)))
	lines = append(lines, "")

	switch {
	case !cv.has:
		lines = append(lines, "Press the key to bind...")
	default:
		lines = append(lines, "Candidate: "+m.st.keysMod.Render(cv.candidate.Display()))
		if cv.pending {
			lines = append(lines, m.st.muted.Render("press next key for a chord, or wait"))
		}
		r := cv.report
		if r.Reserved {
			lines = append(lines, m.st.errMsg.Render("reserved: "+r.ReservedReason))
		}
		if r.Terminal {
			lines = append(lines, m.st.warn.Render("terminal: "+r.TerminalNote))
		}
		for _, cf := range r.Conflicts {
			lines = append(lines, m.st.warn.Render(fmt.Sprintf("conflict: already bound to %s", cf.Label)))
		}
		if r.Clean() {
			lines = append(lines, m.st.ok.Render("no conflicts"))
		}
	}

	lines = append(lines, "")
	hint := "enter confirm · esc clear/cancel"
	if cv.has && !cv.confirmable() {
		hint = "esc clear/cancel (reserved keys cannot be bound)"
	}
	lines = append(lines, m.st.muted.Render(hint))

	box := m.st.overlay.Render(strings.Join(lines, "\n"))
	return ansi.Truncate(box, width, "")
}

func (m *Model) viewPicker(width int) string {
	p := m.picker
	title := "Unbind which key from %s?"
	if p.purpose == pickRemove {
		title = "Remove which override from %s?"
	}
	var lines []string
	lines = append(lines, m.st.title.Render(fmt.Sprintf(title, p.label)))
	lines = append(lines, "")
	for i, item := range p.items {
		line := fmt.Sprintf("%s  %s", padRight(item.tok.Display(), 20), m.st.muted.Render(item.note))
		if i == p.cursor {
			line = m.st.selected.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	lines = append(lines, m.st.muted.Render("enter select · esc cancel"))

	box := m.st.overlay.Render(strings.Join(lines, "\n"))
	return ansi.Truncate(box, width, "")
}

func (m *Model) viewStatus(width int) string {
	if m.confirm != nil {
		return ansi.Truncate(m.st.warn.Render(m.confirm.prompt), width, "")
	}
	if m.status == "" {
		return ""
	}
	var style = m.st.muted
	switch m.statusKind {
	case statusOK:
		style = m.st.ok
	case statusError:
		style = m.st.errMsg
	}
	return ansi.Truncate(style.Render(m.status), width, "")
}

func (m *Model) viewHelp(width int) string {
	help := "a add · u unbind · d remove override · r reset action · R reset context · A reset all · / search · tab fold · q quit"
	return ansi.Truncate(m.st.muted.Render(help), width, "")
}

func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
