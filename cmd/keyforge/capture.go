package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/chord"
	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

var flagCaptureContext string

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Inspect raw key tokens as you type",
	Long: `Open a raw capture screen that prints the canonical token for every
keypress, chords included, annotated with reserved, terminal, and
conflict information for the chosen context. Ctrl+C exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseContext(flagCaptureContext)
		if err != nil {
			return err
		}
		svc, err := newService(cmd.Context(), true)
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		insp := &inspector{screen: screen, context: c}
		capture := chord.New(svc.Config().ChordWindow(), func(cd chord.Candidate) {
			insp.record(cd, svc.Check(c, cd.Token, ""))
		})
		defer capture.Close()

		insp.draw()
		for {
			ev := screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				insp.draw()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				kev, ok := key.FromTcell(ev)
				if !ok {
					continue
				}
				capture.Feed(kev)
			case nil:
				return nil
			}
		}
	},
}

// inspector renders the rolling token history. The chord timer calls
// record from its own goroutine; the lines slice is guarded by mu and
// tcell screens serialize their own drawing operations.
type inspector struct {
	screen  tcell.Screen
	context keymap.Context

	mu    sync.Mutex
	lines []string
}

func (in *inspector) record(cd chord.Candidate, report keymap.Report) {
	line := cd.Token.Display()
	if !cd.Final {
		line += "  (waiting for chord partner...)"
	}
	switch {
	case report.Reserved:
		line += "  [reserved: " + report.ReservedReason + "]"
	case len(report.Conflicts) > 0:
		line += "  [bound to " + report.Conflicts[0].Label + "]"
	}
	if report.Terminal {
		line += "  [terminal: " + report.TerminalNote + "]"
	}

	in.mu.Lock()
	// A non-final candidate opens a fresh line; the final emission for
	// the same capture (chord completion or window lapse) settles it.
	if cd.Final && len(in.lines) > 0 {
		in.lines[len(in.lines)-1] = line
	} else {
		in.lines = append(in.lines, line)
	}
	if len(in.lines) > 64 {
		in.lines = in.lines[len(in.lines)-64:]
	}
	in.mu.Unlock()
	in.draw()
}

func (in *inspector) draw() {
	s := in.screen
	s.Clear()
	w, h := s.Size()

	in.mu.Lock()
	lines := append([]string(nil), in.lines...)
	in.mu.Unlock()

	puts := func(x, y int, style tcell.Style, text string) {
		for _, r := range text {
			if x >= w {
				return
			}
			s.SetContent(x, y, r, nil, style)
			x++
		}
	}

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)
	puts(0, 0, bold, fmt.Sprintf("keyforge capture — context %s — Ctrl+C exits", in.context))
	puts(0, 1, dim, "press keys to see their canonical tokens; two keys inside the window form a chord")

	start := 0
	visible := h - 3
	if visible > 0 && len(lines) > visible {
		start = len(lines) - visible
	}
	for i, line := range lines[start:] {
		puts(0, 3+i, tcell.StyleDefault, line)
	}
	s.Show()
}

func init() {
	captureCmd.Flags().StringVar(&flagCaptureContext, "context", "global", "context to annotate conflicts for")
	rootCmd.AddCommand(captureCmd)
}
