package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the interactive keybinding editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd.Context())
	},
}

func runEdit(ctx context.Context) error {
	svc, err := newService(ctx, true)
	if err != nil {
		return err
	}

	watcher, werr := svc.Watch()
	if watcher != nil {
		defer watcher.Close()
	}

	m := ui.New(svc, watcher)
	if werr != nil {
		m.SetWatchError(werr)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(editCmd)
}
