package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/keymap"
)

var flagListModified bool

var listCmd = &cobra.Command{
	Use:   "list [context]",
	Short: "Show merged bindings",
	Long: `Show the merged view of defaults and overrides, per context.
Modified bindings are marked with * and show their changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}

		contexts := keymap.Contexts()
		if len(args) == 1 {
			c, err := parseContext(args[0])
			if err != nil {
				return err
			}
			contexts = []keymap.Context{c}
		}

		header := lipgloss.NewStyle().Bold(true)
		dim := lipgloss.NewStyle().Faint(true)

		out := cmd.OutOrStdout()
		for _, c := range contexts {
			bindings := svc.Merged(c)
			var rows []string
			for _, mb := range bindings {
				if flagListModified && !mb.IsModified {
					continue
				}
				rows = append(rows, renderRow(mb, dim))
			}
			if len(rows) == 0 {
				continue
			}
			fmt.Fprintln(out, header.Render(string(c)))
			for _, r := range rows {
				fmt.Fprintln(out, r)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func renderRow(mb keymap.MergedBinding, dim lipgloss.Style) string {
	keys := "-"
	if len(mb.ActiveKeys) > 0 {
		parts := make([]string, len(mb.ActiveKeys))
		for i, tok := range mb.ActiveKeys {
			parts[i] = tok.Display()
		}
		keys = strings.Join(parts, ", ")
	}
	mark := " "
	if mb.IsModified {
		mark = "*"
	}
	row := fmt.Sprintf("  %-28s %s %s", keys, mark, mb.Label)
	if mb.IsModified {
		var notes []string
		for _, tok := range mb.AddedKeys {
			notes = append(notes, "+"+tok.Display())
		}
		for _, tok := range mb.UnboundKeys {
			notes = append(notes, "-"+tok.Display())
		}
		row += dim.Render("  (" + strings.Join(notes, " ") + ")")
	}
	return row
}

func init() {
	listCmd.Flags().BoolVar(&flagListModified, "modified", false, "only bindings with overrides")
	rootCmd.AddCommand(listCmd)
}
