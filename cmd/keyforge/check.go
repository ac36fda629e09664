package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

var checkCmd = &cobra.Command{
	Use:   "check [context]",
	Short: "Report keys bound to more than one action",
	Long: `Scan the merged bindings for keys held by multiple actions in the
same context, and for bound keys terminals commonly intercept. Exits
non-zero when ownership conflicts exist.`,
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

		out := cmd.OutOrStdout()
		conflicts := 0
		for _, c := range contexts {
			merged := svc.Merged(c)

			// Group owners by token; a token with two owners is a conflict.
			owners := make(map[key.Token][]keymap.MergedBinding)
			for _, mb := range merged {
				for _, tok := range mb.ActiveKeys {
					owners[tok] = append(owners[tok], mb)
				}
			}
			toks := make([]key.Token, 0, len(owners))
			for tok := range owners {
				toks = append(toks, tok)
			}
			sort.Slice(toks, func(i, j int) bool { return toks[i] < toks[j] })

			for _, tok := range toks {
				held := owners[tok]
				if len(held) > 1 {
					conflicts++
					fmt.Fprintf(out, "conflict: %s/%s bound to", c, tok.Display())
					for i, mb := range held {
						if i > 0 {
							fmt.Fprint(out, " and")
						}
						fmt.Fprintf(out, " %s", mb.Label)
					}
					fmt.Fprintln(out)
				}
				if note := keymap.TerminalConflictNote(tok); note != "" {
					fmt.Fprintf(out, "advisory: %s/%s %s\n", c, tok.Display(), note)
				}
			}
		}

		if conflicts > 0 {
			return fmt.Errorf("%d key conflicts", conflicts)
		}
		fmt.Fprintln(out, "No conflicts")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
