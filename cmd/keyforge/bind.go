package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

var flagBindForce bool

var bindCmd = &cobra.Command{
	Use:   "bind <context> <key> <action>",
	Short: "Bind a key to an action",
	Long: `Bind a key (or two-key chord, quoted: "g g") to an action in a
context. Reserved keys are always refused. Conflicts with other actions
and terminal-intercepted shortcuts are warnings; pass --force to bind
anyway.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseContext(args[0])
		if err != nil {
			return err
		}
		tok, err := key.Parse(args[1])
		if err != nil {
			return err
		}
		act := keymap.Action(args[2])

		svc, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}

		report := svc.Check(c, tok, act)
		if report.Reserved {
			return fmt.Errorf("%s is reserved: %s", tok.Display(), report.ReservedReason)
		}
		for _, cf := range report.Conflicts {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is already bound to %s in %s\n", tok.Display(), cf.Label, cf.Context)
		}
		if report.Terminal {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s %s\n", tok.Display(), report.TerminalNote)
		}
		if !report.Clean() && !flagBindForce {
			return fmt.Errorf("refusing to bind %s over warnings (use --force)", tok.Display())
		}

		if err := svc.SetBinding(cmd.Context(), c, tok, act); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bound %s to %s in %s\n", tok.Display(), act, c)
		return nil
	},
}

func init() {
	bindCmd.Flags().BoolVar(&flagBindForce, "force", false, "bind despite conflict or terminal warnings")
	rootCmd.AddCommand(bindCmd)
}
