package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keyforge/internal/key"
)

var unbindCmd = &cobra.Command{
	Use:   "unbind <context> <key>",
	Short: "Unbind a default key without reassigning it",
	Long: `Write an explicit unbind override for a key, removing it from its
default owner. Use restore to undo.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseContext(args[0])
		if err != nil {
			return err
		}
		tok, err := key.Parse(args[1])
		if err != nil {
			return err
		}

		svc, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := svc.UnbindKey(cmd.Context(), c, tok); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unbound %s in %s\n", tok.Display(), c)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <context> <key>",
	Short: "Remove one override, restoring the default",
	Long: `Delete the override entry for a key: an added binding disappears,
an unbound default answers again.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := parseContext(args[0])
		if err != nil {
			return err
		}
		tok, err := key.Parse(args[1])
		if err != nil {
			return err
		}

		svc, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := svc.RemoveOverride(cmd.Context(), c, tok); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s in %s\n", tok.Display(), c)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unbindCmd)
	rootCmd.AddCommand(restoreCmd)
}
