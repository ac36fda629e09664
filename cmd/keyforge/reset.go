package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagResetAll bool
	flagResetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [context]",
	Short: "Clear overrides for a context, or everything with --all",
	Long: `Delete every override in one context, or in every context with
--all. Resetting everything writes a .bak sibling of the document
first and asks for confirmation unless --yes is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case flagResetAll && len(args) > 0:
			return fmt.Errorf("--all takes no context argument")
		case !flagResetAll && len(args) == 0:
			return fmt.Errorf("name a context or pass --all")
		}

		svc, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}

		if flagResetAll {
			if !flagResetYes && !confirm("Reset every override in every context?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := svc.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset all contexts (backup at %s.bak)\n", svc.DocumentPath())
			return nil
		}

		c, err := parseContext(args[0])
		if err != nil {
			return err
		}
		if err := svc.ResetContext(cmd.Context(), c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset context %s\n", c)
		return nil
	},
}

// confirm asks y/N on the terminal; a non-terminal stdin refuses.
func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "reset every context")
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
