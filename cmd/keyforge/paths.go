package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved config and document paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cfgPath, err := loadConfig()
		if err != nil {
			return err
		}
		docPath, err := cfg.BindingsPath()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config:   %s%s\n", cfgPath, existsNote(cfgPath))
		fmt.Fprintf(out, "bindings: %s%s\n", docPath, existsNote(docPath))
		if cfg.Log.File != "" {
			fmt.Fprintf(out, "log:      %s\n", cfg.Log.File)
		}
		return nil
	},
}

func existsNote(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "  (not created yet)"
	}
	return ""
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
