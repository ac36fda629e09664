package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

var flagExportFormat string

// exportDoc is the cheatsheet-friendly shape written by export.
type exportDoc struct {
	Contexts []exportContext `json:"contexts" yaml:"contexts"`
}

type exportContext struct {
	Context keymap.Context  `json:"context" yaml:"context"`
	Actions []exportBinding `json:"actions" yaml:"actions"`
}

type exportBinding struct {
	Action      keymap.Action `json:"action" yaml:"action"`
	Label       string        `json:"label" yaml:"label"`
	Group       string        `json:"group,omitempty" yaml:"group,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Keys        []string      `json:"keys" yaml:"keys"`
	DefaultKeys []string      `json:"default_keys,omitempty" yaml:"default_keys,omitempty"`
	Modified    bool          `json:"modified,omitempty" yaml:"modified,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export [context]",
	Short: "Write the merged bindings as JSON or YAML",
	Args:  cobra.MaximumNArgs(1),
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

		doc := exportDoc{}
		for _, c := range contexts {
			ec := exportContext{Context: c}
			for _, mb := range svc.Merged(c) {
				eb := exportBinding{
					Action:      mb.Action,
					Label:       mb.Label,
					Group:       mb.Group,
					Description: mb.Description,
					Keys:        displayAll(mb.ActiveKeys),
					Modified:    mb.IsModified,
				}
				if mb.IsModified {
					eb.DefaultKeys = displayAll(mb.DefaultKeys)
				}
				ec.Actions = append(ec.Actions, eb)
			}
			doc.Contexts = append(doc.Contexts, ec)
		}

		out := cmd.OutOrStdout()
		switch flagExportFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		default:
			return fmt.Errorf("unknown format %q (json, yaml)", flagExportFormat)
		}
	},
}

func displayAll(toks []key.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Display()
	}
	return out
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}
