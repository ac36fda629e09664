// Package main is the entry point for Keyforge, a terminal keybinding
// manager. Run bare on a terminal it opens the interactive editor;
// subcommands expose the same operations for scripts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keyforge/internal/app"
	"github.com/dshills/keyforge/internal/config"
	"github.com/dshills/keyforge/internal/keymap"
	"github.com/dshills/keyforge/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	flagConfig   string
	flagBindings string
	flagLogLevel string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "keyforge",
	Short: "Terminal keybinding manager",
	Long: `keyforge manages the keybindings.json override document for host
applications: browse merged bindings, capture new keys with chord
support, check conflicts, and reset overrides.

Run without arguments on a terminal to open the interactive editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runEdit(cmd.Context())
		}
		return cmd.Help()
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to keyforge.toml")
	pf.StringVar(&flagBindings, "bindings", "", "path to the keybindings document")
	pf.StringVar(&flagLogLevel, "log-level", "", "minimum log level (debug, info, warn, error)")
	pf.BoolVar(&flagDebug, "debug", false, "shorthand for --log-level debug")
}

// loadConfig resolves and loads keyforge.toml, with flag overrides
// applied on top.
func loadConfig() (*config.Config, string, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
	}
	cfg, err := config.Load(config.DefaultFS(), path)
	if err != nil {
		return nil, "", err
	}
	if flagBindings != "" {
		cfg.Storage.Path = flagBindings
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newLogger builds the application logger. In TUI mode logs go to the
// configured file or nowhere; stderr belongs to the terminal UI.
func newLogger(cfg *config.Config, tui bool) (*app.Logger, error) {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		lc.Output = f
	} else if tui {
		return app.NullLogger, nil
	}
	return app.NewLogger(lc), nil
}

// newService wires config, defaults, store, and logger, and loads the
// override document.
func newService(ctx context.Context, tui bool) (*app.Service, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, tui)
	if err != nil {
		return nil, err
	}
	docPath, err := cfg.BindingsPath()
	if err != nil {
		return nil, err
	}
	svc := app.NewService(cfg, keymap.Builtin(), store.New(docPath), log)
	if err := svc.Open(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// parseContext resolves a context argument.
func parseContext(name string) (keymap.Context, error) {
	c, ok := keymap.ContextFromName(name)
	if !ok {
		return "", fmt.Errorf("unknown context %q (contexts: %s)", name, contextNames())
	}
	return c, nil
}

func contextNames() string {
	out := ""
	for i, c := range keymap.Contexts() {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}
