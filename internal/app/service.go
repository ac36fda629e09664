package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/keyforge/internal/config"
	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
	"github.com/dshills/keyforge/internal/store"
)

// Errors returned by service operations.
var (
	// ErrUnknownContext indicates the context name is not registered.
	ErrUnknownContext = errors.New("unknown context")

	// ErrUnknownAction indicates the action is not registered in the context.
	ErrUnknownAction = errors.New("unknown action")

	// ErrReservedKey indicates the key can never be bound.
	ErrReservedKey = errors.New("key is reserved")
)

// Service is the one code path the CLI and TUI share: it owns the
// in-memory override set, delegates persistence to the store, and
// recomputes merged views from (defaults, overrides) after every
// mutation.
//
// Mutations are synchronous: the store writes first, memory updates
// only on success, so a failed save leaves memory consistent with disk
// and there is nothing to roll back.
type Service struct {
	cfg   *config.Config
	defs  *keymap.DefaultSet
	store *store.Store
	log   *Logger

	mu sync.Mutex
	ov keymap.Overrides
}

// NewService wires the service. A nil logger falls back to NullLogger.
func NewService(cfg *config.Config, defs *keymap.DefaultSet, st *store.Store, log *Logger) *Service {
	if log == nil {
		log = NullLogger
	}
	return &Service{
		cfg:   cfg,
		defs:  defs,
		store: st,
		log:   log.WithComponent("service"),
		ov:    keymap.Overrides{},
	}
}

// Config returns the application configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Defaults returns the built-in keymap.
func (s *Service) Defaults() *keymap.DefaultSet {
	return s.defs
}

// DocumentPath returns the keybindings document path.
func (s *Service) DocumentPath() string {
	return s.store.Path()
}

// Open loads the override document into memory.
func (s *Service) Open(ctx context.Context) error {
	ov, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ov = ov
	s.mu.Unlock()
	s.log.Debug("loaded %d override contexts from %s", len(ov), s.store.Path())
	return nil
}

// Reload re-reads the document, picking up external edits.
func (s *Service) Reload(ctx context.Context) error {
	return s.Open(ctx)
}

// Watch starts a document watcher for external edits, or returns
// (nil, nil) when watching is disabled in the configuration.
func (s *Service) Watch() (*store.Watcher, error) {
	if !s.cfg.Storage.Watch {
		return nil, nil
	}
	return store.NewWatcher(s.store.Path(), 0)
}

// Overrides returns a copy of the in-memory override set.
func (s *Service) Overrides() keymap.Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ov.Clone()
}

// Merged computes the display-ready bindings for one context.
func (s *Service) Merged(c keymap.Context) []keymap.MergedBinding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return keymap.ComputeMerged(s.defs, s.ov, c)
}

// Check evaluates a candidate token against one context: the reserved
// hard block, the terminal advisory, and action conflicts excluding the
// action being rebound.
func (s *Service) Check(c keymap.Context, tok key.Token, exclude keymap.Action) keymap.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return keymap.Check(s.defs, s.ov, c, tok, exclude)
}

// SetBinding routes tok to act in context c and persists the change.
// Reserved keys are refused outright; conflicts and terminal advisories
// are the caller's decision and never block here.
func (s *Service) SetBinding(ctx context.Context, c keymap.Context, tok key.Token, act keymap.Action) error {
	if !keymap.ValidContext(c) {
		return fmt.Errorf("%w: %q", ErrUnknownContext, c)
	}
	if !s.defs.Has(c, act) {
		return fmt.Errorf("%w: %q in context %q", ErrUnknownAction, act, c)
	}
	if keymap.IsReserved(tok) {
		return fmt.Errorf("%w: %s %s", ErrReservedKey, tok, keymap.ReservedReason(tok))
	}
	if err := s.store.SetBinding(ctx, c, tok, act); err != nil {
		s.log.Error("set %s=%s in %s: %v", tok, act, c, err)
		return err
	}
	s.mu.Lock()
	s.ov.Set(c, tok, act)
	s.mu.Unlock()
	s.log.Info("bound %s to %s in %s", tok, act, c)
	return nil
}

// UnbindKey writes the explicit null marker for tok in context c,
// removing it from its default owner without reassigning it.
func (s *Service) UnbindKey(ctx context.Context, c keymap.Context, tok key.Token) error {
	if !keymap.ValidContext(c) {
		return fmt.Errorf("%w: %q", ErrUnknownContext, c)
	}
	if err := s.store.UnbindKey(ctx, c, tok); err != nil {
		s.log.Error("unbind %s in %s: %v", tok, c, err)
		return err
	}
	s.mu.Lock()
	s.ov.SetUnbound(c, tok)
	s.mu.Unlock()
	s.log.Info("unbound %s in %s", tok, c)
	return nil
}

// RemoveOverride deletes the override entry for tok in context c,
// restoring whatever the defaults say for that key.
func (s *Service) RemoveOverride(ctx context.Context, c keymap.Context, tok key.Token) error {
	if !keymap.ValidContext(c) {
		return fmt.Errorf("%w: %q", ErrUnknownContext, c)
	}
	if err := s.store.RemoveOverride(ctx, c, tok); err != nil {
		if !errors.Is(err, store.ErrNoOverride) {
			s.log.Error("remove override %s in %s: %v", tok, c, err)
		}
		return err
	}
	s.mu.Lock()
	s.ov.Remove(c, tok)
	s.mu.Unlock()
	s.log.Info("restored %s in %s", tok, c)
	return nil
}

// ResetContext deletes every override in context c.
func (s *Service) ResetContext(ctx context.Context, c keymap.Context) error {
	if !keymap.ValidContext(c) {
		return fmt.Errorf("%w: %q", ErrUnknownContext, c)
	}
	if err := s.store.ResetContext(ctx, c); err != nil {
		s.log.Error("reset context %s: %v", c, err)
		return err
	}
	s.mu.Lock()
	s.ov.ClearContext(c)
	s.mu.Unlock()
	s.log.Info("reset context %s", c)
	return nil
}

// ResetAll deletes every override in every context. The store writes a
// .bak sibling of the document first.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		s.log.Error("reset all: %v", err)
		return err
	}
	s.mu.Lock()
	s.ov.ClearAll()
	s.mu.Unlock()
	s.log.Info("reset all contexts")
	return nil
}
