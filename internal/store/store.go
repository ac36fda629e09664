// Package store persists the user's keybinding overrides as a JSON
// document, conventionally keybindings.json.
//
// The document is shared territory: host tools may keep their own fields
// in it. Reads go through gjson and writes through sjson so every
// mutation touches only the keys this tool owns and leaves foreign
// fields intact; each mutation still ends in the whole document being
// atomically replaced, so the last full save wins.
//
// Layout:
//
//	{
//	  "version": 1,
//	  "contexts": {
//	    "editor": {
//	      "bindings": {
//	        "ctrl+shift+s": "save-file",
//	        "ctrl+s": null
//	      }
//	    }
//	  }
//	}
//
// A string value routes the key to that action; an explicit null unbinds
// the key from its default owner.
package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

const docVersion = 1

// Store reads and mutates one keybindings document. Every mutation is a
// full read-modify-write cycle against the file, serialized by an
// internal mutex, so external edits between calls are never clobbered
// beyond the key being changed.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store for the document at path. The file need not exist
// yet; a missing document reads as empty.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// LoadAll reads every override in the document. A missing file is an
// empty override set. Unknown contexts load too; callers decide what to
// surface.
func (s *Store) LoadAll(ctx context.Context) (keymap.Overrides, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return parseOverrides(doc), nil
}

// SetBinding routes key to action in the given context.
func (s *Store) SetBinding(ctx context.Context, c keymap.Context, tok key.Token, act keymap.Action) error {
	return s.mutate(ctx, func(doc []byte) ([]byte, error) {
		return sjson.SetBytes(doc, bindingPath(c, tok), string(act))
	})
}

// UnbindKey writes the explicit null marker for key in the given
// context, removing it from its default owner without reassigning it.
func (s *Store) UnbindKey(ctx context.Context, c keymap.Context, tok key.Token) error {
	return s.mutate(ctx, func(doc []byte) ([]byte, error) {
		return sjson.SetBytes(doc, bindingPath(c, tok), nil)
	})
}

// RemoveOverride deletes the override entry for key in the given
// context, restoring whatever the defaults say. Returns ErrNoOverride
// when the entry does not exist.
func (s *Store) RemoveOverride(ctx context.Context, c keymap.Context, tok key.Token) error {
	return s.mutate(ctx, func(doc []byte) ([]byte, error) {
		path := bindingPath(c, tok)
		if !gjson.GetBytes(doc, path).Exists() {
			return nil, ErrNoOverride
		}
		return sjson.DeleteBytes(doc, path)
	})
}

// ResetContext deletes every override in the given context.
func (s *Store) ResetContext(ctx context.Context, c keymap.Context) error {
	return s.mutate(ctx, func(doc []byte) ([]byte, error) {
		return resetBindings(doc, string(c))
	})
}

// ResetAll deletes every override in every context, writing a .bak
// sibling of the document first so the wipe can be recovered by hand.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	if gjson.GetBytes(doc, "contexts").Exists() {
		if err := os.WriteFile(s.path+".bak", pretty.Pretty(doc), 0o644); err != nil {
			return docErr(s.path+".bak", err)
		}
	}
	var names []string
	gjson.GetBytes(doc, "contexts").ForEach(func(k, _ gjson.Result) bool {
		names = append(names, k.String())
		return true
	})
	for _, name := range names {
		doc, err = resetBindings(doc, name)
		if err != nil {
			return docErr(s.path, err)
		}
	}
	return s.write(ctx, doc)
}

// resetBindings removes one context's bindings map. Only the bindings
// key is deleted; the context object is pruned only when the host keeps
// nothing else under it.
func resetBindings(doc []byte, name string) ([]byte, error) {
	base := "contexts." + escapePath(name)
	doc, err := sjson.DeleteBytes(doc, base+".bindings")
	if err != nil {
		return nil, err
	}
	if obj := gjson.GetBytes(doc, base); obj.IsObject() && len(obj.Map()) == 0 {
		return sjson.DeleteBytes(doc, base)
	}
	return doc, nil
}

// mutate runs one read-modify-write cycle under the store lock.
func (s *Store) mutate(ctx context.Context, fn func(doc []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	doc, err = fn(doc)
	if err != nil {
		if err == ErrNoOverride {
			return err
		}
		return docErr(s.path, err)
	}
	return s.write(ctx, doc)
}

// read returns the raw document, "{}" when the file does not exist.
func (s *Store) read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, docErr(s.path, err)
	}
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, docErr(s.path, ErrInvalidDocument)
	}
	return data, nil
}

// write stamps the document version and atomically replaces the file:
// temp file in the same directory, then rename.
func (s *Store) write(ctx context.Context, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !gjson.GetBytes(doc, "version").Exists() {
		var err error
		doc, err = sjson.SetBytes(doc, "version", docVersion)
		if err != nil {
			return docErr(s.path, err)
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return docErr(s.path, err)
	}
	tmp, err := os.CreateTemp(dir, ".keybindings-*.json.tmp")
	if err != nil {
		return docErr(s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(pretty.Pretty(doc)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return docErr(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return docErr(s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return docErr(s.path, err)
	}
	return nil
}

// parseOverrides walks contexts.*.bindings. Entries that are neither a
// string nor null were written by something else and are skipped.
func parseOverrides(doc []byte) keymap.Overrides {
	ov := keymap.Overrides{}
	gjson.GetBytes(doc, "contexts").ForEach(func(ctxName, ctxVal gjson.Result) bool {
		c := keymap.Context(ctxName.String())
		ctxVal.Get("bindings").ForEach(func(k, v gjson.Result) bool {
			tok := key.Token(k.String())
			switch v.Type {
			case gjson.Null:
				ov.SetUnbound(c, tok)
			case gjson.String:
				ov.Set(c, tok, keymap.Action(v.String()))
			}
			return true
		})
		return true
	})
	return ov
}

// bindingPath builds the gjson path for one override entry.
func bindingPath(c keymap.Context, tok key.Token) string {
	return "contexts." + escapePath(string(c)) + ".bindings." + escapePath(string(tok))
}
