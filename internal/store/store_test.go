package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/keyforge/internal/key"
	"github.com/dshills/keyforge/internal/keymap"
)

func tokens(specs ...string) []key.Token {
	out := make([]key.Token, len(specs))
	for i, s := range specs {
		out[i] = key.Token(s)
	}
	return out
}

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "keybindings.json"))
}

func TestLoadAllMissingFile(t *testing.T) {
	s := testStore(t)
	ov, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !ov.Empty() {
		t.Errorf("LoadAll() on missing file = %v, want empty", ov)
	}
}

func TestSetBindingRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "ctrl+shift+s", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.UnbindKey(ctx, keymap.ContextEditor, "ctrl+s"); err != nil {
		t.Fatalf("UnbindKey() error = %v", err)
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	co := ov.Context(keymap.ContextEditor)
	if got := co["ctrl+shift+s"]; got.Action != "save-file" || got.Unbind {
		t.Errorf("ctrl+shift+s = %+v, want action save-file", got)
	}
	if got := co["ctrl+s"]; !got.Unbind {
		t.Errorf("ctrl+s = %+v, want explicit unbind", got)
	}
}

func TestSetBindingLastOverrideWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "ctrl+g", "goto-line"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.SetBinding(ctx, keymap.ContextEditor, "ctrl+g", "find"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	co := ov.Context(keymap.ContextEditor)
	if len(co) != 1 {
		t.Fatalf("got %d overrides, want 1 (flat map, one owner per key)", len(co))
	}
	if got := co["ctrl+g"]; got.Action != "find" {
		t.Errorf("ctrl+g = %+v, want the later action find", got)
	}
}

func TestRemoveOverride(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.RemoveOverride(ctx, keymap.ContextEditor, "f9"); err != nil {
		t.Fatalf("RemoveOverride() error = %v", err)
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if _, ok := ov.Context(keymap.ContextEditor)["f9"]; ok {
		t.Error("override still present after RemoveOverride")
	}
}

func TestRemoveOverrideMissing(t *testing.T) {
	s := testStore(t)
	err := s.RemoveOverride(context.Background(), keymap.ContextEditor, "f9")
	if !errors.Is(err, ErrNoOverride) {
		t.Errorf("RemoveOverride() on missing entry error = %v, want ErrNoOverride", err)
	}
}

func TestResetContext(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.SetBinding(ctx, keymap.ContextList, "f9", "refresh"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.ResetContext(ctx, keymap.ContextEditor); err != nil {
		t.Fatalf("ResetContext() error = %v", err)
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(ov.Context(keymap.ContextEditor)) != 0 {
		t.Errorf("editor overrides = %v, want none", ov.Context(keymap.ContextEditor))
	}
	if len(ov.Context(keymap.ContextList)) != 1 {
		t.Errorf("list overrides = %v, want the untouched entry", ov.Context(keymap.ContextList))
	}
}

func TestResetAllWritesBackup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !ov.Empty() {
		t.Errorf("overrides after ResetAll = %v, want empty", ov)
	}

	bak, err := os.ReadFile(s.Path() + ".bak")
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if got := gjson.GetBytes(bak, "contexts.editor.bindings.f9").String(); got != "save-file" {
		t.Errorf("backup f9 = %q, want the wiped binding save-file", got)
	}
}

func TestResetAllEmptySkipsBackup(t *testing.T) {
	s := testStore(t)
	if err := s.ResetAll(context.Background()); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}
	if _, err := os.Stat(s.Path() + ".bak"); !os.IsNotExist(err) {
		t.Errorf("backup written with nothing to back up (stat err = %v)", err)
	}
}

func TestForeignFieldsSurviveMutation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.json")
	doc := `{"version":1,"host":{"theme":"dark"},"contexts":{"editor":{"layer":"vim","bindings":{"ctrl+s":null}}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	ctx := context.Background()
	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "host.theme").String(); got != "dark" {
		t.Errorf("host.theme = %q, want foreign field preserved", got)
	}
	if got := gjson.GetBytes(out, "contexts.editor.layer").String(); got != "vim" {
		t.Errorf("contexts.editor.layer = %q, want foreign field preserved", got)
	}
	if !gjson.GetBytes(out, "contexts.editor.bindings.ctrl+s").Exists() {
		t.Error("pre-existing null override lost by an unrelated mutation")
	}
}

func TestResetPreservesForeignFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.json")
	doc := `{"contexts":{"editor":{"layer":"vim","bindings":{"f9":"save-file"}},"list":{"bindings":{"f9":"refresh"}},"global":{"theme":"dark"}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	ctx := context.Background()
	if err := s.ResetContext(ctx, keymap.ContextEditor); err != nil {
		t.Fatalf("ResetContext() error = %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "contexts.editor.layer").String(); got != "vim" {
		t.Errorf("contexts.editor.layer = %q, want host field preserved through reset", got)
	}
	if gjson.GetBytes(out, "contexts.editor.bindings").Exists() {
		t.Error("editor bindings survive ResetContext")
	}
	if got := gjson.GetBytes(out, "contexts.list.bindings.f9").String(); got != "refresh" {
		t.Errorf("contexts.list.bindings.f9 = %q, want other context untouched", got)
	}

	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}
	out, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "contexts.editor.layer").String(); got != "vim" {
		t.Errorf("contexts.editor.layer = %q, want host field preserved through reset-all", got)
	}
	if got := gjson.GetBytes(out, "contexts.global.theme").String(); got != "dark" {
		t.Errorf("contexts.global.theme = %q, want host field preserved through reset-all", got)
	}
	if gjson.GetBytes(out, "contexts.list.bindings").Exists() {
		t.Error("list bindings survive ResetAll")
	}
}

func TestResetContextPrunesEmptyObject(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	if err := s.ResetContext(ctx, keymap.ContextEditor); err != nil {
		t.Fatalf("ResetContext() error = %v", err)
	}

	out, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(out, "contexts.editor").Exists() {
		t.Errorf("empty context object left behind: %s", out)
	}
}

func TestPunctuationTokensRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// Tokens whose base keys are gjson path metacharacters.
	for _, tok := range tokens("ctrl+.", "shift+*", "ctrl+\\", "?") {
		if err := s.SetBinding(ctx, keymap.ContextEditor, tok, "act"); err != nil {
			t.Fatalf("SetBinding(%q) error = %v", tok, err)
		}
	}

	ov, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	co := ov.Context(keymap.ContextEditor)
	for _, tok := range tokens("ctrl+.", "shift+*", "ctrl+\\", "?") {
		if got := co[tok]; got.Action != "act" {
			t.Errorf("override for %q = %+v, want act", tok, got)
		}
	}
	if len(co) != 4 {
		t.Errorf("got %d overrides, want 4 distinct keys", len(co))
	}
}

func TestCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	_, err := s.LoadAll(context.Background())
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("LoadAll() on corrupt file error = %v, want ErrInvalidDocument", err)
	}
	var de *DocumentError
	if !errors.As(err, &de) {
		t.Fatalf("LoadAll() error type = %T, want *DocumentError", err)
	}
	if de.Path != path {
		t.Errorf("DocumentError.Path = %q, want %q", de.Path, path)
	}
}

func TestUnknownValueTypesSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.json")
	doc := `{"contexts":{"editor":{"bindings":{"ctrl+x":42,"f9":"save-file"}}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ov, err := New(path).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	co := ov.Context(keymap.ContextEditor)
	if _, ok := co["ctrl+x"]; ok {
		t.Error("numeric binding value loaded; foreign entries should be skipped")
	}
	if got := co["f9"]; got.Action != "save-file" {
		t.Errorf("f9 = %+v, want save-file", got)
	}
}

func TestCancelledContext(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SetBinding(ctx, keymap.ContextEditor, "f9", "save-file"); !errors.Is(err, context.Canceled) {
		t.Errorf("SetBinding() with cancelled context error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("document written despite cancelled context")
	}
}

func TestWriteStampsVersion(t *testing.T) {
	s := testStore(t)
	if err := s.SetBinding(context.Background(), keymap.ContextEditor, "f9", "save-file"); err != nil {
		t.Fatalf("SetBinding() error = %v", err)
	}
	out, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "version").Int(); got != docVersion {
		t.Errorf("version = %d, want %d", got, docVersion)
	}
}
