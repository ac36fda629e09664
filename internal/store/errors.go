package store

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidDocument means the keybindings file is not valid JSON.
	ErrInvalidDocument = errors.New("invalid keybindings document")

	// ErrNoOverride means a removal targeted a key with no override.
	ErrNoOverride = errors.New("no override for key")
)

// DocumentError wraps a failure tied to the keybindings document on disk.
type DocumentError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("keybindings document %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

func docErr(path string, err error) error {
	return &DocumentError{Path: path, Err: err}
}
