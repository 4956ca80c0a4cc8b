package render

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2notion/internal/mdast"
)

// Sentinel errors for rendering.
var (
	// ErrMissingHandler indicates a node kind reached a renderer that has no
	// handler for it, usually an extension node with the extension disabled.
	ErrMissingHandler = errors.New("no handler registered for node kind")

	// ErrColumnID indicates the IDSource kept returning unusable identifiers.
	ErrColumnID = errors.New("cannot generate unique column identifier")
)

// MissingHandlerError identifies the node kind without a handler.
// It matches ErrMissingHandler with errors.Is.
type MissingHandlerError struct {
	Kind mdast.Kind
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingHandler, e.Kind)
}

// Unwrap returns ErrMissingHandler for errors.Is() matching.
func (e *MissingHandlerError) Unwrap() error {
	return ErrMissingHandler
}
