package md2notion

import (
	"errors"

	"github.com/alnah/go-md2notion/internal/pipeline"
	"github.com/alnah/go-md2notion/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrFrontMatter   = errors.New("invalid front matter")
	ErrParse         = errors.New("markdown parsing failed")
	ErrRender        = errors.New("block rendering failed")

	// ErrMissingHandler indicates a node kind without a registered handler.
	// It signals a wiring bug, never a data problem.
	ErrMissingHandler = errors.New("no handler registered for node kind")

	// Option validation errors.
	ErrInvalidExtension = errors.New("invalid extension")
)

// mapError converts internal errors to public sentinel errors.
// Errors that match no internal sentinel are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isError(err, render.ErrMissingHandler):
		return wrapError(ErrMissingHandler, err)
	case isError(err, render.ErrColumnID):
		return wrapError(ErrRender, err)
	case isError(err, pipeline.ErrFrontMatter):
		return wrapError(ErrFrontMatter, err)
	case isError(err, pipeline.ErrParse):
		return wrapError(ErrParse, err)
	default:
		return err
	}
}

// isError checks if err wraps or equals target using errors.Is semantics.
func isError(err, target error) bool {
	return errors.Is(err, target)
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
