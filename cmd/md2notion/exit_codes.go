package main

import (
	"errors"
	"os"

	md2notion "github.com/alnah/go-md2notion"
	"github.com/alnah/go-md2notion/internal/config"
	"github.com/alnah/go-md2notion/internal/notionapi"
)

// Exit codes for the md2notion CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion or upload
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRemote  = 4 // Block API errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Remote API errors (exit 4)
	if errors.Is(err, notionapi.ErrAPI) ||
		errors.Is(err, notionapi.ErrResponse) ||
		errors.Is(err, notionapi.ErrTableShape) {
		return ExitRemote
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteJSON) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2notion.ErrEmptyMarkdown) ||
		errors.Is(err, md2notion.ErrFrontMatter) ||
		errors.Is(err, notionapi.ErrMissingToken) ||
		errors.Is(err, notionapi.ErrInvalidPageID) ||
		errors.Is(err, notionapi.ErrConfig) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrNoParent) ||
		errors.Is(err, ErrFlags) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
