package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-md2notion/internal/notionapi"
)

// Uploader is the remote side of the push command.
type Uploader interface {
	notionapi.Appender
	CreatePage(ctx context.Context, parentPageID, title string) (string, error)
}

// Compile-time interface implementation check.
var _ Uploader = (*notionapi.Client)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and the API client factory.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewUploader func(notionapi.Config) (Uploader, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		NewUploader: newNotionUploader,
	}
}

func newNotionUploader(cfg notionapi.Config) (Uploader, error) {
	client, err := notionapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
