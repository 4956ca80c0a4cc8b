package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/notionapi"
)

// ErrNoParent indicates no parent page was given by flag, env, or config.
var ErrNoParent = errors.New("no parent page specified")

// pushTarget is where one document's blocks are appended.
type pushTarget struct {
	parentID string
	newPage  bool
	title    string
}

// runPushCmd parses flags and runs the push command.
func runPushCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePushFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runPush(ctx, positional, flags, env)
}

// runPush converts markdown files and appends the blocks under a page.
func runPush(ctx context.Context, positionalArgs []string, flags *pushFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	setup, err := setupCommand(flags.common, flags.timeout, env)
	if err != nil {
		return err
	}
	cfg := setup.cfg

	parent := flags.parent
	if parent == "" {
		parent = cfg.Notion.Parent
	}
	if parent == "" {
		return ErrNoParent
	}
	parentID, err := notionapi.ExtractPageID(parent)
	if err != nil {
		return err
	}

	retryWait, err := cfg.Notion.RetryWaitDuration()
	if err != nil {
		return err
	}

	uploader, err := env.NewUploader(notionapi.Config{
		Token:     env.Getenv(tokenEnvVar),
		BaseURL:   cfg.Notion.BaseURL,
		Version:   cfg.Notion.Version,
		Retries:   cfg.Notion.Retries,
		RetryWait: retryWait,
		Logger:    logging.ModuleLogger(setup.provider, logging.UploadModule),
	})
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, "")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	pool, err := NewConverterPool(
		resolvePoolSize(flags.workers, setup.env.Workers),
		setup.provider,
		setup.converterOptions(flags.render)...,
	)
	if err != nil {
		return err
	}

	// Conversions run in parallel; uploads run in file order so appends
	// under a shared parent keep document order.
	results := convertBatch(ctx, pool, files, nil)

	target := pushTarget{
		parentID: parentID,
		newPage:  flags.newPage || cfg.Notion.NewPage,
		title:    flags.title,
	}
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		start := time.Now()
		results[i].OutputPath, results[i].Err = pushResult(ctx, uploader, target, results[i])
		results[i].Duration += time.Since(start)
	}

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d push(es) failed", failed)
	}
	return nil
}

// pushResult uploads one converted document and returns the id of the page
// that received it.
func pushResult(ctx context.Context, up Uploader, target pushTarget, r ConversionResult) (string, error) {
	pageID := target.parentID

	if target.newPage {
		title := pageTitle(target.title, r)
		created, err := up.CreatePage(ctx, target.parentID, title)
		if err != nil {
			return "", fmt.Errorf("creating page %q: %w", title, err)
		}
		pageID = created
	}

	if _, err := notionapi.AppendTree(ctx, up, pageID, r.Result.Blocks); err != nil {
		return "", err
	}
	return "page " + pageID, nil
}

// pageTitle picks the explicit title, then the document title, then the
// file name without extension.
func pageTitle(explicit string, r ConversionResult) string {
	if explicit != "" {
		return explicit
	}
	if r.Result != nil && r.Result.Title != "" {
		return r.Result.Title
	}
	base := filepath.Base(r.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
