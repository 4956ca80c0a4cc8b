package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2notion "github.com/alnah/go-md2notion"
	"github.com/alnah/go-md2notion/internal/fileutil"
	"github.com/alnah/go-md2notion/internal/notion"
)

// Sentinel errors for CLI file operations.
var (
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteJSON          = errors.New("failed to write JSON file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Result     *md2notion.Result
	Blocks     int // total blocks including nested children
	Err        error
	Duration   time.Duration
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert converts markdown files to block JSON files.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	setup, err := setupCommand(flags.common, flags.timeout, env)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, setup.cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, setup.cfg.Output.DefaultDir)

	files, err := discoverFiles(inputPath, outputDir)
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

	results := convertBatch(ctx, pool, files, writeBlocks)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// resultSink consumes a successful conversion.
type resultSink func(f FileToConvert, result *md2notion.Result) error

// writeBlocks writes the result as indented JSON next to, or under, the
// output path.
func writeBlocks(f FileToConvert, result *md2notion.Result) error {
	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	data, err := result.JSON()
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, append(data, '\n'), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteJSON, err)
	}
	return nil
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files. sink may be nil.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, sink resultSink) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], sink)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, sink resultSink) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	converted, err := conv.Convert(ctx, md2notion.Input{Markdown: string(content)})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Result = converted
	result.Blocks = countBlocks(converted.Blocks)

	if sink != nil {
		if err := sink(f, converted); err != nil {
			result.Err = err
		}
	}

	result.Duration = time.Since(start)
	return result
}

// countBlocks counts blocks at every depth.
func countBlocks(blocks []*md2notion.Block) int {
	n := 0
	notion.Walk(blocks, func(*notion.Block, int) bool {
		n++
		return true
	})
	return n
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d blocks, %v)\n",
				r.InputPath, r.OutputPath, r.Blocks, r.Duration.Round(time.Millisecond))
			printDegradations(r.Result, env)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// printDegradations lists approximated constructs, one per line.
func printDegradations(result *md2notion.Result, env *Environment) {
	if result == nil {
		return
	}
	for _, d := range result.Degradations {
		line := "  ~ " + d.Event
		if d.Detail != "" {
			line += ": " + strings.TrimSpace(d.Detail)
		}
		fmt.Fprintln(env.Stdout, line)
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxPoolSize)
	}
	return nil
}
