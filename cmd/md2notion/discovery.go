package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2notion/internal/fileutil"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
)

// outputExtension is the extension of written block files.
const outputExtension = "json"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if defaultDir != "" {
		return defaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput, defaultDir string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return defaultDir
}

// discoverFiles finds all markdown files under inputPath. A single file is
// validated; directories are walked and non-markdown files skipped.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the JSON output path for a markdown file.
// An outputDir ending in .json names the file directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	if outputDir != "" && strings.HasSuffix(outputDir, "."+outputExtension) {
		return outputDir, nil
	}

	name, err := fileutil.ReplaceExtension(filepath.Base(inputPath), outputExtension)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name), nil
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

func isMarkdown(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}
