// Package md2notion converts Markdown documents into Notion block records.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2notion.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2notion.Input{
//	    Markdown: "# Hello\n\n- [x] World",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := result.JSON()
//	os.WriteFile("output.json", data, 0644)
//
// The result holds the block tree (result.Blocks), a title taken from the
// front matter or the first level-1 heading (result.Title), and every
// construct that had to be approximated (result.Degradations).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, blank-line compression)
//  2. Front matter extraction (YAML, TOML or JSON)
//  3. Tokenizing via goldmark (tables, strikethrough, linkify, equations)
//  4. Rendering to blocks: rich-text runs with annotations, typed blocks,
//     nested children
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2notion.NewConverter(
//	    md2notion.WithTimeout(10 * time.Second),
//	    md2notion.WithExtensions(md2notion.ExtEquation),
//	    md2notion.WithLogger(logger),
//	)
//
// # Degradations
//
// The target format is narrower than Markdown. Headings deeper than three
// levels are clamped, unknown code languages fall back to plain text, and
// non-text table cell content is dropped. Each case is logged at Warn and
// recorded in Result.Degradations; conversion continues.
//
// # Uploading
//
// A Converter performs no network I/O. The md2notion command pushes the
// blocks to a page, attaching nested children under the ids returned by
// the API.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//
//	result, err := conv.Convert(ctx, input)
//	if errors.Is(err, md2notion.ErrEmptyMarkdown) {
//	    // Handle empty input
//	}
//	if errors.Is(err, md2notion.ErrMissingHandler) {
//	    // A node kind reached a renderer without its extension
//	}
package md2notion
