package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2notion/internal/mdast"
)

// ErrParse indicates the Markdown source could not be tokenized or adapted.
var ErrParse = errors.New("markdown parsing failed")

// ParserOptions selects the optional grammar.
type ParserOptions struct {
	// HTML keeps raw HTML as HTMLBlock/HTMLSpan nodes. When false, raw HTML
	// is adapted to plain text.
	HTML bool

	// Equations enables $$ blocks and $ spans. When false, '$' is text.
	Equations bool
}

// MarkdownParser abstracts Markdown to mdast tokenizing.
type MarkdownParser interface {
	Parse(ctx context.Context, content string) (*mdast.Node, error)
}

// GoldmarkParser tokenizes Markdown with goldmark and adapts the result.
type GoldmarkParser struct {
	md   goldmark.Markdown
	opts ParserOptions
}

// NewGoldmarkParser creates a parser with tables, strikethrough and linkify.
// Task-list syntax stays text; the renderer classifies checkbox markers.
func NewGoldmarkParser(opts ParserOptions) *GoldmarkParser {
	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		Markers,
	}
	if opts.Equations {
		exts = append(exts, Equations)
	}

	return &GoldmarkParser{
		md:   goldmark.New(goldmark.WithExtensions(exts...)),
		opts: opts,
	}
}

// Parse tokenizes content and returns the mdast document.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (p *GoldmarkParser) Parse(ctx context.Context, content string) (*mdast.Node, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *mdast.Node
		err error
	}

	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		root := p.md.Parser().Parse(text.NewReader(source))

		a := adapter{source: source, html: p.opts.HTML}
		doc, err := a.adapt(root)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrParse, err)}
			return
		}
		done <- result{doc: doc}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}
