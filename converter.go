package md2notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/pipeline"
	"github.com/alnah/go-md2notion/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.MarkdownParser       = (*pipeline.GoldmarkParser)(nil)
	_ IDSource                      = render.UUIDSource{}
)

// Converter orchestrates the markdown-to-blocks conversion pipeline.
// A Converter holds no per-call state and is safe for concurrent use when
// its IDSource and Logger are.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	parser       pipeline.MarkdownParser
	renderer     *render.Renderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithExtensions).
// Returns ErrInvalidExtension if an unknown extension bit is set.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:    defaultTimeout,
			extensions: DefaultExtensions,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.extensions&^extAll != 0 {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidExtension, uint8(c.cfg.extensions&^extAll))
	}

	html := c.cfg.extensions.Has(ExtHTML)
	equations := c.cfg.extensions.Has(ExtEquation)

	// Parser may be injected by tests
	if c.parser == nil {
		c.parser = pipeline.NewGoldmarkParser(pipeline.ParserOptions{
			HTML:      html,
			Equations: equations,
		})
	}

	ids := c.cfg.ids
	if ids == nil {
		ids = render.UUIDSource{}
	}

	c.renderer = render.New(render.Options{
		HTML:      html,
		Equations: equations,
		Logger:    logging.OrNoOp(c.cfg.logger),
		IDs:       ids,
	})

	return c, nil
}

// Convert runs the full pipeline and returns the block tree.
// The context is used for cancellation; the configured timeout applies on top.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Split front matter
	meta, body, err := pipeline.SplitFrontMatter(mdContent)
	if err != nil {
		return nil, mapError(err)
	}

	// Tokenize
	doc, err := c.parser.Parse(ctx, body)
	if err != nil {
		return nil, mapError(err)
	}

	// Render blocks
	out, err := c.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering blocks: %w", mapError(err))
	}

	return &Result{
		Title:        resolveTitle(input.Title, meta.Title, doc),
		Blocks:       out.Blocks,
		Degradations: out.Degradations,
	}, nil
}

// validateInput checks that input has content to convert.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return nil
}

// resolveTitle picks the explicit title, then the front matter title, then
// the text of the first level-1 heading.
func resolveTitle(explicit, frontMatter string, doc *mdast.Node) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if frontMatter != "" {
		return frontMatter
	}
	h1 := mdast.Find(doc, func(n *mdast.Node) bool {
		return n.Kind == mdast.KindHeading && n.Level == 1
	})
	if h1 == nil {
		return ""
	}
	return strings.TrimSpace(h1.PlainText())
}
