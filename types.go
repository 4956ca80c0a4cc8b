package md2notion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/notion"
	"github.com/alnah/go-md2notion/internal/render"
)

// Block is one output record: a type tag, its payload and nested children.
type Block = notion.Block

// BlockType is the type tag of a Block.
type BlockType = notion.Type

// TextRun is a span of text with annotations and an optional link.
type TextRun = notion.TextRun

// Annotations are the style flags of a TextRun.
type Annotations = notion.Annotations

// Degradation records a construct that was approximated during rendering.
type Degradation = render.Degradation

// Logger receives degradation events and pipeline diagnostics.
type Logger = logging.Logger

// IDSource generates table column identifiers.
type IDSource = render.IDSource

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	Title    string // Page title; overrides front matter and the first H1
}

// Result holds the output of a conversion.
type Result struct {
	Title        string
	Blocks       []*Block
	Degradations []Degradation
}

// JSON encodes the block tree in the wire shape of the block API.
func (r *Result) JSON() ([]byte, error) {
	blocks := r.Blocks
	if blocks == nil {
		blocks = []*Block{}
	}
	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding blocks: %w", err)
	}
	return data, nil
}

// Extension selects optional grammar. Values combine with |.
type Extension uint8

const (
	// ExtHTML keeps raw HTML and turns <img> tags into image blocks.
	ExtHTML Extension = 1 << iota
	// ExtEquation recognizes $$ blocks and $ spans.
	ExtEquation

	extAll = ExtHTML | ExtEquation
)

// DefaultExtensions is the set enabled by NewConverter.
const DefaultExtensions = extAll

// Has reports whether every bit of other is set in e.
func (e Extension) Has(other Extension) bool {
	return e&other == other
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	extensions Extension
	logger     Logger
	ids        IDSource
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2notion: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger that receives degradation events.
// A nil logger discards them.
func WithLogger(logger Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = logger
	}
}

// WithExtensions replaces the enabled extension set.
// Pass no value to convert plain CommonMark plus tables and strikethrough.
func WithExtensions(exts ...Extension) Option {
	return func(c *Converter) {
		var set Extension
		for _, e := range exts {
			set |= e
		}
		c.cfg.extensions = set
	}
}

// WithIDSource sets the generator for table column identifiers.
// Useful for deterministic output in tests and golden files.
func WithIDSource(ids IDSource) Option {
	return func(c *Converter) {
		c.cfg.ids = ids
	}
}

// PlainText concatenates the content of runs, dropping annotations.
func PlainText(runs []*TextRun) string {
	return notion.PlainText(runs)
}
