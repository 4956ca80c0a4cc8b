package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindEscape is the goldmark node kind of a backslash escape.
var KindEscape = ast.NewNodeKind("Escape")

// KindTildeSpan is the goldmark node kind of a single-tilde span.
var KindTildeSpan = ast.NewNodeKind("TildeSpan")

// Escape is a backslash followed by an ASCII punctuation character.
type Escape struct {
	ast.BaseInline
	Char byte
}

// Kind implements ast.Node.
func (n *Escape) Kind() ast.NodeKind { return KindEscape }

// Dump implements ast.Node.
func (n *Escape) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Char": string(n.Char)}, nil)
}

// TildeSpan is text wrapped in single tildes, delimiters included. Double
// tildes stay with the strikethrough extension.
type TildeSpan struct {
	ast.BaseInline
	Segment text.Segment
}

// Kind implements ast.Node.
func (n *TildeSpan) Kind() ast.NodeKind { return KindTildeSpan }

// Dump implements ast.Node.
func (n *TildeSpan) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Content": string(n.Segment.Value(source)),
	}, nil)
}

type escapeParser struct{}

func (p *escapeParser) Trigger() []byte {
	return []byte{'\\'}
}

func (p *escapeParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || !util.IsPunct(line[1]) {
		return nil
	}
	block.Advance(2)
	return &Escape{Char: line[1]}
}

type tildeParser struct{}

func (p *tildeParser) Trigger() []byte {
	return []byte{'~'}
}

func (p *tildeParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 3 || line[1] == '~' || util.IsSpace(line[1]) {
		return nil
	}
	for i := 2; i < len(line); i++ {
		switch line[i] {
		case '\n':
			return nil
		case '~':
			if i+1 < len(line) && line[i+1] == '~' {
				return nil
			}
			if util.IsSpace(line[i-1]) {
				return nil
			}
			block.Advance(i + 1)
			return &TildeSpan{Segment: text.NewSegment(segment.Start, segment.Start+i+1)}
		}
	}
	return nil
}

type markersExtension struct{}

// Markers registers explicit escape sequences and single-tilde spans.
// The tilde parser runs ahead of extension.Strikethrough.
var Markers goldmark.Extender = &markersExtension{}

func (e *markersExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&escapeParser{}, 50),
			util.Prioritized(&tildeParser{}, 450),
		),
	)
}
