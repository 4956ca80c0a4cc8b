package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindBlockEquation is the goldmark node kind of a $$-fenced equation.
var KindBlockEquation = ast.NewNodeKind("BlockEquation")

// KindInlineEquation is the goldmark node kind of a $-delimited equation.
var KindInlineEquation = ast.NewNodeKind("InlineEquation")

// BlockEquation is a raw block opened by a run of two or more '$' and
// closed by a run at least as long. The opening line may close itself
// ("$$ x $$"); any other '$' after the opener keeps the line a paragraph.
type BlockEquation struct {
	ast.BaseBlock
	fence  int
	closed bool
}

// Kind implements ast.Node.
func (n *BlockEquation) Kind() ast.NodeKind { return KindBlockEquation }

// IsRaw keeps goldmark from parsing inlines inside the equation.
func (n *BlockEquation) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *BlockEquation) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// InlineEquation is a span delimited by equal-length runs of '$'.
type InlineEquation struct {
	ast.BaseInline
	Segment text.Segment
}

// Kind implements ast.Node.
func (n *InlineEquation) Kind() ast.NodeKind { return KindInlineEquation }

// Dump implements ast.Node.
func (n *InlineEquation) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Content": string(n.Segment.Value(source)),
	}, nil)
}

type blockEquationParser struct{}

func (p *blockEquationParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *blockEquationParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != '$' {
		return nil, parser.NoChildren
	}

	fence := dollarRun(line[pos:])
	if fence < 2 {
		return nil, parser.NoChildren
	}

	node := &BlockEquation{fence: fence}
	start := pos + fence
	rest := util.TrimRightSpace(line[start:])

	switch {
	case len(rest) > fence && bytes.HasSuffix(rest, bytes.Repeat([]byte{'$'}, fence)):
		node.Lines().Append(text.NewSegment(segment.Start+start, segment.Start+start+len(rest)-fence))
		node.closed = true
	case bytes.IndexByte(rest, '$') >= 0:
		// "$$x$$ text" is a paragraph with an inline equation.
		return nil, parser.NoChildren
	case !util.IsBlank(line[start:]):
		node.Lines().Append(text.NewSegment(segment.Start+start, segment.Stop))
	}

	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *blockEquationParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	eq := node.(*BlockEquation)
	if eq.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if w, pos := util.IndentWidth(line, reader.LineOffset()); w < 4 {
		if run := dollarRun(line[pos:]); run >= eq.fence && util.IsBlank(line[pos+run:]) {
			reader.Advance(segment.Stop - segment.Start - segment.Padding)
			return parser.Close
		}
	}

	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *blockEquationParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *blockEquationParser) CanInterruptParagraph() bool {
	return true
}

func (p *blockEquationParser) CanAcceptIndentedLine() bool {
	return false
}

type inlineEquationParser struct{}

func (p *inlineEquationParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse matches a closing run of exactly the opening length on the same
// line. Anything else leaves the dollars as text, including the tail of a
// longer run that already failed to match.
func (p *inlineEquationParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if block.PrecendingCharacter() == '$' {
		return nil
	}

	line, segment := block.PeekLine()
	opener := dollarRun(line)

	for i := opener; i < len(line); {
		if line[i] != '$' {
			i++
			continue
		}
		run := dollarRun(line[i:])
		if run == opener {
			if i == opener {
				return nil
			}
			node := &InlineEquation{
				Segment: text.NewSegment(segment.Start+opener, segment.Start+i),
			}
			block.Advance(i + run)
			return node
		}
		i += run
	}
	return nil
}

func dollarRun(line []byte) int {
	n := 0
	for n < len(line) && line[n] == '$' {
		n++
	}
	return n
}

type equationExtension struct{}

// Equations registers the block and inline equation grammar.
var Equations goldmark.Extender = &equationExtension{}

func (e *equationExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&blockEquationParser{}, 701),
		),
		parser.WithInlineParsers(
			util.Prioritized(&inlineEquationParser{}, 150),
		),
	)
}
