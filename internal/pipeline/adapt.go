package pipeline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/alnah/go-md2notion/internal/mdast"
)

// adapter converts a goldmark tree into mdast nodes.
type adapter struct {
	source []byte
	html   bool
}

func (a *adapter) adapt(n ast.Node) (*mdast.Node, error) {
	switch n := n.(type) {
	case *ast.Document:
		return a.container(mdast.Document(), n)
	case *ast.Paragraph:
		return a.container(mdast.Paragraph(), n)
	case *ast.TextBlock:
		return a.container(mdast.Paragraph(), n)
	case *ast.Heading:
		return a.container(mdast.Heading(n.Level), n)
	case *ast.Blockquote:
		return a.container(mdast.Quote(), n)
	case *ast.List:
		return a.list(n)
	case *ast.FencedCodeBlock:
		lang := ""
		if n.Info != nil {
			lang = string(n.Language(a.source))
		}
		return mdast.BlockCode(lang, a.code(n)), nil
	case *ast.CodeBlock:
		return mdast.BlockCode("", a.code(n)), nil
	case *ast.ThematicBreak:
		return mdast.ThematicBreak(), nil
	case *ast.HTMLBlock:
		raw := a.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(a.source))
		}
		if !a.html {
			return mdast.Paragraph(mdast.Text(strings.TrimRight(raw, "\n"))), nil
		}
		return mdast.HTMLBlock(raw), nil
	case *extast.Table:
		return a.table(n)
	case *extast.TableCell:
		return a.container(mdast.TableCell(), n)
	case *ast.Emphasis:
		if n.Level >= 2 {
			return a.container(mdast.Strong(), n)
		}
		return a.container(mdast.Emphasis(), n)
	case *extast.Strikethrough:
		return a.container(mdast.Strikethrough(), n)
	case *ast.CodeSpan:
		return mdast.InlineCode(mdast.Text(a.inlineText(n))), nil
	case *ast.Link:
		return a.container(mdast.Link(string(n.Destination)), n)
	case *ast.AutoLink:
		return mdast.Link(string(n.URL(a.source)), mdast.Text(string(n.Label(a.source)))), nil
	case *ast.Image:
		return a.container(mdast.Image(string(n.Destination)), n)
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(a.source))
		}
		if !a.html {
			return mdast.Text(sb.String()), nil
		}
		return mdast.HTMLSpan(sb.String()), nil
	case *Escape:
		return mdast.EscapeSequence(string(n.Char)), nil
	case *TildeSpan:
		return mdast.Text(string(n.Segment.Value(a.source))), nil
	case *InlineEquation:
		return mdast.InlineEquation(string(n.Segment.Value(a.source))), nil
	case *BlockEquation:
		return mdast.BlockEquation(strings.TrimSpace(a.lines(n))), nil
	}
	return nil, fmt.Errorf("unsupported node %s", n.Kind())
}

// container adapts the children of n into parent. Adjacent text nodes are
// merged into one RawText: goldmark splits text at every trigger character
// it failed to parse. Soft line breaks become a space, hard ones a LineBreak.
func (a *adapter) container(parent *mdast.Node, n ast.Node) (*mdast.Node, error) {
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			parent.Append(mdast.Text(pending.String()))
			pending.Reset()
		}
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			pending.Write(t.Segment.Value(a.source))
			switch {
			case t.HardLineBreak():
				flush()
				parent.Append(mdast.LineBreak())
			case t.SoftLineBreak():
				pending.WriteByte(' ')
			}
		case *ast.String:
			pending.Write(t.Value)
		default:
			flush()
			child, err := a.adapt(c)
			if err != nil {
				return nil, err
			}
			parent.Append(child)
		}
	}
	flush()

	return parent, nil
}

// list numbers ordered items from the list start, keeping the delimiter.
func (a *adapter) list(n *ast.List) (*mdast.Node, error) {
	list := mdast.List()
	i := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		leader := string(n.Marker)
		if n.IsOrdered() {
			leader = fmt.Sprintf("%d%c", n.Start+i, n.Marker)
		}
		item, err := a.container(mdast.ListItem(leader), c)
		if err != nil {
			return nil, err
		}
		list.Append(item)
		i++
	}
	return list, nil
}

func (a *adapter) table(n *extast.Table) (*mdast.Node, error) {
	var header *mdast.Node
	var rows []*mdast.Node

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		row, err := a.container(mdast.TableRow(), c)
		if err != nil {
			return nil, err
		}
		if _, ok := c.(*extast.TableHeader); ok {
			header = row
			continue
		}
		rows = append(rows, row)
	}
	if header == nil {
		header = mdast.TableRow()
	}
	return mdast.Table(header, rows...), nil
}

func (a *adapter) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(a.source))
	}
	return sb.String()
}

// code returns block content without the final line terminator.
func (a *adapter) code(n ast.Node) string {
	return strings.TrimSuffix(a.lines(n), "\n")
}

func (a *adapter) inlineText(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(a.source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}
