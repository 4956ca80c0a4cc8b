// Package mdast defines the closed Markdown grammar consumed by the renderer.
//
// The tokenizer adapter in internal/pipeline produces these nodes from the
// goldmark AST. Nodes are read-only once built: the renderer never mutates
// its input.
package mdast

import (
	"fmt"
	"strings"
)

// Kind identifies a node variant. The set is closed: adding a kind means
// adding a handler to every dispatch table in internal/render.
type Kind uint8

// Core grammar.
const (
	KindDocument Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockCode
	KindThematicBreak
	KindQuote
	KindTable
	KindTableRow
	KindTableCell
	KindStrong
	KindEmphasis
	KindInlineCode
	KindRawText
	KindStrikethrough
	KindLink
	KindEscapeSequence
	KindLineBreak
	KindImage

	// Raw HTML extension.
	KindHTMLBlock
	KindHTMLSpan

	// Equation extension.
	KindBlockEquation
	KindInlineEquation

	// KindCount is the number of kinds; it sizes dispatch tables.
	KindCount
)

var kindNames = [KindCount]string{
	KindDocument:       "Document",
	KindParagraph:      "Paragraph",
	KindHeading:        "Heading",
	KindList:           "List",
	KindListItem:       "ListItem",
	KindBlockCode:      "BlockCode",
	KindThematicBreak:  "ThematicBreak",
	KindQuote:          "Quote",
	KindTable:          "Table",
	KindTableRow:       "TableRow",
	KindTableCell:      "TableCell",
	KindStrong:         "Strong",
	KindEmphasis:       "Emphasis",
	KindInlineCode:     "InlineCode",
	KindRawText:        "RawText",
	KindStrikethrough:  "Strikethrough",
	KindLink:           "Link",
	KindEscapeSequence: "EscapeSequence",
	KindLineBreak:      "LineBreak",
	KindImage:          "Image",
	KindHTMLBlock:      "HTMLBlock",
	KindHTMLSpan:       "HTMLSpan",
	KindBlockEquation:  "BlockEquation",
	KindInlineEquation: "InlineEquation",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is one element of the Markdown tree.
// Only the fields relevant to Kind are populated.
type Node struct {
	Kind     Kind
	Children []*Node

	Level    int    // Heading
	Leader   string // ListItem: "-", "*", "+", "1.", "2)"
	Language string // BlockCode
	Content  string // RawText, BlockCode, HTMLBlock, HTMLSpan, BlockEquation, InlineEquation, EscapeSequence
	Target   string // Link target, Image source
	Header   *Node  // Table: the header TableRow
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// PlainText concatenates the literal text below n. Escapes contribute their
// character; images, HTML and line breaks contribute nothing.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	switch n.Kind {
	case KindRawText, KindEscapeSequence, KindInlineEquation:
		sb.WriteString(n.Content)
		return
	case KindImage, KindHTMLSpan, KindLineBreak:
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// Find returns the first node in document order for which match is true.
func Find(root *Node, match func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for _, c := range root.Children {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}
