package mdast

// Constructors for hand-built trees. The pipeline adapter and tests use them
// so that every node is created with the fields its kind requires.

func Document(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

func Heading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Level: level, Children: children}
}

func List(items ...*Node) *Node {
	return &Node{Kind: KindList, Children: items}
}

// ListItem builds an item whose leader is the list marker as written
// ("-", "*", "+") or the ordinal with its delimiter ("1.", "3)").
func ListItem(leader string, children ...*Node) *Node {
	return &Node{Kind: KindListItem, Leader: leader, Children: children}
}

func BlockCode(language, content string) *Node {
	return &Node{Kind: KindBlockCode, Language: language, Content: content}
}

func ThematicBreak() *Node {
	return &Node{Kind: KindThematicBreak}
}

func Quote(children ...*Node) *Node {
	return &Node{Kind: KindQuote, Children: children}
}

// Table builds a table from its header row and body rows.
func Table(header *Node, rows ...*Node) *Node {
	return &Node{Kind: KindTable, Header: header, Children: rows}
}

func TableRow(cells ...*Node) *Node {
	return &Node{Kind: KindTableRow, Children: cells}
}

func TableCell(children ...*Node) *Node {
	return &Node{Kind: KindTableCell, Children: children}
}

func Strong(children ...*Node) *Node {
	return &Node{Kind: KindStrong, Children: children}
}

func Emphasis(children ...*Node) *Node {
	return &Node{Kind: KindEmphasis, Children: children}
}

func InlineCode(children ...*Node) *Node {
	return &Node{Kind: KindInlineCode, Children: children}
}

func Text(content string) *Node {
	return &Node{Kind: KindRawText, Content: content}
}

func Strikethrough(children ...*Node) *Node {
	return &Node{Kind: KindStrikethrough, Children: children}
}

func Link(target string, children ...*Node) *Node {
	return &Node{Kind: KindLink, Target: target, Children: children}
}

// EscapeSequence holds the escaped character without its backslash.
func EscapeSequence(char string) *Node {
	return &Node{Kind: KindEscapeSequence, Content: char}
}

func LineBreak() *Node {
	return &Node{Kind: KindLineBreak}
}

func Image(source string, alt ...*Node) *Node {
	return &Node{Kind: KindImage, Target: source, Children: alt}
}

func HTMLBlock(content string) *Node {
	return &Node{Kind: KindHTMLBlock, Content: content}
}

func HTMLSpan(content string) *Node {
	return &Node{Kind: KindHTMLSpan, Content: content}
}

func BlockEquation(content string) *Node {
	return &Node{Kind: KindBlockEquation, Content: content}
}

func InlineEquation(content string) *Node {
	return &Node{Kind: KindInlineEquation, Content: content}
}
