package notion

import (
	"encoding/json"
	"fmt"
)

// Type is the block type tag.
type Type string

// Block types produced by the renderer.
const (
	TypeParagraph        Type = "paragraph"
	TypeQuote            Type = "quote"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeCode             Type = "code"
	TypeDivider          Type = "divider"
	TypeImage            Type = "image"
	TypeTable            Type = "table"
	TypeEquation         Type = "equation"
)

// MaxHeadingLevel is the deepest heading the target format supports.
const MaxHeadingLevel = 3

// Block is one output record. Only the fields relevant to Type are set.
// Children are exclusively owned; the uploader attaches them under the
// remote id created for their parent.
type Block struct {
	Type       Type
	RichText   []*TextRun // rich-text kinds and code
	Checked    bool       // to_do
	Language   string     // code
	Image      *Image     // image
	Table      *Table     // table
	Expression string     // equation
	Children   []*Block
}

// Image references an external file.
type Image struct {
	URL     string
	Caption []*TextRun
}

// Column types of a table schema.
const (
	ColumnText  = "text"
	ColumnTitle = "title"
)

// TitleColumnID is the schema key of the mandatory title column.
const TitleColumnID = "title"

// Column describes one schema entry.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is a schema-described table. Columns lists the schema keys in
// source order; the title column is always last. Rows exclude the header.
type Table struct {
	Columns []string          `json:"columns"`
	Schema  map[string]Column `json:"schema"`
	Rows    [][]string        `json:"rows"`
}

// HasRichText reports whether blocks of type t carry a rich_text payload.
func (t Type) HasRichText() bool {
	switch t {
	case TypeParagraph, TypeQuote, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeBulletedListItem, TypeNumberedListItem, TypeToDo, TypeCode:
		return true
	}
	return false
}

// HeadingType returns the heading type for level, clamped to 1..MaxHeadingLevel.
func HeadingType(level int) Type {
	switch {
	case level <= 1:
		return TypeHeading1
	case level == 2:
		return TypeHeading2
	default:
		return TypeHeading3
	}
}

// Paragraph returns a paragraph block holding runs.
func Paragraph(runs ...*TextRun) *Block {
	return &Block{Type: TypeParagraph, RichText: runs}
}

// PlainTextBlock wraps already-plain content. The target API has no bare
// text block, so it is a paragraph with one unannotated run.
func PlainTextBlock(content string) *Block {
	return Paragraph(Text(content))
}

// Divider returns a horizontal rule block.
func Divider() *Block {
	return &Block{Type: TypeDivider}
}

// ImageBlock returns an external image block with an optional caption.
func ImageBlock(url string, caption ...*TextRun) *Block {
	return &Block{Type: TypeImage, Image: &Image{URL: url, Caption: caption}}
}

// CodeBlock returns a code block with content as a single run.
func CodeBlock(language, content string) *Block {
	return &Block{Type: TypeCode, Language: language, RichText: []*TextRun{Text(content)}}
}

// EquationBlock returns a block-level equation.
func EquationBlock(expression string) *Block {
	return &Block{Type: TypeEquation, Expression: expression}
}

// TableBlock returns a table block backed by t.
func TableBlock(t *Table) *Block {
	return &Block{Type: TypeTable, Table: t}
}

// WithoutChildren returns a shallow copy of b with no children.
func (b *Block) WithoutChildren() *Block {
	c := *b
	c.Children = nil
	return &c
}

// Walk visits blocks depth-first, parents before children. Returning false
// from fn skips the children of that block.
func Walk(blocks []*Block, fn func(b *Block, depth int) bool) {
	walk(blocks, 0, fn)
}

func walk(blocks []*Block, depth int, fn func(*Block, int) bool) {
	for _, b := range blocks {
		if fn(b, depth) {
			walk(b.Children, depth+1, fn)
		}
	}
}

// MarshalJSON encodes the block in the target API shape.
func (b Block) MarshalJSON() ([]byte, error) {
	payload, err := b.payload()
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"object":       "block",
		"type":         b.Type,
		string(b.Type): payload,
	}
	if len(b.Children) > 0 {
		out["children"] = b.Children
	}
	return json.Marshal(out)
}

func (b Block) payload() (any, error) {
	switch b.Type {
	case TypeToDo:
		return map[string]any{"rich_text": runsOrEmpty(b.RichText), "checked": b.Checked}, nil
	case TypeCode:
		return map[string]any{
			"caption":   []*TextRun{},
			"rich_text": runsOrEmpty(b.RichText),
			"language":  b.Language,
		}, nil
	case TypeDivider:
		return struct{}{}, nil
	case TypeImage:
		if b.Image == nil {
			return nil, fmt.Errorf("notion: image block without image")
		}
		img := map[string]any{
			"type":     "external",
			"external": map[string]string{"url": b.Image.URL},
		}
		if len(b.Image.Caption) > 0 {
			img["caption"] = b.Image.Caption
		}
		return img, nil
	case TypeTable:
		if b.Table == nil {
			return nil, fmt.Errorf("notion: table block without table")
		}
		return b.Table, nil
	case TypeEquation:
		return map[string]string{"expression": b.Expression}, nil
	}

	if b.Type.HasRichText() {
		return map[string]any{"rich_text": runsOrEmpty(b.RichText)}, nil
	}
	return nil, fmt.Errorf("notion: unknown block type %q", b.Type)
}

// MarshalJSON encodes the run as a rich-text object of type "text".
func (r TextRun) MarshalJSON() ([]byte, error) {
	type text struct {
		Content string `json:"content"`
		Link    *Link  `json:"link,omitempty"`
	}
	return json.Marshal(struct {
		Type        string      `json:"type"`
		Text        text        `json:"text"`
		Annotations Annotations `json:"annotations"`
	}{
		Type:        "text",
		Text:        text{Content: r.Content, Link: r.Link},
		Annotations: r.Annotations,
	})
}

func runsOrEmpty(runs []*TextRun) []*TextRun {
	if runs == nil {
		return []*TextRun{}
	}
	return runs
}
