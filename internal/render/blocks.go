package render

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2notion/internal/htmlextract"
	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

func renderDocument(s *session, n *mdast.Node) (Item, error) {
	return renderBlocks(s, n.Children)
}

// renderParagraph groups consecutive runs into one paragraph. Blocks found
// among the children (images, raw HTML) are emitted in place, so a
// paragraph holding only an image becomes that image block.
func renderParagraph(s *session, n *mdast.Node) (Item, error) {
	return renderBlocks(s, n.Children)
}

func renderBlocks(s *session, nodes []*mdast.Node) (Item, error) {
	items, err := s.renderMany(nodes)
	if err != nil {
		return nil, err
	}
	return blockItems(blocksOf(items)), nil
}

func renderHeading(s *session, n *mdast.Node) (Item, error) {
	level := n.Level
	if level > notion.MaxHeadingLevel {
		s.degrade(EventHeadingClamped, n.Kind,
			fmt.Sprintf("h%d rendered as h%d", level, notion.MaxHeadingLevel))
		level = notion.MaxHeadingLevel
	}

	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}

	heading := &notion.Block{Type: notion.HeadingType(level), RichText: runsOf(items)}
	out := Items{block(heading)}
	for _, it := range items {
		if b, ok := it.(BlockItem); ok {
			s.degrade(EventHeadingContent, n.Kind,
				fmt.Sprintf("%s moved after heading", b.Block.Type))
			out = append(out, it)
		}
	}
	return out, nil
}

// renderQuote takes its rich text from the first paragraph inside the
// quote. Anything after it is nested as children.
func renderQuote(s *session, n *mdast.Node) (Item, error) {
	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}

	blocks := blocksOf(items)
	quote := &notion.Block{Type: notion.TypeQuote}
	if len(blocks) > 0 && blocks[0].Type == notion.TypeParagraph {
		quote.RichText = blocks[0].RichText
		quote.Children = blocks[0].Children
		blocks = blocks[1:]
	}
	quote.Children = append(quote.Children, blocks...)
	return block(quote), nil
}

func renderList(s *session, n *mdast.Node) (Item, error) {
	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}
	return Items(items), nil
}

func renderBlockCode(s *session, n *mdast.Node) (Item, error) {
	lang, ok := ResolveLanguage(n.Language)
	if !ok {
		s.degrade(EventCodeLanguage, n.Kind,
			fmt.Sprintf("language %q rendered as %s", n.Language, lang))
	}
	return block(notion.CodeBlock(lang, n.Content)), nil
}

func renderThematicBreak(_ *session, _ *mdast.Node) (Item, error) {
	return block(notion.Divider()), nil
}

func renderImage(_ *session, n *mdast.Node) (Item, error) {
	return block(notion.ImageBlock(n.Target)), nil
}

// renderHTML emits the tag-stripped text as one plain block, then one image
// block per <img> in source order.
func renderHTML(_ *session, n *mdast.Node) (Item, error) {
	res := htmlextract.Extract(n.Content)

	var out Items
	if text := strings.TrimSpace(res.Text); text != "" {
		out = append(out, block(notion.PlainTextBlock(text)))
	}
	for _, img := range res.Images {
		var caption []*notion.TextRun
		if img.Caption != "" {
			caption = append(caption, notion.Text(img.Caption))
		}
		out = append(out, block(notion.ImageBlock(img.URL, caption...)))
	}
	return out, nil
}

// renderBlockEquation doubles every backslash in the expression.
func renderBlockEquation(_ *session, n *mdast.Node) (Item, error) {
	return block(notion.EquationBlock(strings.ReplaceAll(n.Content, `\`, `\\`))), nil
}

func blockItems(blocks []*notion.Block) Items {
	out := make(Items, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, block(b))
	}
	return out
}
