package render

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

// checkbox matches a task marker at the start of a list item's text.
var checkbox = regexp.MustCompile(`(?i)^\[([x ])\][ \t]`)

// renderListItem splits the rendered children into rich text (paragraphs)
// and nested children (everything else), then classifies the item:
//  1. a leader starting with a digit gives a numbered item;
//  2. a leading "[x] " or "[ ] " gives a to_do with the marker stripped;
//  3. anything else is a bulleted item.
//
// An item that renders to nothing produces no block.
func renderListItem(s *session, n *mdast.Node) (Item, error) {
	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}

	blocks := blocksOf(items)
	if len(blocks) == 0 {
		return nil, nil
	}

	item := &notion.Block{}
	for _, b := range blocks {
		if b.Type == notion.TypeParagraph {
			item.RichText = append(item.RichText, b.RichText...)
			item.Children = append(item.Children, b.Children...)
			continue
		}
		item.Children = append(item.Children, b)
	}

	marker := checkboxMarker(blocks[0])
	switch {
	case startsWithDigit(n.Leader):
		item.Type = notion.TypeNumberedListItem
	case marker != nil:
		item.Type = notion.TypeToDo
		item.Checked = strings.EqualFold(marker[1], "x")
		item.RichText = stripPrefix(item.RichText, len(marker[0]))
	default:
		item.Type = notion.TypeBulletedListItem
	}

	return block(item), nil
}

func startsWithDigit(leader string) bool {
	r, _ := utf8.DecodeRuneInString(leader)
	return unicode.IsDigit(r)
}

// checkboxMarker returns the checkbox submatches of a paragraph's text.
func checkboxMarker(first *notion.Block) []string {
	if first.Type != notion.TypeParagraph {
		return nil
	}
	return checkbox.FindStringSubmatch(notion.PlainText(first.RichText))
}

// stripPrefix removes n bytes of content from the front of runs, dropping
// runs emptied by the cut.
func stripPrefix(runs []*notion.TextRun, n int) []*notion.TextRun {
	for len(runs) > 0 && n > 0 {
		head := runs[0]
		if len(head.Content) > n {
			head.Content = head.Content[n:]
			break
		}
		n -= len(head.Content)
		runs = runs[1:]
	}
	return runs
}
