package render

import (
	"strings"

	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

// annotate returns a span handler that sets flags on every run produced by
// the node's children. Blocks pass through untouched.
func annotate(flags notion.Annotations) handler {
	return func(s *session, n *mdast.Node) (Item, error) {
		return s.combine(n.Children, func(it Item) Item {
			if r, ok := it.(RunItem); ok {
				r.Run.Annotations.Merge(flags)
			}
			return it
		})
	}
}

func renderLink(s *session, n *mdast.Node) (Item, error) {
	return s.combine(n.Children, func(it Item) Item {
		if r, ok := it.(RunItem); ok {
			r.Run.Link = &notion.Link{URL: n.Target}
		}
		return it
	})
}

// renderRawText underlines text wrapped in single tildes.
func renderRawText(_ *session, n *mdast.Node) (Item, error) {
	c := n.Content
	if len(c) >= 2 && strings.HasPrefix(c, "~") && strings.HasSuffix(c, "~") {
		r := notion.Text(c[1 : len(c)-1])
		r.Annotations.Underline = true
		return run(r), nil
	}
	return run(notion.Text(c)), nil
}

// renderEscapeSequence keeps the backslash: the target has no escapes.
func renderEscapeSequence(_ *session, n *mdast.Node) (Item, error) {
	return run(notion.Text(`\` + n.Content)), nil
}

func renderLineBreak(_ *session, _ *mdast.Node) (Item, error) {
	return run(notion.Text("")), nil
}

// renderInlineEquation marks the expression with double dollars.
func renderInlineEquation(_ *session, n *mdast.Node) (Item, error) {
	return run(notion.Text("$$" + n.Content + "$$")), nil
}
