package render

import (
	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

// Degradation events.
const (
	EventCodeLanguage     = "code_language_unsupported"
	EventHeadingClamped   = "heading_level_clamped"
	EventHeadingContent   = "heading_content_moved"
	EventTableCellDropped = "table_cell_content_dropped"
)

// Degradation records a construct that was approximated.
type Degradation struct {
	Event  string
	Kind   mdast.Kind
	Detail string
}

// Options configures a Renderer.
type Options struct {
	// HTML registers handlers for HTMLBlock and HTMLSpan.
	HTML bool

	// Equations registers handlers for BlockEquation and InlineEquation.
	Equations bool

	// Logger receives degradation events. Defaults to a no-op logger.
	Logger logging.Logger

	// IDs generates table column identifiers. Defaults to UUIDSource.
	IDs IDSource
}

// Output is the result of one Render call.
type Output struct {
	Blocks       []*notion.Block
	Degradations []Degradation
}

type handler func(s *session, n *mdast.Node) (Item, error)

// Renderer dispatches mdast nodes to block and span handlers.
// A Renderer is immutable after New and safe for concurrent use when its
// IDSource is.
type Renderer struct {
	handlers [mdast.KindCount]handler
	logger   logging.Logger
	ids      IDSource
}

// New builds a renderer with the core grammar plus the extensions selected
// in opts.
func New(opts Options) *Renderer {
	r := &Renderer{
		logger: logging.OrNoOp(opts.Logger),
		ids:    opts.IDs,
	}
	if r.ids == nil {
		r.ids = UUIDSource{}
	}

	r.handlers = [mdast.KindCount]handler{
		mdast.KindDocument:       renderDocument,
		mdast.KindParagraph:      renderParagraph,
		mdast.KindHeading:        renderHeading,
		mdast.KindList:           renderList,
		mdast.KindListItem:       renderListItem,
		mdast.KindBlockCode:      renderBlockCode,
		mdast.KindThematicBreak:  renderThematicBreak,
		mdast.KindQuote:          renderQuote,
		mdast.KindTable:          renderTable,
		mdast.KindTableRow:       renderTableRow,
		mdast.KindTableCell:      renderTableCell,
		mdast.KindStrong:         annotate(notion.Annotations{Bold: true}),
		mdast.KindEmphasis:       annotate(notion.Annotations{Italic: true}),
		mdast.KindInlineCode:     annotate(notion.Annotations{Code: true}),
		mdast.KindRawText:        renderRawText,
		mdast.KindStrikethrough:  annotate(notion.Annotations{Strikethrough: true}),
		mdast.KindLink:           renderLink,
		mdast.KindEscapeSequence: renderEscapeSequence,
		mdast.KindLineBreak:      renderLineBreak,
		mdast.KindImage:          renderImage,
	}

	if opts.HTML {
		r.handlers[mdast.KindHTMLBlock] = renderHTML
		r.handlers[mdast.KindHTMLSpan] = renderHTML
	}
	if opts.Equations {
		r.handlers[mdast.KindBlockEquation] = renderBlockEquation
		r.handlers[mdast.KindInlineEquation] = renderInlineEquation
	}

	return r
}

// Render converts a node, normally a Document, into blocks. Inline content
// at the top level is wrapped in paragraphs.
func (r *Renderer) Render(root *mdast.Node) (*Output, error) {
	s := &session{renderer: r}

	items, err := s.renderMany([]*mdast.Node{root})
	if err != nil {
		return nil, err
	}

	return &Output{
		Blocks:       blocksOf(items),
		Degradations: s.degradations,
	}, nil
}

// session carries the per-call state of one Render.
type session struct {
	renderer     *Renderer
	degradations []Degradation
}

// render returns the result of the handler registered for n.Kind.
func (s *session) render(n *mdast.Node) (Item, error) {
	if n.Kind >= mdast.KindCount || s.renderer.handlers[n.Kind] == nil {
		return nil, &MissingHandlerError{Kind: n.Kind}
	}
	return s.renderer.handlers[n.Kind](s, n)
}

// renderMany renders nodes in order and returns their flattened results.
func (s *session) renderMany(nodes []*mdast.Node) ([]Item, error) {
	var out []Item
	for _, n := range nodes {
		it, err := s.render(n)
		if err != nil {
			return nil, err
		}
		out = flatten(out, it)
	}
	return out, nil
}

// combine renders nodes and applies build to every resulting atom.
func (s *session) combine(nodes []*mdast.Node, build func(Item) Item) (Item, error) {
	items, err := s.renderMany(nodes)
	if err != nil {
		return nil, err
	}
	out := make(Items, 0, len(items))
	for _, it := range items {
		out = append(out, build(it))
	}
	return out, nil
}

func (s *session) degrade(event string, kind mdast.Kind, detail string) {
	s.degradations = append(s.degradations, Degradation{Event: event, Kind: kind, Detail: detail})
	s.renderer.logger.Warn("degraded rendering",
		"event", event,
		"kind", kind.String(),
		"detail", detail,
	)
}
