package render

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

// IDSource generates opaque table column identifiers.
type IDSource interface {
	NewID() string
}

// UUIDSource derives short identifiers from random UUIDs.
type UUIDSource struct{}

// NewID returns the first eight hex digits of a version 4 UUID.
func (UUIDSource) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

const maxIDAttempts = 16

// renderTable renders the header and each body row on their own, so rows
// never merge. Every column but the last gets a fresh text column id; the
// last one is the title column.
func renderTable(s *session, n *mdast.Node) (Item, error) {
	var header []string
	if n.Header != nil {
		cells, err := s.cells(n.Header)
		if err != nil {
			return nil, err
		}
		header = cells
	}

	table := &notion.Table{Schema: make(map[string]notion.Column, len(header))}
	for i, name := range header {
		if i == len(header)-1 {
			table.Columns = append(table.Columns, notion.TitleColumnID)
			table.Schema[notion.TitleColumnID] = notion.Column{Name: name, Type: notion.ColumnTitle}
			break
		}
		id, err := s.columnID(table.Schema)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, id)
		table.Schema[id] = notion.Column{Name: name, Type: notion.ColumnText}
	}

	table.Rows = make([][]string, 0, len(n.Children))
	for _, row := range n.Children {
		cells, err := s.cells(row)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, cells)
	}

	return block(notion.TableBlock(table)), nil
}

// cells renders one row to its cell strings.
func (s *session) cells(row *mdast.Node) ([]string, error) {
	it, err := s.render(row)
	if err != nil {
		return nil, err
	}
	runs := runsOf(flatten(nil, it))
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.Content)
	}
	return out, nil
}

// columnID draws identifiers until one is unused and not the title key.
func (s *session) columnID(taken map[string]notion.Column) (string, error) {
	for range maxIDAttempts {
		id := s.renderer.ids.NewID()
		if _, dup := taken[id]; id != "" && id != notion.TitleColumnID && !dup {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrColumnID, maxIDAttempts)
}

func renderTableRow(s *session, n *mdast.Node) (Item, error) {
	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}
	return Items(items), nil
}

// renderTableCell reduces a cell to one plain run. Cells are text-only in
// the target format; blocks such as images are dropped.
func renderTableCell(s *session, n *mdast.Node) (Item, error) {
	items, err := s.renderMany(n.Children)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if b, ok := it.(BlockItem); ok {
			s.degrade(EventTableCellDropped, n.Kind,
				fmt.Sprintf("%s dropped from table cell", b.Block.Type))
		}
	}
	return run(notion.Text(notion.PlainText(runsOf(items)))), nil
}
