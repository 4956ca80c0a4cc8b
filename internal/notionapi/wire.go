package notionapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/alnah/go-md2notion/internal/notion"
)

// MaxTextLength is the longest content a single rich-text object may carry.
const MaxTextLength = 2000

// ErrTableShape indicates a table row whose width differs from its schema.
var ErrTableShape = errors.New("table row width does not match columns")

// encodeBlock returns the API payload for b without its children. Tables are
// converted to native table blocks carrying their rows inline.
func encodeBlock(b *notion.Block) (json.RawMessage, error) {
	if b.Type == notion.TypeTable {
		return encodeTable(b.Table)
	}

	out := b.WithoutChildren()
	out.RichText = splitRuns(b.RichText)
	if b.Image != nil {
		img := *b.Image
		img.Caption = splitRuns(img.Caption)
		out.Image = &img
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding %s block: %w", b.Type, err)
	}
	return data, nil
}

type tableRow struct {
	Object   string        `json:"object"`
	Type     string        `json:"type"`
	TableRow tableRowCells `json:"table_row"`
}

type tableRowCells struct {
	Cells [][]*notion.TextRun `json:"cells"`
}

type nativeTable struct {
	TableWidth      int        `json:"table_width"`
	HasColumnHeader bool       `json:"has_column_header"`
	HasRowHeader    bool       `json:"has_row_header"`
	Children        []tableRow `json:"children"`
}

// encodeTable lays the schema labels out as the header row followed by the
// body rows, all in column order.
func encodeTable(t *notion.Table) (json.RawMessage, error) {
	if t == nil {
		return nil, fmt.Errorf("encoding table block: %w", ErrTableShape)
	}

	width := len(t.Columns)
	header := make([]string, width)
	for i, key := range t.Columns {
		header[i] = t.Schema[key].Name
	}

	rows := make([]tableRow, 0, len(t.Rows)+1)
	rows = append(rows, newTableRow(header))
	for i, r := range t.Rows {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrTableShape, i, len(r), width)
		}
		rows = append(rows, newTableRow(r))
	}

	data, err := json.Marshal(map[string]any{
		"object": "block",
		"type":   notion.TypeTable,
		"table": nativeTable{
			TableWidth:      width,
			HasColumnHeader: true,
			Children:        rows,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding table block: %w", err)
	}
	return data, nil
}

func newTableRow(cells []string) tableRow {
	row := tableRow{Object: "block", Type: "table_row"}
	row.TableRow.Cells = make([][]*notion.TextRun, len(cells))
	for i, c := range cells {
		row.TableRow.Cells[i] = splitRuns([]*notion.TextRun{notion.Text(c)})
	}
	return row
}

// splitRuns returns runs with every content longer than MaxTextLength split
// into consecutive runs that keep the annotations and link.
func splitRuns(runs []*notion.TextRun) []*notion.TextRun {
	if runs == nil {
		return nil
	}
	out := make([]*notion.TextRun, 0, len(runs))
	for _, r := range runs {
		if utf8.RuneCountInString(r.Content) <= MaxTextLength {
			out = append(out, r)
			continue
		}
		rest := r.Content
		for rest != "" {
			cut := byteOffset(rest, MaxTextLength)
			part := r.Clone()
			part.Content = rest[:cut]
			out = append(out, part)
			rest = rest[cut:]
		}
	}
	return out
}

// byteOffset returns the byte index after the first n runes of s, or len(s).
func byteOffset(s string, n int) int {
	i := 0
	for pos := range s {
		if i == n {
			return pos
		}
		i++
	}
	return len(s)
}
