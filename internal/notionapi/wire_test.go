package notionapi

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alnah/go-md2notion/internal/notion"
)

func TestSplitRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantRunes []int
	}{
		{name: "short run untouched", content: "hello", wantRunes: []int{5}},
		{name: "exact limit", content: strings.Repeat("a", MaxTextLength), wantRunes: []int{2000}},
		{name: "ascii overflow", content: strings.Repeat("a", 4500), wantRunes: []int{2000, 2000, 500}},
		{name: "multibyte counted in runes", content: strings.Repeat("é", 2001), wantRunes: []int{2000, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := &notion.TextRun{
				Content:     tt.content,
				Annotations: notion.Annotations{Bold: true},
				Link:        &notion.Link{URL: "https://example.com"},
			}
			got := splitRuns([]*notion.TextRun{run})

			if len(got) != len(tt.wantRunes) {
				t.Fatalf("got %d runs, want %d", len(got), len(tt.wantRunes))
			}
			var joined strings.Builder
			for i, r := range got {
				if n := utf8.RuneCountInString(r.Content); n != tt.wantRunes[i] {
					t.Errorf("run %d has %d runes, want %d", i, n, tt.wantRunes[i])
				}
				if !r.Annotations.Bold || r.Link == nil || r.Link.URL != "https://example.com" {
					t.Errorf("run %d lost style: %+v", i, r)
				}
				joined.WriteString(r.Content)
			}
			if joined.String() != tt.content {
				t.Error("split runs do not reassemble to the original content")
			}
		})
	}
}

func TestSplitRuns_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := strings.Repeat("x", 2500)
	run := notion.Text(original)
	splitRuns([]*notion.TextRun{run})
	if run.Content != original {
		t.Error("input run was modified")
	}
}

func TestEncodeTable(t *testing.T) {
	t.Parallel()

	table := &notion.Table{
		Columns: []string{"c1", notion.TitleColumnID},
		Schema: map[string]notion.Column{
			"c1":                 {Name: "Qty", Type: notion.ColumnText},
			notion.TitleColumnID: {Name: "Item", Type: notion.ColumnTitle},
		},
		Rows: [][]string{{"2", "Milk"}},
	}

	raw, err := encodeBlock(notion.TableBlock(table))
	if err != nil {
		t.Fatalf("encodeBlock() error: %v", err)
	}

	var got struct {
		Type  string `json:"type"`
		Table struct {
			TableWidth      int  `json:"table_width"`
			HasColumnHeader bool `json:"has_column_header"`
			Children        []struct {
				Type     string `json:"type"`
				TableRow struct {
					Cells [][]struct {
						Text struct {
							Content string `json:"content"`
						} `json:"text"`
					} `json:"cells"`
				} `json:"table_row"`
			} `json:"children"`
		} `json:"table"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if got.Type != "table" || got.Table.TableWidth != 2 || !got.Table.HasColumnHeader {
		t.Fatalf("unexpected table header fields: %+v", got)
	}
	if len(got.Table.Children) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(got.Table.Children))
	}

	want := [][]string{{"Qty", "Item"}, {"2", "Milk"}}
	for i, row := range got.Table.Children {
		if row.Type != "table_row" {
			t.Errorf("row %d type = %q", i, row.Type)
		}
		for j, cell := range row.TableRow.Cells {
			if len(cell) != 1 || cell[0].Text.Content != want[i][j] {
				t.Errorf("cell[%d][%d] = %+v, want %q", i, j, cell, want[i][j])
			}
		}
	}
}

func TestEncodeTable_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	table := &notion.Table{
		Columns: []string{notion.TitleColumnID},
		Schema:  map[string]notion.Column{notion.TitleColumnID: {Name: "T", Type: notion.ColumnTitle}},
		Rows:    [][]string{{"a", "b"}},
	}
	if _, err := encodeBlock(notion.TableBlock(table)); !errors.Is(err, ErrTableShape) {
		t.Errorf("expected ErrTableShape, got %v", err)
	}
}

func TestEncodeBlock_StripsChildren(t *testing.T) {
	t.Parallel()

	b := &notion.Block{
		Type:     notion.TypeQuote,
		RichText: []*notion.TextRun{notion.Text("q")},
		Children: []*notion.Block{notion.Divider()},
	}
	raw, err := encodeBlock(b)
	if err != nil {
		t.Fatalf("encodeBlock() error: %v", err)
	}
	if strings.Contains(string(raw), `"children"`) {
		t.Errorf("children leaked into payload: %s", raw)
	}
	if len(b.Children) != 1 {
		t.Error("source block was modified")
	}
}
