package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2notion/internal/mdast"
	"github.com/alnah/go-md2notion/internal/notion"
)

// ---------------------------------------------------------------------------
// TestRender_ListItems - Numbered, to_do and bulleted classification
// ---------------------------------------------------------------------------

func TestRender_ListItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item *mdast.Node
		want *notion.Block
	}{
		{
			name: "checked box",
			item: mdast.ListItem("-", mdast.Paragraph(mdast.Text("[x] Buy milk"))),
			want: &notion.Block{Type: notion.TypeToDo, Checked: true, RichText: []*notion.TextRun{text("Buy milk")}},
		},
		{
			name: "upper-case checked box",
			item: mdast.ListItem("*", mdast.Paragraph(mdast.Text("[X] Buy milk"))),
			want: &notion.Block{Type: notion.TypeToDo, Checked: true, RichText: []*notion.TextRun{text("Buy milk")}},
		},
		{
			name: "empty box",
			item: mdast.ListItem("-", mdast.Paragraph(mdast.Text("[ ] Buy milk"))),
			want: &notion.Block{Type: notion.TypeToDo, RichText: []*notion.TextRun{text("Buy milk")}},
		},
		{
			name: "tab after marker",
			item: mdast.ListItem("-", mdast.Paragraph(mdast.Text("[ ]\tBuy milk"))),
			want: &notion.Block{Type: notion.TypeToDo, RichText: []*notion.TextRun{text("Buy milk")}},
		},
		{
			name: "digit leader wins over checkbox",
			item: mdast.ListItem("1.", mdast.Paragraph(mdast.Text("[x] done"))),
			want: &notion.Block{Type: notion.TypeNumberedListItem, RichText: []*notion.TextRun{text("[x] done")}},
		},
		{
			name: "paren delimiter is numbered",
			item: mdast.ListItem("7)", mdast.Paragraph(mdast.Text("seven"))),
			want: &notion.Block{Type: notion.TypeNumberedListItem, RichText: []*notion.TextRun{text("seven")}},
		},
		{
			name: "marker without trailing space is text",
			item: mdast.ListItem("-", mdast.Paragraph(mdast.Text("[x]done"))),
			want: &notion.Block{Type: notion.TypeBulletedListItem, RichText: []*notion.TextRun{text("[x]done")}},
		},
		{
			name: "marker stripped across runs keeps styling",
			item: mdast.ListItem("-", mdast.Paragraph(
				mdast.Text("[x] "),
				mdast.Strong(mdast.Text("Buy")),
				mdast.Text(" milk"),
			)),
			want: &notion.Block{Type: notion.TypeToDo, Checked: true, RichText: []*notion.TextRun{
				styled("Buy", notion.Annotations{Bold: true}),
				text(" milk"),
			}},
		},
		{
			name: "plain bullet",
			item: mdast.ListItem("+", mdast.Paragraph(mdast.Text("item"))),
			want: &notion.Block{Type: notion.TypeBulletedListItem, RichText: []*notion.TextRun{text("item")}},
		},
		{
			name: "nested list becomes children",
			item: mdast.ListItem("-",
				mdast.Paragraph(mdast.Text("parent")),
				mdast.List(mdast.ListItem("-", mdast.Paragraph(mdast.Text("child")))),
			),
			want: &notion.Block{
				Type:     notion.TypeBulletedListItem,
				RichText: []*notion.TextRun{text("parent")},
				Children: []*notion.Block{
					{Type: notion.TypeBulletedListItem, RichText: []*notion.TextRun{text("child")}},
				},
			},
		},
		{
			name: "to_do keeps children",
			item: mdast.ListItem("-",
				mdast.Paragraph(mdast.Text("[ ] parent")),
				mdast.BlockCode("go", "x"),
			),
			want: &notion.Block{
				Type:     notion.TypeToDo,
				RichText: []*notion.TextRun{text("parent")},
				Children: []*notion.Block{notion.CodeBlock("go", "x")},
			},
		},
		{
			name: "loose item paragraphs join",
			item: mdast.ListItem("1.",
				mdast.Paragraph(mdast.Text("a")),
				mdast.Paragraph(mdast.Text("b")),
			),
			want: &notion.Block{Type: notion.TypeNumberedListItem, RichText: []*notion.TextRun{text("a"), text("b")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := mustRender(t, newRenderer(), mdast.Document(mdast.List(tt.item)))
			if diff := cmp.Diff([]*notion.Block{tt.want}, out.Blocks); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_EmptyListItem(t *testing.T) {
	t.Parallel()

	out := mustRender(t, newRenderer(), mdast.Document(mdast.List(
		mdast.ListItem("-"),
		mdast.ListItem("-", mdast.Paragraph(mdast.Text("kept"))),
	)))

	want := []*notion.Block{
		{Type: notion.TypeBulletedListItem, RichText: []*notion.TextRun{text("kept")}},
	}
	if diff := cmp.Diff(want, out.Blocks); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}
