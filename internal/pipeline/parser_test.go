package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2notion/internal/mdast"
)

func parse(t *testing.T, opts ParserOptions, input string) *mdast.Node {
	t.Helper()

	doc, err := NewGoldmarkParser(opts).Parse(context.Background(), input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return doc
}

var allExtensions = ParserOptions{HTML: true, Equations: true}

// ---------------------------------------------------------------------------
// TestGoldmarkParser_Parse - goldmark AST adapted to mdast
// ---------------------------------------------------------------------------

func TestGoldmarkParser_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *mdast.Node
	}{
		{
			name:  "heading and strong",
			input: "# Title\n\nHello **world**",
			want: mdast.Document(
				mdast.Heading(1, mdast.Text("Title")),
				mdast.Paragraph(mdast.Text("Hello "), mdast.Strong(mdast.Text("world"))),
			),
		},
		{
			name:  "emphasis and inline code",
			input: "*a* `b`",
			want: mdast.Document(
				mdast.Paragraph(
					mdast.Emphasis(mdast.Text("a")),
					mdast.Text(" "),
					mdast.InlineCode(mdast.Text("b")),
				),
			),
		},
		{
			name:  "checkbox marker stays text",
			input: "- [x] Buy milk\n- [ ] Eggs",
			want: mdast.Document(
				mdast.List(
					mdast.ListItem("-", mdast.Paragraph(mdast.Text("[x] Buy milk"))),
					mdast.ListItem("-", mdast.Paragraph(mdast.Text("[ ] Eggs"))),
				),
			),
		},
		{
			name:  "ordered leaders count from start",
			input: "3. a\n4. b",
			want: mdast.Document(
				mdast.List(
					mdast.ListItem("3.", mdast.Paragraph(mdast.Text("a"))),
					mdast.ListItem("4.", mdast.Paragraph(mdast.Text("b"))),
				),
			),
		},
		{
			name:  "fenced code",
			input: "```py\nprint(1)\n```",
			want:  mdast.Document(mdast.BlockCode("py", "print(1)")),
		},
		{
			name:  "indented code has no language",
			input: "    x := 1",
			want:  mdast.Document(mdast.BlockCode("", "x := 1")),
		},
		{
			name:  "quote",
			input: "> quoted",
			want:  mdast.Document(mdast.Quote(mdast.Paragraph(mdast.Text("quoted")))),
		},
		{
			name:  "thematic break",
			input: "a\n\n---\n\nb",
			want: mdast.Document(
				mdast.Paragraph(mdast.Text("a")),
				mdast.ThematicBreak(),
				mdast.Paragraph(mdast.Text("b")),
			),
		},
		{
			name:  "table",
			input: "| A | B |\n|---|---|\n| 1 | 2 |",
			want: mdast.Document(
				mdast.Table(
					mdast.TableRow(mdast.TableCell(mdast.Text("A")), mdast.TableCell(mdast.Text("B"))),
					mdast.TableRow(mdast.TableCell(mdast.Text("1")), mdast.TableCell(mdast.Text("2"))),
				),
			),
		},
		{
			name:  "link and image",
			input: "[go](https://go.dev) ![alt](x.png)",
			want: mdast.Document(
				mdast.Paragraph(
					mdast.Link("https://go.dev", mdast.Text("go")),
					mdast.Text(" "),
					mdast.Image("x.png", mdast.Text("alt")),
				),
			),
		},
		{
			name:  "soft break becomes space",
			input: "a\nb",
			want:  mdast.Document(mdast.Paragraph(mdast.Text("a b"))),
		},
		{
			name:  "hard break",
			input: "a\\\nb",
			want:  mdast.Document(mdast.Paragraph(mdast.Text("a"), mdast.LineBreak(), mdast.Text("b"))),
		},
		{
			name:  "escape sequence",
			input: `a \* b`,
			want: mdast.Document(
				mdast.Paragraph(mdast.Text("a "), mdast.EscapeSequence("*"), mdast.Text(" b")),
			),
		},
		{
			name:  "single tilde separate from strikethrough",
			input: "a ~u~ and ~~s~~",
			want: mdast.Document(
				mdast.Paragraph(
					mdast.Text("a "),
					mdast.Text("~u~"),
					mdast.Text(" and "),
					mdast.Strikethrough(mdast.Text("s")),
				),
			),
		},
		{
			name:  "inline equation",
			input: "a $x^2$ b",
			want: mdast.Document(
				mdast.Paragraph(mdast.Text("a "), mdast.InlineEquation("x^2"), mdast.Text(" b")),
			),
		},
		{
			name:  "block equation",
			input: "$$\n\\frac{a}{b}\n$$",
			want:  mdast.Document(mdast.BlockEquation(`\frac{a}{b}`)),
		},
		{
			name:  "single line block equation",
			input: "$$ E = mc^2 $$",
			want:  mdast.Document(mdast.BlockEquation("E = mc^2")),
		},
		{
			name:  "dollar run closed mid-line stays a paragraph",
			input: "$$x$$ is the square.\n\n# Next\n\nMore text.",
			want: mdast.Document(
				mdast.Paragraph(mdast.InlineEquation("x"), mdast.Text(" is the square.")),
				mdast.Heading(1, mdast.Text("Next")),
				mdast.Paragraph(mdast.Text("More text.")),
			),
		},
		{
			name:  "dollar amounts pair up as an inline equation",
			input: "costs $5 and $10",
			want: mdast.Document(
				mdast.Paragraph(mdast.Text("costs "), mdast.InlineEquation("5 and "), mdast.Text("10")),
			),
		},
		{
			name:  "inline html",
			input: "a <b>x</b>",
			want: mdast.Document(
				mdast.Paragraph(
					mdast.Text("a "),
					mdast.HTMLSpan("<b>"),
					mdast.Text("x"),
					mdast.HTMLSpan("</b>"),
				),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse(t, allExtensions, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoldmarkParser_HTMLBlock(t *testing.T) {
	t.Parallel()

	input := "<div>\n<b>hi</b>\n</div>\n"

	t.Run("html extension keeps raw markup", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, allExtensions, input)
		if len(doc.Children) != 1 || doc.Children[0].Kind != mdast.KindHTMLBlock {
			t.Fatalf("expected one HTMLBlock, got %+v", doc.Children)
		}
		if !strings.Contains(doc.Children[0].Content, "<b>hi</b>") {
			t.Errorf("HTMLBlock content = %q", doc.Children[0].Content)
		}
	})

	t.Run("without html extension markup is text", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, ParserOptions{Equations: true}, input)
		if len(doc.Children) != 1 || doc.Children[0].Kind != mdast.KindParagraph {
			t.Fatalf("expected one Paragraph, got %+v", doc.Children)
		}
		if mdast.Find(doc, func(n *mdast.Node) bool { return n.Kind == mdast.KindHTMLBlock }) != nil {
			t.Error("HTMLBlock produced with html extension off")
		}
	})
}

func TestGoldmarkParser_EquationsDisabled(t *testing.T) {
	t.Parallel()

	got := parse(t, ParserOptions{HTML: true}, "costs $5 and $6")
	want := mdast.Document(mdast.Paragraph(mdast.Text("costs $5 and $6")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestGoldmarkParser_UnbalancedDollarIsText(t *testing.T) {
	t.Parallel()

	got := parse(t, allExtensions, "a $$x$ b")
	if mdast.Find(got, func(n *mdast.Node) bool { return n.Kind == mdast.KindInlineEquation }) != nil {
		t.Errorf("unbalanced dollars produced an equation: %+v", got)
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkParser_ContextCancellation - goroutine + select cancellation
// ---------------------------------------------------------------------------

func TestGoldmarkParser_ContextCancellation(t *testing.T) {
	t.Parallel()

	parser := NewGoldmarkParser(allExtensions)

	t.Run("cancelled context returns error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := parser.Parse(ctx, "# Test")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("deadline exceeded returns error", func(t *testing.T) {
		t.Parallel()

		// Create an already-expired context to avoid flaky timing issues
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := parser.Parse(ctx, "# Test")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})

	t.Run("valid context succeeds", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		doc, err := parser.Parse(ctx, "# Test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.PlainText() != "Test" {
			t.Errorf("PlainText() = %q, want %q", doc.PlainText(), "Test")
		}
	})
}
