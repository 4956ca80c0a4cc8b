package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2notion/internal/notion"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	a, b, c := notion.Text("a"), notion.Text("b"), notion.Text("c")
	d := notion.Divider()

	nested := Items{
		run(a),
		Items{Items{run(b)}, nil, block(d)},
		Items{},
		RunItem{},
		run(c),
	}

	got := flatten(nil, nested)
	want := []Item{run(a), run(b), block(d), run(c)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksOf(t *testing.T) {
	t.Parallel()

	a, b := notion.Text("a"), notion.Text("b")
	img := notion.ImageBlock("x.png")

	got := blocksOf([]Item{run(a), run(b), block(img), run(a)})
	want := []*notion.Block{
		notion.Paragraph(a, b),
		img,
		notion.Paragraph(a),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocksOf() mismatch (-want +got):\n%s", diff)
	}
}
