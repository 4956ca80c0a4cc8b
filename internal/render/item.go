package render

import "github.com/alnah/go-md2notion/internal/notion"

// Item is what a handler produces: a RunItem, a BlockItem or Items.
// The set is sealed; renderMany flattens Items and keeps the atoms.
type Item interface {
	item()
}

// RunItem is an inline result.
type RunItem struct {
	Run *notion.TextRun
}

// BlockItem is a block-level result.
type BlockItem struct {
	Block *notion.Block
}

// Items is an ordered sequence of results, possibly nested.
type Items []Item

func (RunItem) item()   {}
func (BlockItem) item() {}
func (Items) item()     {}

func run(r *notion.TextRun) Item { return RunItem{Run: r} }
func block(b *notion.Block) Item { return BlockItem{Block: b} }

// flatten appends the atoms of it to dst in order.
func flatten(dst []Item, it Item) []Item {
	switch v := it.(type) {
	case nil:
		return dst
	case Items:
		for _, child := range v {
			dst = flatten(dst, child)
		}
		return dst
	case RunItem:
		if v.Run == nil {
			return dst
		}
	case BlockItem:
		if v.Block == nil {
			return dst
		}
	}
	return append(dst, it)
}

// runsOf returns the runs of a flat item list, dropping blocks.
func runsOf(items []Item) []*notion.TextRun {
	var runs []*notion.TextRun
	for _, it := range items {
		if r, ok := it.(RunItem); ok {
			runs = append(runs, r.Run)
		}
	}
	return runs
}

// blocksOf turns a flat item list into blocks. Consecutive runs are
// grouped into one paragraph; blocks pass through in place.
func blocksOf(items []Item) []*notion.Block {
	var (
		blocks  []*notion.Block
		pending []*notion.TextRun
	)
	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, notion.Paragraph(pending...))
			pending = nil
		}
	}

	for _, it := range items {
		switch v := it.(type) {
		case RunItem:
			pending = append(pending, v.Run)
		case BlockItem:
			flush()
			blocks = append(blocks, v.Block)
		}
	}
	flush()
	return blocks
}
