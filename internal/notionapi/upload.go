package notionapi

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2notion/internal/notion"
)

// MaxBatchSize is the largest number of children accepted per append call.
const MaxBatchSize = 100

// Appender creates blocks under an existing parent.
type Appender interface {
	AppendChildren(ctx context.Context, parentID string, blocks []*notion.Block) ([]string, error)
}

type pending struct {
	parentID string
	blocks   []*notion.Block
}

// AppendTree uploads blocks under parentID level by level and returns the
// number of blocks created. Children are appended under the id returned for
// their parent once the whole level exists. Tables carry their rows inline.
func AppendTree(ctx context.Context, app Appender, parentID string, blocks []*notion.Block) (int, error) {
	queue := []pending{{parentID: parentID, blocks: blocks}}
	created := 0

	for len(queue) > 0 {
		var next []pending

		for _, p := range queue {
			for start := 0; start < len(p.blocks); start += MaxBatchSize {
				if err := ctx.Err(); err != nil {
					return created, err
				}

				end := min(start+MaxBatchSize, len(p.blocks))
				batch := p.blocks[start:end]

				ids, err := app.AppendChildren(ctx, p.parentID, batch)
				if err != nil {
					return created, fmt.Errorf("appending under %s: %w", p.parentID, err)
				}
				if len(ids) != len(batch) {
					return created, fmt.Errorf("%w: %d ids for %d blocks", ErrResponse, len(ids), len(batch))
				}
				created += len(batch)

				for i, b := range batch {
					if len(b.Children) > 0 && b.Type != notion.TypeTable {
						next = append(next, pending{parentID: ids[i], blocks: b.Children})
					}
				}
			}
		}

		queue = next
	}

	return created, nil
}
