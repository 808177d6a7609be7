package source

import (
	"context"
	"io"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

type pageFunc func(ctx context.Context, after string) ([]*domain.ContentItem, string, error)

// pageStream walks a paginated listing lazily, one remote page at a time.
type pageStream struct {
	fetch pageFunc
	buf   []*domain.ContentItem
	after string
	done  bool
}

func (ps *pageStream) Next(ctx context.Context) (*domain.ContentItem, error) {
	for len(ps.buf) == 0 {
		if ps.done {
			return nil, io.EOF
		}
		items, after, err := ps.fetch(ctx, ps.after)
		if err != nil {
			return nil, err
		}
		if after == "" || len(items) == 0 {
			ps.done = true
		}
		ps.after = after
		ps.buf = items
	}
	item := ps.buf[0]
	ps.buf = ps.buf[1:]
	return item, nil
}

// sliceStream serves a fixed set of items; used by the mock source. When
// failWith is set the stream ends with that error instead of a clean EOF.
type sliceStream struct {
	items    []*domain.ContentItem
	failWith error
	pos      int
}

func (ss *sliceStream) Next(ctx context.Context) (*domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ss.pos >= len(ss.items) {
		if ss.failWith != nil {
			return nil, ss.failWith
		}
		return nil, io.EOF
	}
	item := ss.items[ss.pos]
	ss.pos++
	return item, nil
}
