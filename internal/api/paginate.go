package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/snoosift/snoosift/internal/models"
)

// StatusSink receives one-line progress updates during a bulk retrieval.
// Implementations must tolerate being called from the paginator goroutine.
type StatusSink interface {
	Update(text string)
}

type noopSink struct{}

func (noopSink) Update(string) {}

// ListingQuery describes one paginated retrieval: a filled-in endpoint path,
// its fixed query parameters, and the total number of unique records wanted.
type ListingQuery struct {
	Path   string
	Params url.Values
	Limit  int
	Sink   StatusSink
}

// accumulator owns the growing record sequence for one invocation. Records
// are appended in arrival order and deduplicated by DedupeKey; it never
// holds more than limit entries. Writes happen only on the paginator call
// stack; concurrent sub-fetches hand their results back over a channel and
// are merged here by a single goroutine.
type accumulator struct {
	limit   int
	seen    map[string]struct{}
	records []models.Record
}

func newAccumulator(limit int) *accumulator {
	return &accumulator{
		limit: limit,
		seen:  make(map[string]struct{}),
	}
}

// add appends items in order, skipping duplicates, stopping at the limit.
func (a *accumulator) add(items []models.Record) {
	for _, item := range items {
		if a.full() {
			return
		}
		key := item.DedupeKey()
		if _, dup := a.seen[key]; dup {
			continue
		}
		a.seen[key] = struct{}{}
		a.records = append(a.records, item)
	}
}

func (a *accumulator) full() bool { return len(a.records) >= a.limit }

// fetchAll walks a cursor-paginated listing endpoint until it has collected
// up to q.Limit unique records or the upstream runs out.
//
// Terminal conditions, checked in order after each page:
//   - the page's raw child count is below the requested page size (the
//     upstream has no more data, regardless of limit);
//   - the limit is reached;
//   - the after cursor is absent, or repeats one seen earlier in this
//     invocation (the API can echo a stale cursor; looping on it forever is
//     the failure mode this guards against).
//
// A transport or HTTP failure aborts the whole call: the error propagates
// and the partial accumulation is discarded.
func (c *Client) fetchAll(ctx context.Context, q ListingQuery) ([]models.Record, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	sink := q.Sink
	if sink == nil {
		sink = noopSink{}
	}

	acc := newAccumulator(q.Limit)
	seenCursors := make(map[string]struct{})
	cursor := ""

	for pageNum := 1; ; pageNum++ {
		params := url.Values{}
		for k, vs := range q.Params {
			params[k] = vs
		}
		params.Set("limit", strconv.Itoa(pageSize))
		if cursor != "" {
			params.Set("after", cursor)
		}

		raw, err := c.get(ctx, q.Path, params)
		if err != nil {
			return nil, err
		}

		pg := sanitizeListing(raw)
		acc.add(pg.items)

		sink.Update(fmt.Sprintf("page %d · %d items", pageNum, len(acc.records)))
		if c.logger != nil {
			c.logger.Debug("page fetched",
				"endpoint", q.Path, "page", pageNum,
				"raw", pg.rawCount, "collected", len(acc.records))
		}

		if pg.rawCount < pageSize {
			break
		}
		if acc.full() {
			break
		}
		if pg.after == "" {
			break
		}
		if _, looped := seenCursors[pg.after]; looped {
			if c.logger != nil {
				c.logger.Warn("stale cursor repeated, stopping", "endpoint", q.Path, "cursor", pg.after)
			}
			break
		}
		seenCursors[pg.after] = struct{}{}
		cursor = pg.after

		if err := c.pace(ctx); err != nil {
			return nil, err
		}
	}

	if len(acc.records) > q.Limit {
		acc.records = acc.records[:q.Limit]
	}
	return acc.records, nil
}
