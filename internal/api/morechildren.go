package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/snoosift/snoosift/internal/models"
)

const (
	// moreConcurrency caps simultaneous in-flight morechildren sub-fetches.
	moreConcurrency = 3
	// moreBatchSize is the most comment IDs sent per morechildren call.
	moreBatchSize = 100
)

// expandMore resolves continuation markers from a comment tree: the
// referenced IDs are fetched through /api/morechildren in batches, at most
// moreConcurrency batches in flight at once, and merged into the same
// accumulator as the ordinary comments. Results within one wave arrive in
// no particular order; the dedupe invariant holds after merge because the
// accumulator is only written from this goroutine.
//
// Sub-fetch responses can themselves contain continuation markers; their
// IDs join the pending queue. Pacing applies between waves, same as between
// listing pages.
func (c *Client) expandMore(ctx context.Context, linkID string, ids []string, acc *accumulator, sink StatusSink) error {
	if sink == nil {
		sink = noopSink{}
	}

	pending := ids
	for len(pending) > 0 && !acc.full() {
		var batches [][]string
		for len(pending) > 0 && len(batches) < moreConcurrency {
			n := moreBatchSize
			if n > len(pending) {
				n = len(pending)
			}
			batches = append(batches, pending[:n])
			pending = pending[n:]
		}

		type result struct {
			records []models.Record
			moreIDs []string
			err     error
		}
		results := make(chan result, len(batches))
		for _, batch := range batches {
			go func(batch []string) {
				records, moreIDs, err := c.fetchMoreChildren(ctx, linkID, batch)
				results <- result{records: records, moreIDs: moreIDs, err: err}
			}(batch)
		}

		var firstErr error
		for range batches {
			res := <-results
			if res.err != nil {
				if firstErr == nil {
					firstErr = res.err
				}
				continue
			}
			acc.add(res.records)
			pending = append(pending, res.moreIDs...)
		}
		if firstErr != nil {
			return firstErr
		}

		sink.Update(fmt.Sprintf("expanding comments · %d items", len(acc.records)))
		if c.logger != nil {
			c.logger.Debug("expanded continuation batch",
				"link", linkID, "collected", len(acc.records), "pending", len(pending))
		}

		if len(pending) > 0 && !acc.full() {
			if err := c.pace(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// fetchMoreChildren resolves one batch of truncated comment IDs. The
// endpoint wraps its things in {json: {data: {things: [...]}}} rather than
// a Listing.
func (c *Client) fetchMoreChildren(ctx context.Context, linkID string, ids []string) ([]models.Record, []string, error) {
	if !strings.HasPrefix(linkID, "t3_") {
		linkID = "t3_" + linkID
	}

	params := url.Values{}
	params.Set("api_type", "json")
	params.Set("link_id", linkID)
	params.Set("children", strings.Join(ids, ","))

	raw, err := c.get(ctx, "/api/morechildren.json", params)
	if err != nil {
		return nil, nil, err
	}

	var response struct {
		JSON struct {
			Data struct {
				Things []*models.Thing `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to parse morechildren response: %w", err)
	}

	var records []models.Record
	var moreIDs []string
	for _, thing := range response.JSON.Data.Things {
		if thing == nil {
			continue
		}
		if thing.Kind == models.KindMore {
			if more := sanitizeMore(thing); more != nil {
				moreIDs = append(moreIDs, more.Children...)
			}
			continue
		}
		if rec := sanitizeThing(thing); rec != nil {
			records = append(records, rec)
		}
	}
	return records, moreIDs, nil
}
