package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentChild(id string) string {
	return fmt.Sprintf(`{"kind":"t1","data":{"id":%q,"name":"t1_%s","body":"comment %s","replies":""}}`, id, id, id)
}

func commentTreeResponse(postID string, commentChildren ...string) []byte {
	post := listingJSON("", postChild(postID))
	comments := listingJSON("", commentChildren...)
	return []byte(fmt.Sprintf("[%s,%s]", post, comments))
}

func moreChildrenResponse(things ...string) []byte {
	return []byte(fmt.Sprintf(`{"json":{"data":{"things":[%s]}}}`, strings.Join(things, ",")))
}

func TestGetPostWithCommentsExpandsContinuations(t *testing.T) {
	var moreCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/r/golang/comments/abc"):
			w.Write(commentTreeResponse("abc",
				commentChild("top1"),
				commentChild("top2"),
				`{"kind":"more","data":{"count":3,"children":["x1","x2"]}}`,
			))
		case r.URL.Path == "/api/morechildren.json":
			moreCalls.Add(1)
			assert.Equal(t, "t3_abc", r.URL.Query().Get("link_id"))
			children := r.URL.Query().Get("children")
			if strings.Contains(children, "x1") {
				// One resolved comment, one duplicate of an already-seen
				// comment, and a nested continuation.
				w.Write(moreChildrenResponse(
					commentChild("x1"),
					commentChild("top1"),
					`{"kind":"more","data":{"children":["y1"]}}`,
				))
				return
			}
			w.Write(moreChildrenResponse(commentChild("y1")))
		default:
			http.Error(w, "unexpected path", http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	result, err := client.GetPostWithComments(context.Background(), "golang", "abc", 50, nil)
	require.NoError(t, err)

	require.NotNil(t, result.Post)
	assert.Equal(t, "t3_abc", result.Post.DedupeKey())

	keys := make([]string, 0, len(result.Comments))
	for _, rec := range result.Comments {
		keys = append(keys, rec.DedupeKey())
	}
	// top1 arrives again through the continuation fetch but stays unique,
	// and the nested continuation gets a second round trip.
	assert.ElementsMatch(t, []string{"t1_top1", "t1_top2", "t1_x1", "t1_y1"}, keys)
	assert.Equal(t, int32(2), moreCalls.Load())
}

func TestGetPostWithCommentsSkipsExpansionAtLimit(t *testing.T) {
	var moreCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/morechildren.json" {
			moreCalls.Add(1)
			w.Write(moreChildrenResponse())
			return
		}
		w.Write(commentTreeResponse("abc",
			commentChild("top1"),
			commentChild("top2"),
			`{"kind":"more","data":{"children":["x1"]}}`,
		))
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	result, err := client.GetPostWithComments(context.Background(), "golang", "abc", 2, nil)
	require.NoError(t, err)
	assert.Len(t, result.Comments, 2)
	assert.Equal(t, int32(0), moreCalls.Load(), "limit already reached, no expansion expected")
}

func TestGetPostWithCommentsPropagatesExpansionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/morechildren.json" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write(commentTreeResponse("abc",
			commentChild("top1"),
			`{"kind":"more","data":{"children":["x1"]}}`,
		))
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	_, err := client.GetPostWithComments(context.Background(), "golang", "abc", 50, nil)
	assert.Error(t, err)
}

func TestFetchMoreChildrenBatchesManyIDs(t *testing.T) {
	// 250 pending ids split into batches of at most 100, all dispatched in
	// one wave of three concurrent sub-fetches.
	var mu sync.Mutex
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		children := strings.Split(r.URL.Query().Get("children"), ",")
		mu.Lock()
		batchSizes = append(batchSizes, len(children))
		mu.Unlock()

		things := make([]string, 0, len(children))
		for _, id := range children {
			things = append(things, commentChild(id))
		}
		w.Write(moreChildrenResponse(things...))
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%03d", i)
	}

	acc := newAccumulator(1000)
	err := client.expandMore(context.Background(), "abc", ids, acc, nil)
	require.NoError(t, err)

	assert.Len(t, acc.records, 250)
	assert.ElementsMatch(t, []int{100, 100, 50}, batchSizes)
}
