package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at the given handler with pacing disabled.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL), WithDelay(0, 0))
}

func TestGetSendsIdentificationHeaders(t *testing.T) {
	var gotUA, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))

	_, err := client.get(context.Background(), "/r/golang/about.json", nil)
	require.NoError(t, err)
	assert.Equal(t, userAgent, gotUA)
	assert.Equal(t, "application/json", gotAccept)
}

func TestGetReturnsStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "whoa there, pardner", http.StatusTooManyRequests)
	}))

	_, err := client.get(context.Background(), "/r/golang/new.json", nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Contains(t, statusErr.Body, "whoa there")
}

func TestStatusErrorTruncatesLongBodies(t *testing.T) {
	err := &StatusError{Code: 500, Body: strings.Repeat("x", 1000)}
	assert.Less(t, len(err.Error()), 400)
	assert.Contains(t, err.Error(), "...")
}

func TestGetTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	_, err := client.get(context.Background(), "/frontpage.json", nil)
	assert.Error(t, err)
}

func TestPaceRespectsCancellation(t *testing.T) {
	client := NewClient(WithDelay(10*time.Second, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := client.pace(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPaceDisabledWithZeroMax(t *testing.T) {
	client := NewClient(WithDelay(0, 0))
	start := time.Now()
	require.NoError(t, client.pace(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
