package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleResponseClient(t *testing.T, body string) (*Client, *string) {
	t.Helper()
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL), WithDelay(0, 0)), &gotPath
}

func TestGetUser(t *testing.T) {
	client, gotPath := singleResponseClient(t,
		`{"kind":"t2","data":{"id":"abc","name":"spez","link_karma":100,"comment_karma":200,"created_utc":1118030400.0}}`)

	user, err := client.GetUser(context.Background(), "spez")
	require.NoError(t, err)
	assert.Equal(t, "/user/spez/about.json", *gotPath)
	assert.Equal(t, "spez", user.Name)
	assert.Equal(t, "t2_abc", user.DedupeKey())
	require.NotNil(t, user.LinkKarma)
	assert.Equal(t, 100, *user.LinkKarma)
}

func TestGetUserSuspendedAccount(t *testing.T) {
	// Suspended accounts come back without karma or creation fields.
	client, _ := singleResponseClient(t,
		`{"kind":"t2","data":{"name":"troublemaker","is_suspended":true}}`)

	user, err := client.GetUser(context.Background(), "troublemaker")
	require.NoError(t, err)
	assert.True(t, user.IsSuspended)
	assert.Nil(t, user.TotalKarma)
	assert.Nil(t, user.CreatedUTC)
}

func TestGetUserRejectsWrongKind(t *testing.T) {
	client, _ := singleResponseClient(t, `{"kind":"Listing","data":{"children":[]}}`)
	_, err := client.GetUser(context.Background(), "spez")
	assert.Error(t, err)
}

func TestGetUserRequiresName(t *testing.T) {
	client := NewClient(WithDelay(0, 0))
	_, err := client.GetUser(context.Background(), "")
	assert.Error(t, err)
}

func TestGetSubreddit(t *testing.T) {
	client, gotPath := singleResponseClient(t,
		`{"kind":"t5","data":{"id":"2rc7j","name":"t5_2rc7j","display_name":"golang","title":"Go","subscribers":250000,"subreddit_type":"public"}}`)

	sub, err := client.GetSubreddit(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "/r/golang/about.json", *gotPath)
	assert.Equal(t, "golang", sub.DisplayName)
	assert.False(t, sub.IsUserProfile)
}

func TestGetWikiPage(t *testing.T) {
	client, gotPath := singleResponseClient(t,
		`{"kind":"wikipage","data":{"content_md":"# Rules","revision_date":1609459200.0,"may_revise":false}}`)

	page, err := client.GetWikiPage(context.Background(), "golang", "index")
	require.NoError(t, err)
	assert.Equal(t, "/r/golang/wiki/index.json", *gotPath)
	assert.Equal(t, "index", page.Page)
	assert.Equal(t, "# Rules", page.ContentMD)
	assert.Equal(t, "wiki/index", page.DedupeKey())
}

func TestGetWikiPages(t *testing.T) {
	client, gotPath := singleResponseClient(t, `{"kind":"wikipagelisting","data":["index","faq","config/sidebar"]}`)

	pages, err := client.GetWikiPages(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "/r/golang/wiki/pages.json", *gotPath)
	assert.Equal(t, []string{"index", "faq", "config/sidebar"}, pages)
}

func TestGetUserModerated(t *testing.T) {
	client, gotPath := singleResponseClient(t,
		`{"kind":"ModeratedList","data":[{"name":"t5_aaa","sr":"golang","title":"Go","subscribers":100}]}`)

	records, err := client.GetUserModerated(context.Background(), "spez")
	require.NoError(t, err)
	assert.Equal(t, "/user/spez/moderated_subreddits.json", *gotPath)
	require.Len(t, records, 1)
	assert.Equal(t, "moderated_subreddit", records[0].RecordKind())
}

func TestSearchPostsSetsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write(listingJSON("", postChild("aaa")))
	}))
	t.Cleanup(server.Close)
	client := NewClient(WithBaseURL(server.URL), WithDelay(0, 0))

	records, err := client.SearchPosts(context.Background(), "gopher plushie", "top", "all", 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "gopher plushie", gotQuery)
	assert.Len(t, records, 1)
}

func TestSearchRequiresQuery(t *testing.T) {
	client := NewClient(WithDelay(0, 0))
	_, err := client.SearchPosts(context.Background(), "", "", "", 10, nil)
	assert.Error(t, err)
	_, err = client.SearchSubreddits(context.Background(), "", 10, nil)
	assert.Error(t, err)
	_, err = client.SearchUsers(context.Background(), "", 10, nil)
	assert.Error(t, err)
}
