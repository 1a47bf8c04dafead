package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeKeyPrefersFullname(t *testing.T) {
	post := &Post{ID: "abc123", Fullname: "t3_abc123"}
	assert.Equal(t, "t3_abc123", post.DedupeKey())

	// Fullname missing: fall back to the bare id.
	assert.Equal(t, "abc123", (&Post{ID: "abc123"}).DedupeKey())
	assert.Equal(t, "def456", (&Comment{ID: "def456"}).DedupeKey())
}

func TestUserDedupeKeyBuildsFullname(t *testing.T) {
	// The about endpoint reuses "name" for the username, so the t2 fullname
	// is derived from the id.
	user := &User{ID: "xyz", Name: "spez"}
	assert.Equal(t, "t2_xyz", user.DedupeKey())

	assert.Equal(t, "spez", (&User{Name: "spez"}).DedupeKey())
}

func TestSubredditRecordKind(t *testing.T) {
	assert.Equal(t, "subreddit", (&Subreddit{DisplayName: "golang"}).RecordKind())
	assert.Equal(t, "user_subreddit", (&Subreddit{DisplayName: "u_spez", IsUserProfile: true}).RecordKind())
}

func TestWikiPageDedupeKey(t *testing.T) {
	page := &WikiPage{Page: "index"}
	assert.Equal(t, "wiki/index", page.DedupeKey())
}

func TestFlattenPost(t *testing.T) {
	flat := Flatten(&Post{
		ID:         "abc",
		Fullname:   "t3_abc",
		Title:      "a title",
		Author:     "someone",
		Subreddit:  "golang",
		SelfText:   "body",
		Score:      42,
		CreatedUTC: 1609459200,
		Permalink:  "/r/golang/comments/abc/a_title/",
	})

	assert.Equal(t, "post", flat.Kind)
	assert.Equal(t, "t3_abc", flat.Fullname)
	assert.Equal(t, "a title", flat.Title)
	assert.Equal(t, 42, flat.Score)
}

func TestFlattenSuspendedUser(t *testing.T) {
	// Suspended accounts have no karma fields; Flatten must not dereference
	// the nil pointers.
	flat := Flatten(&User{ID: "xyz", Name: "gone", IsSuspended: true})
	assert.Equal(t, "user", flat.Kind)
	assert.Equal(t, 0, flat.Score)
	assert.Equal(t, float64(0), flat.CreatedUTC)
}

func TestFlattenModeratedSubreddit(t *testing.T) {
	flat := Flatten(&ModeratedSubreddit{
		Fullname:    "t5_2rc7j",
		DisplayName: "golang",
		Title:       "The Go Programming Language",
		Subscribers: 200000,
	})
	assert.Equal(t, "moderated_subreddit", flat.Kind)
	assert.Equal(t, "golang", flat.Subreddit)
	assert.Equal(t, 200000, flat.Score)
}
