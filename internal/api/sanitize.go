package api

import (
	"bytes"
	"encoding/json"

	"github.com/snoosift/snoosift/internal/models"
)

// The sanitizer converts raw API payloads into typed records. It never
// fails a whole page: entities with a wrong kind, missing data, or fields
// that won't coerce are dropped one at a time. Unknown upstream fields are
// ignored by encoding/json as a matter of course.

// dataIsUsable reports whether a Thing carries a decodable data object.
func dataIsUsable(t *models.Thing) bool {
	if t == nil || len(t.Data) == 0 {
		return false
	}
	trimmed := bytes.TrimSpace(t.Data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// sanitizeThing converts one envelope into a typed record, or nil when the
// discriminator is unknown or the payload is unusable.
func sanitizeThing(t *models.Thing) models.Record {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case models.KindPost:
		if p := sanitizePost(t); p != nil {
			return p
		}
	case models.KindComment:
		if c := sanitizeComment(t); c != nil {
			return c
		}
	case models.KindUser:
		if u := sanitizeUser(t); u != nil {
			return u
		}
	case models.KindSubreddit:
		if s := sanitizeSubreddit(t); s != nil {
			return s
		}
	}
	return nil
}

func sanitizePost(t *models.Thing) *models.Post {
	if t.Kind != models.KindPost || !dataIsUsable(t) {
		return nil
	}
	var post models.Post
	if err := json.Unmarshal(t.Data, &post); err != nil {
		return nil
	}
	if post.ID == "" && post.Fullname == "" {
		return nil
	}
	return &post
}

func sanitizeComment(t *models.Thing) *models.Comment {
	if t.Kind != models.KindComment || !dataIsUsable(t) {
		return nil
	}
	var comment models.Comment
	if err := json.Unmarshal(t.Data, &comment); err != nil {
		return nil
	}
	if comment.ID == "" && comment.Fullname == "" {
		return nil
	}
	return &comment
}

func sanitizeUser(t *models.Thing) *models.User {
	if t.Kind != models.KindUser || !dataIsUsable(t) {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(t.Data, &user); err != nil {
		return nil
	}
	if user.ID == "" && user.Name == "" {
		return nil
	}
	return &user
}

// sanitizeSubreddit handles an API quirk: user profile spaces are served as
// kind t5 with subreddit_type "user". Those are reclassified as user-profile
// subreddits rather than treated as literal communities.
func sanitizeSubreddit(t *models.Thing) *models.Subreddit {
	if t.Kind != models.KindSubreddit || !dataIsUsable(t) {
		return nil
	}
	var sub models.Subreddit
	if err := json.Unmarshal(t.Data, &sub); err != nil {
		return nil
	}
	if sub.ID == "" && sub.Fullname == "" {
		return nil
	}
	sub.IsUserProfile = sub.SubredditType == "user"
	return &sub
}

func sanitizeMore(t *models.Thing) *models.More {
	if t.Kind != models.KindMore || !dataIsUsable(t) {
		return nil
	}
	var more models.More
	if err := json.Unmarshal(t.Data, &more); err != nil {
		return nil
	}
	return &more
}

// page holds the sanitized contents of one listing fetch. rawCount is the
// number of children before sanitization; the short-page terminal check
// compares it against the requested page size.
type page struct {
	items    []models.Record
	moreIDs  []string
	after    string
	rawCount int
}

// sanitizeListing decodes one raw listing response into a page. Malformed
// pages degrade to an empty page rather than an error; a page the paginator
// cannot read is a page with nothing left to collect.
func sanitizeListing(raw []byte) page {
	var envelope models.Thing
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return page{}
	}
	return sanitizeListingThing(&envelope)
}

// sanitizeListingThing is sanitizeListing for an already-decoded envelope,
// as found inside comment-tree array responses.
func sanitizeListingThing(envelope *models.Thing) page {
	if envelope == nil || envelope.Kind != models.KindListing || !dataIsUsable(envelope) {
		return page{}
	}

	var listing models.Listing
	if err := json.Unmarshal(envelope.Data, &listing); err != nil {
		return page{}
	}

	p := page{after: listing.After, rawCount: len(listing.Children)}
	for _, child := range listing.Children {
		if child == nil {
			continue
		}
		if child.Kind == models.KindMore {
			if more := sanitizeMore(child); more != nil {
				p.moreIDs = append(p.moreIDs, more.Children...)
			}
			continue
		}
		if rec := sanitizeThing(child); rec != nil {
			p.items = append(p.items, rec)
		}
	}
	return p
}

// sanitizeModeratedList decodes /user/{name}/moderated_subreddits.json,
// which returns {kind: "ModeratedList", data: [...]} instead of a Listing.
func sanitizeModeratedList(raw []byte) []models.Record {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}

	records := make([]models.Record, 0, len(envelope.Data))
	for _, entry := range envelope.Data {
		var sub models.ModeratedSubreddit
		if err := json.Unmarshal(entry, &sub); err != nil {
			continue
		}
		if sub.Fullname == "" && sub.DisplayName == "" {
			continue
		}
		records = append(records, &sub)
	}
	return records
}

// flattenComments walks a comment-listing Thing depth first, collecting
// comments in page order and aggregating the IDs referenced by continuation
// markers. Reddit nests replies as a full Listing under each comment's
// replies field, or an empty string when there are none.
func flattenComments(thing *models.Thing, depth int) ([]models.Record, []string) {
	if thing == nil || thing.Kind != models.KindListing || !dataIsUsable(thing) {
		return nil, nil
	}

	var listing models.Listing
	if err := json.Unmarshal(thing.Data, &listing); err != nil {
		return nil, nil
	}

	var comments []models.Record
	var moreIDs []string
	for _, child := range listing.Children {
		if child == nil {
			continue
		}
		switch child.Kind {
		case models.KindComment:
			comment := sanitizeComment(child)
			if comment == nil {
				continue
			}
			comment.Depth = depth
			comments = append(comments, comment)

			replies, replyMore := commentReplies(child, depth+1)
			comments = append(comments, replies...)
			moreIDs = append(moreIDs, replyMore...)
		case models.KindMore:
			if more := sanitizeMore(child); more != nil {
				moreIDs = append(moreIDs, more.Children...)
			}
		}
	}
	return comments, moreIDs
}

// commentReplies extracts the nested replies listing from a comment Thing.
func commentReplies(thing *models.Thing, depth int) ([]models.Record, []string) {
	var nested struct {
		Replies json.RawMessage `json:"replies"`
	}
	if err := json.Unmarshal(thing.Data, &nested); err != nil {
		return nil, nil
	}
	// No replies serializes as "".
	if len(nested.Replies) == 0 || string(nested.Replies) == `""` {
		return nil, nil
	}

	var repliesThing models.Thing
	if err := json.Unmarshal(nested.Replies, &repliesThing); err != nil {
		return nil, nil
	}
	return flattenComments(&repliesThing, depth)
}
