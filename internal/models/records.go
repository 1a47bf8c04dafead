package models

// Record is one typed snapshot of an API entity at fetch time. The paginator
// accumulates Records and guarantees no two share a DedupeKey.
type Record interface {
	// RecordKind names the variant ("post", "comment", ...).
	RecordKind() string
	// DedupeKey is the entity's stable fullname (type-prefixed id, e.g.
	// "t3_abc123") when present, else its bare id. Two entities with the
	// same key are the same logical record regardless of page.
	DedupeKey() string
}

// dedupeKey implements the fullname-else-id rule shared by all variants.
func dedupeKey(fullname, id string) string {
	if fullname != "" {
		return fullname
	}
	return id
}

// Post is a link or self post (kind t3).
type Post struct {
	ID            string  `json:"id"`
	Fullname      string  `json:"name"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	SubredditID   string  `json:"subreddit_id"`
	SelfText      string  `json:"selftext"`
	URL           string  `json:"url"`
	Domain        string  `json:"domain"`
	Permalink     string  `json:"permalink"`
	Score         int     `json:"score"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	NumComments   int     `json:"num_comments"`
	Over18        bool    `json:"over_18"`
	IsSelf        bool    `json:"is_self"`
	Locked        bool    `json:"locked"`
	Stickied      bool    `json:"stickied"`
	Gilded        int     `json:"gilded"`
	Edited        Edited  `json:"edited"`
	CreatedUTC    float64 `json:"created_utc"`
	LinkFlairText *string `json:"link_flair_text"`
	Distinguished *string `json:"distinguished"`
	Thumbnail     string  `json:"thumbnail"`
}

func (p *Post) RecordKind() string { return "post" }
func (p *Post) DedupeKey() string  { return dedupeKey(p.Fullname, p.ID) }

// Comment is a single comment (kind t1).
type Comment struct {
	ID          string  `json:"id"`
	Fullname    string  `json:"name"`
	Author      string  `json:"author"`
	Body        string  `json:"body"`
	Subreddit   string  `json:"subreddit"`
	LinkID      string  `json:"link_id"`
	LinkTitle   string  `json:"link_title"`
	ParentID    string  `json:"parent_id"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	ScoreHidden bool    `json:"score_hidden"`
	Gilded      int     `json:"gilded"`
	Stickied    bool    `json:"stickied"`
	Edited      Edited  `json:"edited"`
	CreatedUTC  float64 `json:"created_utc"`
	Depth       int     `json:"depth"`
}

func (c *Comment) RecordKind() string { return "comment" }
func (c *Comment) DedupeKey() string  { return dedupeKey(c.Fullname, c.ID) }

// User is an account (kind t2). Karma and creation fields are pointers
// because the API omits them for suspended accounts.
type User struct {
	ID              string   `json:"id"`
	Fullname        string   `json:"name_prefixed,omitempty"`
	Name            string   `json:"name"`
	CommentKarma    *int     `json:"comment_karma"`
	LinkKarma       *int     `json:"link_karma"`
	TotalKarma      *int     `json:"total_karma"`
	CreatedUTC      *float64 `json:"created_utc"`
	IsGold          bool     `json:"is_gold"`
	IsMod           bool     `json:"is_mod"`
	IsEmployee      bool     `json:"is_employee"`
	IsBlocked       bool     `json:"is_blocked"`
	IsSuspended     bool     `json:"is_suspended"`
	Verified        bool     `json:"verified"`
	HasVerifiedMail *bool    `json:"has_verified_email"`
	IconImg         string   `json:"icon_img"`
}

func (u *User) RecordKind() string { return "user" }

// DedupeKey builds the t2 fullname from the bare id; the about endpoint does
// not echo a prefixed name field for accounts.
func (u *User) DedupeKey() string {
	if u.ID != "" {
		return "t2_" + u.ID
	}
	return u.Name
}

// Subreddit is a community (kind t5). Reddit also serves user profile spaces
// through the same kind with subreddit_type "user"; IsUserProfile marks those
// so callers can tell them apart from literal communities.
type Subreddit struct {
	ID                string  `json:"id"`
	Fullname          string  `json:"name"`
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	PublicDescription string  `json:"public_description"`
	Subscribers       int64   `json:"subscribers"`
	ActiveUserCount   *int    `json:"active_user_count"`
	Over18            bool    `json:"over18"`
	SubredditType     string  `json:"subreddit_type"`
	SubmissionType    string  `json:"submission_type"`
	URL               string  `json:"url"`
	CreatedUTC        float64 `json:"created_utc"`

	// IsUserProfile is set by the sanitizer when subreddit_type == "user".
	IsUserProfile bool `json:"-"`
}

func (s *Subreddit) RecordKind() string {
	if s.IsUserProfile {
		return "user_subreddit"
	}
	return "subreddit"
}
func (s *Subreddit) DedupeKey() string { return dedupeKey(s.Fullname, s.ID) }

// WikiPage is one wiki page of a subreddit (kind wikipage). Wiki pages have
// no fullname; the dedupe key is the page path scoped by the caller.
type WikiPage struct {
	Page         string  `json:"-"`
	ContentMD    string  `json:"content_md"`
	MayRevise    bool    `json:"may_revise"`
	RevisionDate float64 `json:"revision_date"`
	RevisionBy   *Thing  `json:"revision_by"`
}

func (w *WikiPage) RecordKind() string { return "wikipage" }
func (w *WikiPage) DedupeKey() string  { return "wiki/" + w.Page }

// ModeratedSubreddit is one entry of /user/{name}/moderated_subreddits.json.
// The endpoint returns a bare data array rather than a Listing, with its own
// abbreviated field names.
type ModeratedSubreddit struct {
	Fullname    string `json:"name"`
	DisplayName string `json:"sr"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Subscribers int64  `json:"subscribers"`
	Over18      bool   `json:"over_18"`
	UserIsMod   bool   `json:"user_is_moderator"`
}

func (m *ModeratedSubreddit) RecordKind() string { return "moderated_subreddit" }
func (m *ModeratedSubreddit) DedupeKey() string  { return dedupeKey(m.Fullname, m.DisplayName) }
