package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind discriminators used by the Reddit JSON API.
const (
	KindComment   = "t1"
	KindUser      = "t2"
	KindPost      = "t3"
	KindSubreddit = "t5"
	KindListing   = "Listing"
	KindMore      = "more"
	KindWikiPage  = "wikipage"
)

// Thing is the envelope every Reddit API entity arrives in: a kind
// discriminator plus an opaque data payload decoded per kind.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is the payload of a kind=Listing Thing. After is the opaque
// pagination cursor; empty means the upstream has no more pages.
type Listing struct {
	After    string   `json:"after"`
	Before   string   `json:"before"`
	Children []*Thing `json:"children"`
}

// More is the payload of a kind=more pseudo-entity inside a comment tree.
// Children holds comment IDs that were truncated from the response and must
// be resolved through /api/morechildren.
type More struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	ParentID string   `json:"parent_id"`
	Children []string `json:"children"`
}

// Edited is a post/comment field Reddit serializes as either a boolean or a
// float timestamp. Old edits arrive as `true` with no timestamp.
type Edited struct {
	IsEdited  bool
	Timestamp float64
}

// UnmarshalJSON handles the mixed bool/float encoding of the edited field.
func (e *Edited) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(string(data)) {
	case "false", "null":
		*e = Edited{}
		return nil
	case "true":
		*e = Edited{IsEdited: true}
		return nil
	}

	var ts float64
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("unrecognized edited value %s: %w", string(data), err)
	}
	*e = Edited{IsEdited: true, Timestamp: ts}
	return nil
}

// MarshalJSON writes the field back in the upstream encoding: false when
// never edited, the edit timestamp otherwise (true for timestampless edits).
func (e Edited) MarshalJSON() ([]byte, error) {
	if !e.IsEdited {
		return []byte("false"), nil
	}
	if e.Timestamp == 0 {
		return []byte("true"), nil
	}
	return json.Marshal(e.Timestamp)
}

// UnixTime converts Reddit's float epoch fields (created_utc and friends)
// into a time.Time. Zero stays zero.
func UnixTime(epoch float64) time.Time {
	if epoch == 0 {
		return time.Time{}
	}
	return time.Unix(int64(epoch), 0).UTC()
}
