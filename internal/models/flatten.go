package models

// FlatRecord is the tabular projection of a Record, shared by the exporters
// and the archive store. Fields that don't apply to a variant stay zero.
type FlatRecord struct {
	Kind       string
	ID         string
	Fullname   string
	Author     string
	Subreddit  string
	Title      string
	Body       string
	Score      int
	CreatedUTC float64
	Permalink  string
}

// Flatten projects one typed record onto the tabular schema.
func Flatten(rec Record) FlatRecord {
	flat := FlatRecord{Kind: rec.RecordKind(), Fullname: rec.DedupeKey()}
	switch r := rec.(type) {
	case *Post:
		flat.ID = r.ID
		flat.Author = r.Author
		flat.Subreddit = r.Subreddit
		flat.Title = r.Title
		flat.Body = r.SelfText
		flat.Score = r.Score
		flat.CreatedUTC = r.CreatedUTC
		flat.Permalink = r.Permalink
	case *Comment:
		flat.ID = r.ID
		flat.Author = r.Author
		flat.Subreddit = r.Subreddit
		flat.Title = r.LinkTitle
		flat.Body = r.Body
		flat.Score = r.Score
		flat.CreatedUTC = r.CreatedUTC
		flat.Permalink = r.Permalink
	case *User:
		flat.ID = r.ID
		flat.Author = r.Name
		if r.TotalKarma != nil {
			flat.Score = *r.TotalKarma
		}
		if r.CreatedUTC != nil {
			flat.CreatedUTC = *r.CreatedUTC
		}
	case *Subreddit:
		flat.ID = r.ID
		flat.Subreddit = r.DisplayName
		flat.Title = r.Title
		flat.Body = r.PublicDescription
		flat.Score = int(r.Subscribers)
		flat.CreatedUTC = r.CreatedUTC
		flat.Permalink = r.URL
	case *WikiPage:
		flat.Title = r.Page
		flat.Body = r.ContentMD
		flat.CreatedUTC = r.RevisionDate
	case *ModeratedSubreddit:
		flat.Subreddit = r.DisplayName
		flat.Title = r.Title
		flat.Score = int(r.Subscribers)
		flat.Permalink = r.URL
	}
	return flat
}
