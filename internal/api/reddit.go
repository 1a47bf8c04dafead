// Package api retrieves data from Reddit's public JSON API: a thin GET
// transport, a tolerant response sanitizer, and a deduplicating paginator
// that the domain methods below are mapped onto.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/snoosift/snoosift/internal/models"
)

// Post sort orders accepted by the listing endpoints.
var ValidSorts = []string{"hot", "new", "top", "rising", "controversial", "best"}

// Timeframes accepted by top/controversial listings and search.
var ValidTimeframes = []string{"hour", "day", "week", "month", "year", "all"}

// sortParams builds the shared sort/timeframe query parameters. Empty
// values are simply omitted; the upstream applies its own defaults.
func sortParams(sort, timeframe string) url.Values {
	params := url.Values{}
	if sort != "" {
		params.Set("sort", sort)
	}
	if timeframe != "" {
		params.Set("t", timeframe)
	}
	return params
}

// getThing fetches one endpoint expected to return a single Thing envelope.
func (c *Client) getThing(ctx context.Context, path string) (*models.Thing, error) {
	raw, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	var thing models.Thing
	if err := json.Unmarshal(raw, &thing); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &thing, nil
}

// GetUser fetches one user's profile.
func (c *Client) GetUser(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, fmt.Errorf("username is required")
	}
	thing, err := c.getThing(ctx, "/user/"+url.PathEscape(name)+"/about.json")
	if err != nil {
		return nil, err
	}
	user := sanitizeUser(thing)
	if user == nil {
		return nil, fmt.Errorf("unexpected response for user %s", name)
	}
	return user, nil
}

// GetSubreddit fetches one community's profile. User profile spaces come
// back with IsUserProfile set.
func (c *Client) GetSubreddit(ctx context.Context, name string) (*models.Subreddit, error) {
	if name == "" {
		return nil, fmt.Errorf("subreddit name is required")
	}
	thing, err := c.getThing(ctx, "/r/"+url.PathEscape(name)+"/about.json")
	if err != nil {
		return nil, err
	}
	sub := sanitizeSubreddit(thing)
	if sub == nil {
		return nil, fmt.Errorf("unexpected response for subreddit %s", name)
	}
	return sub, nil
}

// GetWikiPage fetches one wiki page of a subreddit.
func (c *Client) GetWikiPage(ctx context.Context, subreddit, pageName string) (*models.WikiPage, error) {
	if subreddit == "" || pageName == "" {
		return nil, fmt.Errorf("subreddit and page are required")
	}
	thing, err := c.getThing(ctx, "/r/"+url.PathEscape(subreddit)+"/wiki/"+pageName+".json")
	if err != nil {
		return nil, err
	}
	if thing.Kind != models.KindWikiPage || !dataIsUsable(thing) {
		return nil, fmt.Errorf("unexpected response for wiki page %s/%s", subreddit, pageName)
	}
	var wikiPage models.WikiPage
	if err := json.Unmarshal(thing.Data, &wikiPage); err != nil {
		return nil, fmt.Errorf("failed to parse wiki page: %w", err)
	}
	wikiPage.Page = pageName
	return &wikiPage, nil
}

// GetWikiPages lists the wiki page names of a subreddit.
func (c *Client) GetWikiPages(ctx context.Context, subreddit string) ([]string, error) {
	if subreddit == "" {
		return nil, fmt.Errorf("subreddit name is required")
	}
	raw, err := c.get(ctx, "/r/"+url.PathEscape(subreddit)+"/wiki/pages.json", nil)
	if err != nil {
		return nil, err
	}
	var response struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to parse wiki page list: %w", err)
	}
	return response.Data, nil
}

// GetUserPosts fetches a user's submissions, newest sort first by default.
func (c *Client) GetUserPosts(ctx context.Context, name, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	return c.userListing(ctx, name, "submitted", sort, timeframe, limit, sink)
}

// GetUserComments fetches a user's comments.
func (c *Client) GetUserComments(ctx context.Context, name, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	return c.userListing(ctx, name, "comments", sort, timeframe, limit, sink)
}

// GetUserOverview fetches a user's mixed posts-and-comments history.
func (c *Client) GetUserOverview(ctx context.Context, name, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	return c.userListing(ctx, name, "overview", sort, timeframe, limit, sink)
}

func (c *Client) userListing(ctx context.Context, name, feed, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("username is required")
	}
	return c.fetchAll(ctx, ListingQuery{
		Path:   "/user/" + url.PathEscape(name) + "/" + feed + ".json",
		Params: sortParams(sort, timeframe),
		Limit:  limit,
		Sink:   sink,
	})
}

// GetUserModerated fetches the communities a user moderates. The endpoint
// returns the full set in one response, so there is no pagination here.
func (c *Client) GetUserModerated(ctx context.Context, name string) ([]models.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("username is required")
	}
	raw, err := c.get(ctx, "/user/"+url.PathEscape(name)+"/moderated_subreddits.json", nil)
	if err != nil {
		return nil, err
	}
	return sanitizeModeratedList(raw), nil
}

// GetSubredditPosts fetches a community's posts for the given sort.
func (c *Client) GetSubredditPosts(ctx context.Context, name, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("subreddit name is required")
	}
	if sort == "" {
		sort = "hot"
	}
	return c.fetchAll(ctx, ListingQuery{
		Path:   "/r/" + url.PathEscape(name) + "/" + sort + ".json",
		Params: sortParams("", timeframe),
		Limit:  limit,
		Sink:   sink,
	})
}

// GetFrontPage fetches the site-wide front page listing.
func (c *Client) GetFrontPage(ctx context.Context, sort string, limit int, sink StatusSink) ([]models.Record, error) {
	if sort == "" {
		sort = "best"
	}
	return c.fetchAll(ctx, ListingQuery{
		Path:  "/" + sort + ".json",
		Limit: limit,
		Sink:  sink,
	})
}

// GetNewSubreddits fetches recently created communities.
func (c *Client) GetNewSubreddits(ctx context.Context, limit int, sink StatusSink) ([]models.Record, error) {
	return c.fetchAll(ctx, ListingQuery{Path: "/subreddits/new.json", Limit: limit, Sink: sink})
}

// GetPopularSubreddits fetches communities ranked by activity.
func (c *Client) GetPopularSubreddits(ctx context.Context, limit int, sink StatusSink) ([]models.Record, error) {
	return c.fetchAll(ctx, ListingQuery{Path: "/subreddits/popular.json", Limit: limit, Sink: sink})
}

// SearchPosts searches site-wide for posts matching the query.
func (c *Client) SearchPosts(ctx context.Context, query, sort, timeframe string, limit int, sink StatusSink) ([]models.Record, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	params := sortParams(sort, timeframe)
	params.Set("q", query)
	return c.fetchAll(ctx, ListingQuery{
		Path:   "/search.json",
		Params: params,
		Limit:  limit,
		Sink:   sink,
	})
}

// SearchSubreddits searches for communities matching the query.
func (c *Client) SearchSubreddits(ctx context.Context, query string, limit int, sink StatusSink) ([]models.Record, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	return c.fetchAll(ctx, ListingQuery{
		Path:   "/subreddits/search.json",
		Params: params,
		Limit:  limit,
		Sink:   sink,
	})
}

// SearchUsers searches for accounts matching the query.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int, sink StatusSink) ([]models.Record, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	return c.fetchAll(ctx, ListingQuery{
		Path:   "/users/search.json",
		Params: params,
		Limit:  limit,
		Sink:   sink,
	})
}

// PostWithComments bundles a post with its flattened comment tree.
type PostWithComments struct {
	Post     *models.Post
	Comments []models.Record
}

// GetPostWithComments fetches one post and up to limit of its comments.
// The endpoint answers with a 2-element array [post-listing,
// comment-listing]; truncated branches surface as continuation markers and
// are expanded through bounded-concurrency sub-fetches.
func (c *Client) GetPostWithComments(ctx context.Context, subreddit, postID string, limit int, sink StatusSink) (*PostWithComments, error) {
	if subreddit == "" || postID == "" {
		return nil, fmt.Errorf("subreddit and post id are required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", pageSize))
	raw, err := c.get(ctx, "/r/"+url.PathEscape(subreddit)+"/comments/"+url.PathEscape(postID)+".json", params)
	if err != nil {
		return nil, err
	}

	var elements []*models.Thing
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("failed to parse comment tree response: %w", err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("empty comment tree response")
	}

	result := &PostWithComments{}
	postPage := sanitizeListingThing(elements[0])
	for _, item := range postPage.items {
		if post, ok := item.(*models.Post); ok {
			result.Post = post
			break
		}
	}

	acc := newAccumulator(limit)
	var moreIDs []string
	if len(elements) > 1 {
		comments, more := flattenComments(elements[1], 0)
		acc.add(comments)
		moreIDs = more
	}

	if len(moreIDs) > 0 && !acc.full() {
		if err := c.expandMore(ctx, postID, moreIDs, acc, sink); err != nil {
			return nil, err
		}
	}

	result.Comments = acc.records
	return result, nil
}
