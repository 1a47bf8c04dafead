package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/snoosift/snoosift/internal/api"
	"github.com/snoosift/snoosift/internal/config"
	"github.com/snoosift/snoosift/internal/db"
	"github.com/snoosift/snoosift/internal/models"
	"github.com/snoosift/snoosift/internal/ui"
)

// fetchResult is what one invocation collected, ready for rendering and the
// optional export/archive/browse steps.
type fetchResult struct {
	target  string
	mode    string
	records []models.Record
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	userFlag := flag.String("user", "", "Fetch a user: profile, posts, comments, overview or moderated (see --mode)")
	subredditFlag := flag.String("subreddit", "", "Fetch a subreddit: posts or about (see --mode)")
	postFlag := flag.String("post", "", "Fetch a post with its comment tree, as subreddit/postid")
	searchFlag := flag.String("search", "", "Site-wide search query (see --mode for posts/subreddits/users)")
	wikiFlag := flag.String("wiki", "", "Fetch a wiki page of --subreddit; \"pages\" lists the page names")
	frontpageFlag := flag.Bool("frontpage", false, "Fetch the site-wide front page")
	discoverFlag := flag.String("discover", "", "List communities: new or popular")
	modeFlag := flag.String("mode", "", "Sub-mode of the chosen target (default: profile/posts)")
	sortFlag := flag.String("sort", "", "Listing sort: "+strings.Join(api.ValidSorts, ", "))
	timeFlag := flag.String("time", "", "Timeframe for top/controversial and search: "+strings.Join(api.ValidTimeframes, ", "))
	limitFlag := flag.Int("limit", 100, "Maximum number of unique records to collect")
	exportFlag := flag.String("export", "", "Export format: "+strings.Join(ui.ExportFormats, ", "))
	archiveFlag := flag.String("archive", "", "Archive the run to this SQLite file")
	browseFlag := flag.Bool("browse", false, "Open the interactive results browser after fetching")
	quietFlag := flag.Bool("quiet", false, "Suppress progress output")
	delayMinFlag := flag.Duration("delay-min", 0, "Minimum delay between page fetches (overrides env)")
	delayMaxFlag := flag.Duration("delay-max", 0, "Maximum delay between page fetches (overrides env)")
	flag.Parse()

	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "snoosift",
	})
	logger.SetLevel(cfg.LogLevel)
	if *quietFlag && cfg.LogLevel < log.ErrorLevel {
		logger.SetLevel(log.ErrorLevel)
	}

	delayMin, delayMax := cfg.DelayMin, cfg.DelayMax
	if *delayMinFlag > 0 {
		delayMin = *delayMinFlag
	}
	if *delayMaxFlag > 0 {
		delayMax = *delayMaxFlag
	}
	if delayMax < delayMin {
		delayMax = delayMin
	}

	if *limitFlag <= 0 {
		ui.PrintError(fmt.Sprintf("--limit must be positive, got %d", *limitFlag))
		os.Exit(1)
	}
	if err := validateChoice(*sortFlag, api.ValidSorts, "--sort"); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	if err := validateChoice(*timeFlag, api.ValidTimeframes, "--time"); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	if err := validateChoice(*exportFlag, ui.ExportFormats, "--export"); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(
		api.WithLogger(logger),
		api.WithDelay(delayMin, delayMax),
	)

	// No target on the command line: ask interactively.
	if *userFlag == "" && *subredditFlag == "" && *postFlag == "" &&
		*searchFlag == "" && *discoverFlag == "" && !*frontpageFlag {
		target, err := ui.PromptForTarget()
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		switch target.Mode {
		case "user":
			*userFlag = target.Value
		case "subreddit":
			*subredditFlag = target.Value
		case "post":
			*postFlag = target.Value
		case "search":
			*searchFlag = target.Value
		case "frontpage":
			*frontpageFlag = true
		}

		if *limitFlag > 500 {
			proceed, err := ui.ConfirmLargeFetch(*limitFlag)
			if err != nil {
				ui.PrintError(err.Error())
				os.Exit(1)
			}
			if !proceed {
				return
			}
		}
	}

	result, err := dispatch(ctx, client, options{
		user:      *userFlag,
		subreddit: *subredditFlag,
		post:      *postFlag,
		search:    *searchFlag,
		wiki:      *wikiFlag,
		frontpage: *frontpageFlag,
		discover:  *discoverFlag,
		mode:      *modeFlag,
		sort:      *sortFlag,
		timeframe: *timeFlag,
		limit:     *limitFlag,
		quiet:     *quietFlag,
	})
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	if len(result.records) > 0 && !*quietFlag {
		ui.PrintSummary(result.target, len(result.records))
	}

	if *exportFlag != "" {
		path, err := ui.ExportRecords(cfg.ExportDir, result.target, *exportFlag, result.records)
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("Exported to " + path)
	}

	if *archiveFlag != "" {
		if err := archiveRun(*archiveFlag, result); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	}

	if *browseFlag && len(result.records) > 0 {
		title := fmt.Sprintf("snoosift · %s · %s", result.mode, result.target)
		if err := ui.BrowseRecords(title, result.records); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	}
}

// options carries the parsed invocation into the dispatcher.
type options struct {
	user      string
	subreddit string
	post      string
	search    string
	wiki      string
	frontpage bool
	discover  string
	mode      string
	sort      string
	timeframe string
	limit     int
	quiet     bool
}

// sink returns the progress sink for bulk fetches, nil when quiet.
func (o options) sink(prefix string) *ui.ProgressLine {
	if o.quiet {
		return nil
	}
	return ui.NewProgressLine(prefix)
}

// dispatch routes the invocation to the right fetch and prints the result.
func dispatch(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	switch {
	case opts.wiki != "":
		return fetchWiki(ctx, client, opts)
	case opts.user != "":
		return fetchUser(ctx, client, opts)
	case opts.post != "":
		return fetchPost(ctx, client, opts)
	case opts.search != "":
		return fetchSearch(ctx, client, opts)
	case opts.discover != "":
		return fetchDiscover(ctx, client, opts)
	case opts.frontpage:
		return fetchFrontPage(ctx, client, opts)
	case opts.subreddit != "":
		return fetchSubreddit(ctx, client, opts)
	}
	return fetchResult{}, fmt.Errorf("no target given; see --help")
}

func fetchUser(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	name := strings.TrimPrefix(opts.user, "u/")
	result := fetchResult{target: "u/" + name, mode: "user"}

	mode := opts.mode
	if mode == "" {
		mode = "profile"
	}

	switch mode {
	case "profile":
		var user *models.User
		err := ui.RunWithSpinner(ctx, "Fetching u/"+name, func(ctx context.Context) error {
			var err error
			user, err = client.GetUser(ctx, name)
			return err
		})
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintUser(user)
		result.records = []models.Record{user}
		return result, nil

	case "moderated":
		var records []models.Record
		err := ui.RunWithSpinner(ctx, "Fetching moderated communities", func(ctx context.Context) error {
			var err error
			records, err = client.GetUserModerated(ctx, name)
			return err
		})
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintHeader("moderated", result.target, len(records))
		ui.PrintRecordTable("Moderated communities", records)
		result.mode = "user/moderated"
		result.records = records
		return result, nil

	case "posts", "comments", "overview":
		sink := opts.sink(result.target + " " + mode)
		var records []models.Record
		var err error
		switch mode {
		case "posts":
			records, err = client.GetUserPosts(ctx, name, opts.sort, opts.timeframe, opts.limit, sinkOrNil(sink))
		case "comments":
			records, err = client.GetUserComments(ctx, name, opts.sort, opts.timeframe, opts.limit, sinkOrNil(sink))
		case "overview":
			records, err = client.GetUserOverview(ctx, name, opts.sort, opts.timeframe, opts.limit, sinkOrNil(sink))
		}
		if sink != nil {
			sink.Done()
		}
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintHeader(mode, result.target, len(records))
		ui.PrintRecordTable("u/"+name+" "+mode, records)
		if mode == "posts" {
			ui.PrintDomainRollup(records)
		}
		result.mode = "user/" + mode
		result.records = records
		return result, nil
	}

	return fetchResult{}, fmt.Errorf("unknown --mode %q for --user (want profile, posts, comments, overview or moderated)", mode)
}

func fetchSubreddit(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	name := strings.TrimPrefix(opts.subreddit, "r/")
	result := fetchResult{target: "r/" + name, mode: "subreddit"}

	mode := opts.mode
	if mode == "" {
		mode = "posts"
	}

	switch mode {
	case "about":
		var sub *models.Subreddit
		err := ui.RunWithSpinner(ctx, "Fetching r/"+name, func(ctx context.Context) error {
			var err error
			sub, err = client.GetSubreddit(ctx, name)
			return err
		})
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintSubreddit(sub)
		result.mode = "subreddit/about"
		result.records = []models.Record{sub}
		return result, nil

	case "posts":
		sink := opts.sink(result.target)
		records, err := client.GetSubredditPosts(ctx, name, opts.sort, opts.timeframe, opts.limit, sinkOrNil(sink))
		if sink != nil {
			sink.Done()
		}
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintHeader("posts", result.target, len(records))
		ui.PrintRecordTable("r/"+name+" posts", records)
		ui.PrintDomainRollup(records)
		result.records = records
		return result, nil
	}

	return fetchResult{}, fmt.Errorf("unknown --mode %q for --subreddit (want posts or about)", mode)
}

func fetchWiki(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	name := strings.TrimPrefix(opts.subreddit, "r/")
	if name == "" {
		return fetchResult{}, fmt.Errorf("--wiki requires --subreddit")
	}

	if opts.wiki == "pages" {
		var pages []string
		err := ui.RunWithSpinner(ctx, "Fetching wiki page list", func(ctx context.Context) error {
			var err error
			pages, err = client.GetWikiPages(ctx, name)
			return err
		})
		if err != nil {
			return fetchResult{}, err
		}
		ui.PrintWikiPageList(name, pages)
		return fetchResult{target: "r/" + name + "/wiki", mode: "wiki/pages"}, nil
	}

	var page *models.WikiPage
	err := ui.RunWithSpinner(ctx, "Fetching wiki/"+opts.wiki, func(ctx context.Context) error {
		var err error
		page, err = client.GetWikiPage(ctx, name, opts.wiki)
		return err
	})
	if err != nil {
		return fetchResult{}, err
	}
	ui.PrintWikiPage(page)
	return fetchResult{
		target:  "r/" + name + "/wiki/" + opts.wiki,
		mode:    "wiki",
		records: []models.Record{page},
	}, nil
}

func fetchPost(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	subreddit, postID, err := splitPostTarget(opts.post, opts.subreddit)
	if err != nil {
		return fetchResult{}, err
	}
	target := fmt.Sprintf("r/%s/%s", subreddit, postID)

	sink := opts.sink(target)
	post, err := client.GetPostWithComments(ctx, subreddit, postID, opts.limit, sinkOrNil(sink))
	if sink != nil {
		sink.Done()
	}
	if err != nil {
		return fetchResult{}, err
	}

	if post.Post != nil {
		ui.PrintPostDetail(post.Post)
	}
	ui.PrintCommentTree(post.Comments)

	records := make([]models.Record, 0, len(post.Comments)+1)
	if post.Post != nil {
		records = append(records, post.Post)
	}
	records = append(records, post.Comments...)
	return fetchResult{target: target, mode: "post", records: records}, nil
}

func fetchSearch(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	result := fetchResult{target: opts.search, mode: "search"}

	mode := opts.mode
	if mode == "" {
		mode = "posts"
	}

	sink := opts.sink("search results")
	var records []models.Record
	var err error
	switch mode {
	case "posts":
		records, err = client.SearchPosts(ctx, opts.search, opts.sort, opts.timeframe, opts.limit, sinkOrNil(sink))
	case "subreddits":
		records, err = client.SearchSubreddits(ctx, opts.search, opts.limit, sinkOrNil(sink))
	case "users":
		records, err = client.SearchUsers(ctx, opts.search, opts.limit, sinkOrNil(sink))
	default:
		return fetchResult{}, fmt.Errorf("unknown --mode %q for --search (want posts, subreddits or users)", mode)
	}
	if sink != nil {
		sink.Done()
	}
	if err != nil {
		return fetchResult{}, err
	}

	ui.PrintHeader("search/"+mode, opts.search, len(records))
	ui.PrintRecordTable(fmt.Sprintf("Search results for %q", opts.search), records)
	if mode == "posts" {
		ui.PrintDomainRollup(records)
	}
	result.mode = "search/" + mode
	result.records = records
	return result, nil
}

func fetchFrontPage(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	sink := opts.sink("front page")
	records, err := client.GetFrontPage(ctx, opts.sort, opts.limit, sinkOrNil(sink))
	if sink != nil {
		sink.Done()
	}
	if err != nil {
		return fetchResult{}, err
	}
	ui.PrintHeader("frontpage", "reddit.com", len(records))
	ui.PrintRecordTable("Front page", records)
	ui.PrintDomainRollup(records)
	return fetchResult{target: "frontpage", mode: "frontpage", records: records}, nil
}

func fetchDiscover(ctx context.Context, client *api.Client, opts options) (fetchResult, error) {
	sink := opts.sink(opts.discover + " communities")
	var records []models.Record
	var err error
	switch opts.discover {
	case "new":
		records, err = client.GetNewSubreddits(ctx, opts.limit, sinkOrNil(sink))
	case "popular":
		records, err = client.GetPopularSubreddits(ctx, opts.limit, sinkOrNil(sink))
	default:
		return fetchResult{}, fmt.Errorf("unknown --discover %q (want new or popular)", opts.discover)
	}
	if sink != nil {
		sink.Done()
	}
	if err != nil {
		return fetchResult{}, err
	}
	ui.PrintHeader("discover/"+opts.discover, "subreddits", len(records))
	ui.PrintRecordTable(opts.discover+" communities", records)
	return fetchResult{target: "subreddits/" + opts.discover, mode: "discover/" + opts.discover, records: records}, nil
}

// archiveRun saves the collected records as one run in the SQLite archive.
func archiveRun(path string, result fetchResult) error {
	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.SaveRun(result.target, result.mode, result.records)
	if err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Archived %d records as run %d in %s", len(result.records), runID, path))
	return nil
}

// splitPostTarget resolves the post target from either subreddit/postid form
// or a separate --subreddit flag.
func splitPostTarget(post, subreddit string) (string, string, error) {
	post = strings.TrimPrefix(post, "r/")
	if parts := strings.SplitN(post, "/", 2); len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	if subreddit != "" {
		return strings.TrimPrefix(subreddit, "r/"), post, nil
	}
	return "", "", fmt.Errorf("--post wants subreddit/postid, got %q", post)
}

// sinkOrNil converts the typed nil of a missing progress line into the
// interface nil the API layer checks against.
func sinkOrNil(p *ui.ProgressLine) api.StatusSink {
	if p == nil {
		return nil
	}
	return p
}

func validateChoice(value string, valid []string, flagName string) error {
	if value == "" || slices.Contains(valid, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", flagName, value, strings.Join(valid, ", "))
}
