package ui

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/snoosift/snoosift/internal/models"

	"golang.org/x/net/publicsuffix"
)

// PrintHeader prints a styled header before the results
func PrintHeader(mode, target string, count int) {
	header := titleStyle.Render(fmt.Sprintf("snoosift · %s · %s", mode, target))
	stats := subtitleStyle.Render(fmt.Sprintf("Records: %s", statStyle.Render(fmt.Sprintf("%d", count))))

	fmt.Println()
	fmt.Println(header)
	fmt.Println(stats)
	fmt.Println()
}

// PrintUser renders one account profile as a detail panel.
func PrintUser(user *models.User) {
	lines := []string{
		detailLine("Username", user.Name),
		detailLine("Fullname", user.DedupeKey()),
		detailLine("Created", formatEpochPtr(user.CreatedUTC)),
		detailLine("Link karma", formatIntPtr(user.LinkKarma)),
		detailLine("Comment karma", formatIntPtr(user.CommentKarma)),
		detailLine("Total karma", formatIntPtr(user.TotalKarma)),
	}
	var flags []string
	if user.IsSuspended {
		flags = append(flags, "suspended")
	}
	if user.IsGold {
		flags = append(flags, "gold")
	}
	if user.IsMod {
		flags = append(flags, "moderator")
	}
	if user.IsEmployee {
		flags = append(flags, "employee")
	}
	if user.Verified {
		flags = append(flags, "verified")
	}
	if len(flags) > 0 {
		lines = append(lines, detailLine("Flags", strings.Join(flags, ", ")))
	}
	printPanel("u/"+user.Name, lines)
}

// PrintSubreddit renders one community profile as a detail panel.
func PrintSubreddit(sub *models.Subreddit) {
	name := sub.DisplayName
	if sub.IsUserProfile {
		name += " (user profile space)"
	}
	lines := []string{
		detailLine("Title", sub.Title),
		detailLine("Fullname", sub.DedupeKey()),
		detailLine("Type", sub.SubredditType),
		detailLine("Subscribers", fmt.Sprintf("%d", sub.Subscribers)),
		detailLine("Active users", formatIntPtr(sub.ActiveUserCount)),
		detailLine("Created", formatEpoch(sub.CreatedUTC)),
		detailLine("NSFW", fmt.Sprintf("%t", sub.Over18)),
	}
	if sub.PublicDescription != "" {
		lines = append(lines, "", truncate(sub.PublicDescription, 400))
	}
	printPanel("r/"+name, lines)
}

// PrintWikiPage renders a wiki page header and its markdown body.
func PrintWikiPage(page *models.WikiPage) {
	fmt.Println(titleStyle.Render("wiki/" + page.Page))
	fmt.Println(subtitleStyle.Render("Revised " + formatEpoch(page.RevisionDate)))
	fmt.Println(page.ContentMD)
	fmt.Println()
}

// PrintWikiPageList renders the page names of a subreddit wiki.
func PrintWikiPageList(subreddit string, pages []string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Wiki pages of r/%s (%d)", subreddit, len(pages))))
	for _, p := range pages {
		fmt.Println("  " + rowStyle.Render(p))
	}
	fmt.Println()
}

// PrintPostDetail renders one post as a detail panel.
func PrintPostDetail(post *models.Post) {
	lines := []string{
		detailLine("Author", "u/"+post.Author),
		detailLine("Subreddit", "r/"+post.Subreddit),
		detailLine("Score", fmt.Sprintf("%d (%.0f%% upvoted)", post.Score, post.UpvoteRatio*100)),
		detailLine("Comments", fmt.Sprintf("%d", post.NumComments)),
		detailLine("Posted", formatEpoch(post.CreatedUTC)),
	}
	if !post.IsSelf {
		lines = append(lines, detailLine("Link", post.URL), detailLine("Domain", post.Domain))
	}
	if post.Edited.IsEdited {
		lines = append(lines, detailLine("Edited", formatEpoch(post.Edited.Timestamp)))
	}
	if post.SelfText != "" {
		lines = append(lines, "", truncate(post.SelfText, 600))
	}
	printPanel(truncate(post.Title, 70), lines)
}

// PrintCommentTree renders a flattened comment tree, indenting replies by
// their recorded depth.
func PrintCommentTree(comments []models.Record) {
	for _, rec := range comments {
		comment, ok := rec.(*models.Comment)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", comment.Depth)
		meta := fmt.Sprintf("u/%s · %d points · %s",
			comment.Author, comment.Score, formatEpoch(comment.CreatedUTC))
		fmt.Println(indent + labelStyle.Render(meta))
		for _, line := range strings.Split(truncate(comment.Body, 500), "\n") {
			fmt.Println(indent + rowStyle.Render(line))
		}
		fmt.Println()
	}
}

// PrintRecordTable prints a styled table of fetched records.
//
// This is a CLI report, so the table structure is plain string formatting;
// lipgloss styles only the text. Interactive views use bubbles/table (see
// browse.go).
func PrintRecordTable(title string, records []models.Record) {
	if len(records) == 0 {
		fmt.Println(subtitleStyle.Render(title + ": No data"))
		return
	}

	fmt.Println(titleStyle.Render(title))

	colWidths := []int{6, 20, 12, 18, 8, 40} // #, Kind/ID, Author, Subreddit, Score, Title/Body
	totalWidth := 2
	for _, w := range colWidths {
		totalWidth += w + 3
	}
	totalWidth -= 1

	separator := strings.Repeat("─", totalWidth-2)

	fmt.Println(borderStyle.Render("┌" + separator + "┐"))

	headerRow := fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %-*s │ %-*s │ %-*s │",
		colWidths[0], "#",
		colWidths[1], "Kind/ID",
		colWidths[2], "Author",
		colWidths[3], "Subreddit",
		colWidths[4], "Score",
		colWidths[5], "Title")
	fmt.Println(headerStyle.Render(headerRow))

	fmt.Println(borderStyle.Render("├" + separator + "┤"))

	for i, rec := range records {
		flat := models.Flatten(rec)

		kindID := flat.Kind
		if flat.ID != "" {
			kindID += " " + flat.ID
		}
		rowTitle := flat.Title
		if rowTitle == "" {
			rowTitle = flat.Body
		}
		rowTitle = strings.ReplaceAll(rowTitle, "\n", " ")

		rowText := fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %-*s │ %-*d │ %-*s │",
			colWidths[0], fmt.Sprintf("%d", i+1),
			colWidths[1], truncate(kindID, colWidths[1]),
			colWidths[2], truncate(flat.Author, colWidths[2]),
			colWidths[3], truncate(flat.Subreddit, colWidths[3]),
			colWidths[4], flat.Score,
			colWidths[5], truncate(rowTitle, colWidths[5]))
		fmt.Println(rowStyle.Render(rowText))
	}

	fmt.Println(borderStyle.Render("└" + separator + "┘"))
	fmt.Println()
}

// PrintDomainRollup aggregates link posts by their registrable domain and
// prints the busiest ones. Self posts have no external domain and are
// counted under "(self)".
func PrintDomainRollup(records []models.Record) {
	counts := make(map[string]int)
	total := 0
	for _, rec := range records {
		post, ok := rec.(*models.Post)
		if !ok {
			continue
		}
		total++
		counts[rollupDomain(post)]++
	}
	if total == 0 {
		return
	}

	type domainCount struct {
		domain string
		count  int
	}
	rolled := make([]domainCount, 0, len(counts))
	for d, n := range counts {
		rolled = append(rolled, domainCount{d, n})
	}
	sort.Slice(rolled, func(i, j int) bool {
		if rolled[i].count != rolled[j].count {
			return rolled[i].count > rolled[j].count
		}
		return rolled[i].domain < rolled[j].domain
	})
	if len(rolled) > 10 {
		rolled = rolled[:10]
	}

	fmt.Println(titleStyle.Render("Top domains"))
	for _, dc := range rolled {
		pct := float64(dc.count) / float64(total) * 100
		fmt.Printf("  %s %s\n",
			statStyle.Render(fmt.Sprintf("%4d", dc.count)),
			rowStyle.Render(fmt.Sprintf("%s (%.1f%%)", dc.domain, pct)))
	}
	fmt.Println()
}

// rollupDomain reduces a post's link target to its registrable domain
// (eTLD+1), so blog.example.co.uk and www.example.co.uk count together.
func rollupDomain(post *models.Post) string {
	if post.IsSelf {
		return "(self)"
	}
	host := post.Domain
	if host == "" {
		if u, err := url.Parse(post.URL); err == nil {
			host = u.Hostname()
		}
	}
	if host == "" {
		return "(unknown)"
	}
	if root, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return root
	}
	return host
}

func detailLine(label, value string) string {
	return labelStyle.Render(label+":") + " " + rowStyle.Render(value)
}

func printPanel(title string, lines []string) {
	body := headerStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Println(panelStyle.Render(body))
	fmt.Println()
}

// truncate shortens s to max characters, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatEpoch(epoch float64) string {
	if epoch == 0 {
		return "-"
	}
	return models.UnixTime(epoch).Format(time.DateOnly)
}

func formatEpochPtr(epoch *float64) string {
	if epoch == nil {
		return "-"
	}
	return formatEpoch(*epoch)
}

func formatIntPtr(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
