package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snoosift/snoosift/internal/models"
)

// ExportFormats lists the accepted --export values.
var ExportFormats = []string{"csv", "json", "ndjson", "md"}

// ExportRecords writes the fetched records to a timestamped file in dir and
// returns the path. The file is a write-once artifact; an existing file with
// the same name is never appended to.
func ExportRecords(dir, target, format string, records []models.Record) (string, error) {
	filename := exportFilename(target, format)
	path := filepath.Join(dir, filename)

	var content []byte
	var err error
	switch format {
	case "csv":
		content, err = renderCSV(records)
	case "json":
		content, err = renderJSON(records)
	case "ndjson":
		content, err = renderNDJSON(records)
	case "md":
		content = []byte(renderMarkdown(target, records))
	default:
		return "", fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(ExportFormats, ", "))
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// exportFilename builds a filesystem-safe timestamped name from the target.
func exportFilename(target, format string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, target)
	if safe == "" {
		safe = "snoosift"
	}
	timestamp := time.Now().Format("2006-01-02-150405")
	return fmt.Sprintf("%s-%s.%s", safe, timestamp, format)
}

func renderCSV(records []models.Record) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"kind", "id", "fullname", "author", "subreddit", "title", "body", "score", "created_utc", "permalink"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range records {
		flat := models.Flatten(rec)
		row := []string{
			flat.Kind,
			flat.ID,
			flat.Fullname,
			flat.Author,
			flat.Subreddit,
			flat.Title,
			flat.Body,
			fmt.Sprintf("%d", flat.Score),
			fmt.Sprintf("%.0f", flat.CreatedUTC),
			flat.Permalink,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return []byte(sb.String()), nil
}

// exportEnvelope keeps the kind discriminator next to the full record so a
// JSON export round-trips without guessing the variant.
type exportEnvelope struct {
	Kind string        `json:"kind"`
	Data models.Record `json:"data"`
}

func renderJSON(records []models.Record) ([]byte, error) {
	envelopes := make([]exportEnvelope, 0, len(records))
	for _, rec := range records {
		envelopes = append(envelopes, exportEnvelope{Kind: rec.RecordKind(), Data: rec})
	}
	content, err := json.MarshalIndent(envelopes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return append(content, '\n'), nil
}

func renderNDJSON(records []models.Record) ([]byte, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	for _, rec := range records {
		if err := enc.Encode(exportEnvelope{Kind: rec.RecordKind(), Data: rec}); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return []byte(sb.String()), nil
}

func renderMarkdown(target string, records []models.Record) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# snoosift export for %s\n\n", target))
	sb.WriteString(fmt.Sprintf("**Records:** %d\n", len(records)))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("| # | Kind | Author | Subreddit | Score | Title | Link |\n")
	sb.WriteString("|---|------|--------|-----------|-------|-------|------|\n")

	for i, rec := range records {
		flat := models.Flatten(rec)
		title := flat.Title
		if title == "" {
			title = flat.Body
		}
		title = strings.ReplaceAll(strings.ReplaceAll(title, "\n", " "), "|", "\\|")
		link := "-"
		if flat.Permalink != "" {
			link = fmt.Sprintf("[permalink](https://www.reddit.com%s)", flat.Permalink)
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %d | %s | %s |\n",
			i+1, flat.Kind, flat.Author, flat.Subreddit, flat.Score, truncate(title, 80), link))
	}

	return sb.String()
}
