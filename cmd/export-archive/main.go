// export-archive dumps archived runs from a snoosift SQLite archive back out
// to CSV, for feeding into spreadsheets or other tooling.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/snoosift/snoosift/internal/db"
)

func main() {
	dbPath := flag.String("db", "snoosift.db", "Path to the SQLite archive")
	runFlag := flag.Int64("run", 0, "Run id to export (omit to list runs)")
	outputPath := flag.String("output", "records.csv", "Output CSV file")
	flag.Parse()

	database, err := db.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if *runFlag == 0 {
		listRuns(database)
		return
	}

	records, err := database.GetRunRecords(*runFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read run %d: %v\n", *runFlag, err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "Run %d has no records\n", *runFlag)
		os.Exit(1)
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"kind", "id", "fullname", "author", "subreddit", "title", "body", "score", "created_utc", "permalink"}
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write header: %v\n", err)
		os.Exit(1)
	}

	count := 0
	for _, rec := range records {
		row := []string{
			rec.Kind,
			rec.ID,
			rec.Fullname,
			rec.Author,
			rec.Subreddit,
			rec.Title,
			rec.Body,
			strconv.Itoa(rec.Score),
			fmt.Sprintf("%.0f", rec.CreatedUTC),
			rec.Permalink,
		}
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write row: %v\n", err)
			continue
		}
		count++
	}

	fmt.Printf("Exported %d records from run %d to %s\n", count, *runFlag, *outputPath)
}

func listRuns(database *db.DB) {
	runs, err := database.ListRuns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("Archive has no runs.")
		return
	}
	fmt.Println("Archived runs:")
	for _, r := range runs {
		fmt.Printf("  %d. %s (%s) - %d records at %s\n",
			r.ID, r.Target, r.Mode, r.RecordCount, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}
