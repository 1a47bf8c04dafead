package db

import (
	"path/filepath"
	"testing"

	"github.com/snoosift/snoosift/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleRecords() []models.Record {
	return []models.Record{
		&models.Post{
			ID: "abc", Fullname: "t3_abc", Title: "a post", Author: "someone",
			Subreddit: "golang", Score: 42, CreatedUTC: 1609459200,
			Permalink: "/r/golang/comments/abc/a_post/",
		},
		&models.Comment{
			ID: "def", Fullname: "t1_def", Author: "someone_else",
			Body: "a comment", Subreddit: "golang", Score: 7,
		},
	}
}

func TestSaveAndListRuns(t *testing.T) {
	database := newTestDB(t)

	runID, err := database.SaveRun("r/golang", "subreddit", sampleRecords())
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	runs, err := database.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "r/golang", runs[0].Target)
	assert.Equal(t, "subreddit", runs[0].Mode)
	assert.Equal(t, 2, runs[0].RecordCount)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestListRunsNewestFirst(t *testing.T) {
	database := newTestDB(t)

	first, err := database.SaveRun("u/spez", "user", sampleRecords())
	require.NoError(t, err)
	second, err := database.SaveRun("r/golang", "subreddit", nil)
	require.NoError(t, err)

	runs, err := database.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestGetRunRecords(t *testing.T) {
	database := newTestDB(t)

	runID, err := database.SaveRun("r/golang", "subreddit", sampleRecords())
	require.NoError(t, err)

	rows, err := database.GetRunRecords(runID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "post", rows[0].Kind)
	assert.Equal(t, "t3_abc", rows[0].Fullname)
	assert.Equal(t, "a post", rows[0].Title)
	assert.Equal(t, 42, rows[0].Score)
	assert.Equal(t, "comment", rows[1].Kind)
	assert.Equal(t, "a comment", rows[1].Body)
}

func TestGetRunRecordsUnknownRun(t *testing.T) {
	database := newTestDB(t)
	rows, err := database.GetRunRecords(999)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNewCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "archive.db")
	database, err := New(path)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.SaveRun("frontpage", "frontpage", nil)
	assert.NoError(t, err)
}
