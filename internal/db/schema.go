package db

// SQL statements for the archive schema. One run row per invocation that
// asked for archiving, with its records flattened into a single table.

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	target TEXT NOT NULL,
	mode TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	kind TEXT NOT NULL,
	rid TEXT,
	fullname TEXT,
	author TEXT,
	subreddit TEXT,
	title TEXT,
	body TEXT,
	score INTEGER,
	created_utc REAL,
	permalink TEXT
);
`

const createRecordsRunIndex = `
CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
`

const insertRun = `
INSERT INTO runs (target, mode, record_count) VALUES (?, ?, ?)
`

const insertRecord = `
INSERT INTO records (run_id, kind, rid, fullname, author, subreddit, title, body, score, created_utc, permalink)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRuns = `
SELECT id, target, mode, record_count, created_at
FROM runs
ORDER BY id DESC
`

const selectRunRecords = `
SELECT kind, rid, fullname, author, subreddit, title, body, score, created_utc, permalink
FROM records
WHERE run_id = ?
ORDER BY id
`
