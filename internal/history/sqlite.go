package history

import (
	_ "modernc.org/sqlite"
)

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite" }

func (sqliteDialect) EnsureStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS tsense_sessions (
			name TEXT PRIMARY KEY,
			endpoint TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			token TEXT NOT NULL,
			acquired_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tsense_scan_launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT NOT NULL,
			asset_id TEXT NOT NULL,
			plugin TEXT NOT NULL,
			scan_type TEXT NOT NULL DEFAULT '',
			status_code INTEGER NOT NULL,
			launched_at TEXT NOT NULL
		)`,
	}
}

func (sqliteDialect) Placeholders(n int) []string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "?"
	}
	return ph
}
