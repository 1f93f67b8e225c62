package history

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) EnsureStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS tsense_sessions (
			name TEXT PRIMARY KEY,
			endpoint TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			token TEXT NOT NULL,
			acquired_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tsense_scan_launches (
			id SERIAL PRIMARY KEY,
			scan_id TEXT NOT NULL,
			asset_id TEXT NOT NULL,
			plugin TEXT NOT NULL,
			scan_type TEXT NOT NULL DEFAULT '',
			status_code INTEGER NOT NULL,
			launched_at TEXT NOT NULL
		)`,
	}
}

func (postgresDialect) Placeholders(n int) []string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return ph
}
