// Package history persists the CLI session token and a local record of
// launched scans. The dashboard keeps its credential in browser storage; this
// is the workstation analog, with an optional PostgreSQL backend so a team
// can share launch history.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bassette/tsense/internal/common"
)

// DriverSqlite and DriverPostgres are the supported backend type keys.
const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgresql"
)

// StoreDBFileName is the default sqlite filename for the local profile.
const StoreDBFileName = "tsense.db"

// Session is the persisted login state for one endpoint.
type Session struct {
	Name       string
	Endpoint   string
	Email      string
	Token      string
	AcquiredAt string
}

// Launch is a locally recorded scan launch.
type Launch struct {
	ID         int
	ScanID     string
	AssetID    string
	Plugin     string
	ScanType   string
	StatusCode int
	LaunchedAt string
}

// dialect abstracts the SQL differences between the sqlite and postgres backends.
type dialect interface {
	DriverName() string
	EnsureStatements() []string
	Placeholders(n int) []string
}

// Store wraps a database handle with the dialect it was opened with.
type Store struct {
	db      *sql.DB
	dialect dialect
	kind    string
}

// Open connects a store. driver selects the backend ("sqlite" default);
// dsn is the sqlite path (":memory:" allowed) or a postgres DSN.
func Open(driver, dsn string) (*Store, error) {
	kind := strings.ToLower(strings.TrimSpace(driver))
	if kind == "" {
		kind = DriverSqlite
	}
	var d dialect
	switch kind {
	case DriverSqlite:
		d = sqliteDialect{}
		if strings.TrimSpace(dsn) == "" {
			dsn = ":memory:"
		}
	case DriverPostgres:
		d = postgresDialect{}
		if strings.TrimSpace(dsn) == "" {
			return nil, fmt.Errorf("history: postgres backend requires a dsn")
		}
	default:
		return nil, fmt.Errorf("history: unsupported store driver: %s", driver)
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, dialect: d, kind: kind}
	if err := s.ensure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger := common.GetLogger().WithStore(kind)
	logger.Debug("history store opened")
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensure() error {
	logger := common.GetLogger().WithStore(s.kind)
	for i, q := range s.dialect.EnsureStatements() {
		if _, err := s.db.Exec(q); err != nil {
			logger.Error("failed to create table in schema setup", "error", err, "statement_index", i+1)
			return fmt.Errorf("failed to create table %d in schema setup: %w", i+1, err)
		}
	}
	return nil
}

// SaveSession upserts the session stored under sess.Name ("default" when empty).
func (s *Store) SaveSession(sess Session) error {
	name := strings.TrimSpace(sess.Name)
	if name == "" {
		name = "default"
	}
	at := sess.AcquiredAt
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339)
	}
	if err := s.DeleteSession(name); err != nil {
		return err
	}
	ph := s.dialect.Placeholders(5)
	q := fmt.Sprintf("INSERT INTO tsense_sessions(name, endpoint, email, token, acquired_at) VALUES (%s)",
		strings.Join(ph, ", "))
	_, err := s.db.Exec(q, name, sess.Endpoint, sess.Email, sess.Token, at)
	return err
}

// LoadSession returns the session stored under name, or (nil, nil) when absent.
func (s *Store) LoadSession(name string) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		name = "default"
	}
	q := fmt.Sprintf("SELECT name, endpoint, email, token, acquired_at FROM tsense_sessions WHERE name = %s",
		s.dialect.Placeholders(1)[0])
	row := s.db.QueryRow(q, name)
	var sess Session
	err := row.Scan(&sess.Name, &sess.Endpoint, &sess.Email, &sess.Token, &sess.AcquiredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession removes the session stored under name. Missing rows are not an error.
func (s *Store) DeleteSession(name string) error {
	if strings.TrimSpace(name) == "" {
		name = "default"
	}
	q := fmt.Sprintf("DELETE FROM tsense_sessions WHERE name = %s", s.dialect.Placeholders(1)[0])
	_, err := s.db.Exec(q, name)
	return err
}

// RecordLaunch appends a scan launch to local history.
func (s *Store) RecordLaunch(l Launch) error {
	at := l.LaunchedAt
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339)
	}
	ph := s.dialect.Placeholders(6)
	q := fmt.Sprintf("INSERT INTO tsense_scan_launches(scan_id, asset_id, plugin, scan_type, status_code, launched_at) VALUES (%s)",
		strings.Join(ph, ", "))
	_, err := s.db.Exec(q, l.ScanID, l.AssetID, l.Plugin, l.ScanType, l.StatusCode, at)
	return err
}

// ListLaunches returns up to limit launches, newest first (limit <= 0 means all).
func (s *Store) ListLaunches(limit int) ([]Launch, error) {
	q := "SELECT id, scan_id, asset_id, plugin, scan_type, status_code, launched_at FROM tsense_scan_launches ORDER BY id DESC"
	if limit > 0 {
		q = fmt.Sprintf("%s LIMIT %d", q, limit)
	}
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Launch
	for rows.Next() {
		var l Launch
		if err := rows.Scan(&l.ID, &l.ScanID, &l.AssetID, &l.Plugin, &l.ScanType, &l.StatusCode, &l.LaunchedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
