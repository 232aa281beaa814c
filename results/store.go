package results

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no report exists for a fingerprint.
var ErrNotFound = errors.New("report not found")

// Store archives reports in a SQLite database.
// The full report is kept as a JSON document; fingerprint, name, and
// timestamp are promoted to columns for lookups. Pass ":memory:" as the
// path for an ephemeral store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	report      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_fingerprint ON reports(fingerprint);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate archive: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives a report. A zero CreatedAt is stamped with the current
// time. Multiple reports may share a fingerprint; each Save is a new row.
func (s *Store) Save(report *Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO reports (fingerprint, name, created_at, report) VALUES (?, ?, ?, ?)`,
		report.Fingerprint, report.Name, report.CreatedAt, string(doc),
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Latest returns the most recent report for a fingerprint.
func (s *Store) Latest(fingerprint string) (*Report, error) {
	row := s.db.QueryRow(
		`SELECT report FROM reports WHERE fingerprint = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		fingerprint,
	)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load report: %w", err)
	}
	var report Report
	if err := json.Unmarshal([]byte(doc), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// History returns up to limit reports for a fingerprint, newest first.
func (s *Store) History(fingerprint string, limit int) ([]*Report, error) {
	rows, err := s.db.Query(
		`SELECT report FROM reports WHERE fingerprint = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		fingerprint, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var report Report
		if err := json.Unmarshal([]byte(doc), &report); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

// Prune deletes reports older than cutoff and returns the count removed.
func (s *Store) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM reports WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune archive: %w", err)
	}
	return res.RowsAffected()
}
