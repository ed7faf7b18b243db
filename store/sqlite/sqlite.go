/*
Package sqlite provides the SQLite-backed admission log.

PURPOSE:
  Implements access.RecordStore plus the report-side operations
  (day-window query, bulk delete) on a single append-only table.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the acessos table
  - No per-row DELETE; records are removed only in bulk by the daily
    reset (scheduled or manual)

KEY TABLE:
  acessos: one row per verification attempt, denied ones included

TIMESTAMPS:
  Stored as fixed-width UTC strings (millisecond precision) so that
  string comparison and chronological comparison agree. Day windows
  computed in the canteen's civil timezone convert cleanly because the
  comparison happens on instants, not on civil fields.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/cantina.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - access/service.go: RecordStore consumer
  - api/handlers.go: Report queries and reset
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/refeitorio/controle-acesso/access"
)

// timeLayout is fixed-width so lexicographic order matches instant order.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Store implements the admission log on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Admission log (append-only)
	CREATE TABLE IF NOT EXISTS acessos (
		id TEXT PRIMARY KEY,
		matricula TEXT NOT NULL,
		nome TEXT NOT NULL,
		status TEXT NOT NULL,
		data_hora TEXT NOT NULL
	);

	-- Hot path: the granted-today duplicate check
	CREATE INDEX IF NOT EXISTS idx_acessos_matricula_status_data
		ON acessos(matricula, status, data_hora);

	-- Report day-window scans
	CREATE INDEX IF NOT EXISTS idx_acessos_data_hora
		ON acessos(data_hora);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append inserts one admission record.
func (s *Store) Append(ctx context.Context, rec access.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO acessos (id, matricula, nome, status, data_hora)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.Name, string(rec.Outcome),
		rec.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// HasGrantedBetween reports whether a Granted record exists for the
// identifier with a timestamp inside [from, to].
func (s *Store) HasGrantedBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM acessos
			WHERE matricula = ? AND status = ? AND data_hora BETWEEN ? AND ?
		)`,
		employeeID, string(access.OutcomeGranted),
		from.UTC().Format(timeLayout), to.UTC().Format(timeLayout),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check granted records: %w", err)
	}
	return exists, nil
}

// QueryWindow returns the records whose timestamp falls inside
// [from, to], oldest first. When field and term are both non-empty the
// result is additionally narrowed to records whose field contains term,
// case-insensitively. field must be "matricula" or "nome".
func (s *Store) QueryWindow(ctx context.Context, from, to time.Time, field, term string) ([]access.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, matricula, nome, status, data_hora
		FROM acessos
		WHERE data_hora BETWEEN ? AND ?`
	args := []any{from.UTC().Format(timeLayout), to.UTC().Format(timeLayout)}

	if field != "" && term != "" {
		column, ok := searchColumns[field]
		if !ok {
			return nil, fmt.Errorf("unknown search field %q", field)
		}
		query += fmt.Sprintf(" AND instr(lower(%s), lower(?)) > 0", column)
		args = append(args, term)
	}

	query += " ORDER BY data_hora ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []access.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// searchColumns whitelists the queryable columns. Anything else is an
// error rather than an interpolation hazard.
var searchColumns = map[string]string{
	"matricula": "matricula",
	"nome":      "nome",
}

// DeleteAll removes every admission record and returns the removed
// count. Deleting an already-empty log is a no-op success.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM acessos`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear admission log: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Count returns the total number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM acessos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func scanRecord(rows *sql.Rows) (access.Record, error) {
	var rec access.Record
	var outcome, ts string

	if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Name, &outcome, &ts); err != nil {
		return access.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Outcome = access.Outcome(outcome)
	parsed, err := time.Parse(timeLayout, ts)
	if err != nil {
		return access.Record{}, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
	}
	rec.Timestamp = parsed
	return rec, nil
}
