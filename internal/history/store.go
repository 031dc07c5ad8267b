package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Record is one completed, cancelled, or failed export run.
type Record struct {
	ID             int64
	SessionID      string
	ProjectPath    string
	OutputPath     string
	Encoder        string
	Hardware       bool
	Success        bool
	Cancelled      bool
	ErrorMessage   string
	ElapsedSeconds float64
	OutputBytes    int64
	CreatedAt      time.Time
}

// Store persists export history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a record and returns it with its assigned identifier.
func (s *Store) Add(ctx context.Context, rec Record) (*Record, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO exports (
            session_id, project_path, output_path, encoder, hardware,
            success, cancelled, error_message, elapsed_seconds, output_bytes, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		nullableString(rec.ProjectPath),
		rec.OutputPath,
		nullableString(rec.Encoder),
		boolToInt(rec.Hardware),
		boolToInt(rec.Success),
		boolToInt(rec.Cancelled),
		nullableString(rec.ErrorMessage),
		rec.ElapsedSeconds,
		rec.OutputBytes,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert export record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// List returns the most recent records, newest first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM exports ORDER BY created_at DESC, id DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list export records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exports`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

const recordColumns = "id, session_id, project_path, output_path, encoder, hardware, success, cancelled, error_message, elapsed_seconds, output_bytes, created_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		rec          Record
		projectPath  sql.NullString
		encoder      sql.NullString
		hardware     int
		success      int
		cancelled    int
		errorMessage sql.NullString
		createdRaw   string
	)

	if err := scanner.Scan(
		&rec.ID,
		&rec.SessionID,
		&projectPath,
		&rec.OutputPath,
		&encoder,
		&hardware,
		&success,
		&cancelled,
		&errorMessage,
		&rec.ElapsedSeconds,
		&rec.OutputBytes,
		&createdRaw,
	); err != nil {
		return Record{}, fmt.Errorf("scan export record: %w", err)
	}

	rec.ProjectPath = projectPath.String
	rec.Encoder = encoder.String
	rec.Hardware = hardware != 0
	rec.Success = success != 0
	rec.Cancelled = cancelled != 0
	rec.ErrorMessage = errorMessage.String

	if created, err := parseTimeString(createdRaw); err == nil {
		rec.CreatedAt = created
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
