package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/pkg/filesystem"
	"github.com/doeshing/clio-go/internal/ports"
)

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists the audit trail in a SQLite database.
// When the database cannot be opened it degrades to a jsonl FileStore next to it.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// DefaultPath returns ~/.clio/history/history.db.
func DefaultPath() string {
	return filepath.Join(filesystem.ClioDir(), "history", "history.db")
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = DefaultPath()
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	fallback := NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: fallback}
	}
	store := &SQLiteStore{db: db, path: path, fallback: fallback}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		query TEXT,
		command TEXT,
		description TEXT,
		safety_level TEXT,
		session_id TEXT
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO submissions
		(timestamp, query, command, description, safety_level, session_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp.UTC().Format(timestampLayout),
		record.Query,
		record.Command,
		record.Description,
		string(record.SafetyLevel),
		record.SessionID,
	)
	return err
}

// Records returns history entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, query, command, description, safety_level, session_id FROM submissions")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE query LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY timestamp DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, level string
		if err := rows.Scan(&ts, &rec.Query, &rec.Command, &rec.Description, &level, &rec.SessionID); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			rec.Timestamp = t
		}
		rec.SafetyLevel = domain.SafetyLevel(level)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM submissions")
	return err
}

// PruneOlderThan deletes entries older than age and reports how many went.
func (s *SQLiteStore) PruneOlderThan(age time.Duration) (int, error) {
	if s.db == nil {
		return s.fallback.PruneOlderThan(age)
	}
	cutoff := time.Now().Add(-age).UTC().Format(timestampLayout)
	res, err := s.db.Exec("DELETE FROM submissions WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ExportJSON writes the submissions table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path, or the fallback file when degraded.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func writeJSONL(dest string, records []domain.HistoryRecord) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
	}
	return nil
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
