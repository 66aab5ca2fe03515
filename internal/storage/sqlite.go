package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound: снимка с таким именем нет
var ErrNotFound = errors.New("storage: snapshot not found")

// Store manages the SQLite database with saved snapshots.
type Store struct {
	db *sql.DB
}

// SnapshotInfo: строка списка сохранений
type SnapshotInfo struct {
	Name      string
	Size      int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			name TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot записывает снимок под именем, заменяя прежний
func (s *Store) SaveSnapshot(name string, snap Snapshot) error {
	if name == "" {
		return errors.New("storage: snapshot name is empty")
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot %q: %w", name, err)
	}
	return nil
}

// LoadSnapshot читает снимок по имени
func (s *Store) LoadSnapshot(name string) (Snapshot, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot load snapshot %q: %w", name, err)
	}
	return Decode(data)
}

// ListSnapshots возвращает сохранения, новые первыми
func (s *Store) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := s.db.Query("SELECT name, length(data), updated_at FROM snapshots ORDER BY updated_at DESC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var updatedAt any
		if err := rows.Scan(&info.Name, &info.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan snapshot row: %w", err)
		}
		info.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot удаляет снимок. Для отсутствующего имени ErrNotFound.
func (s *Store) DeleteSnapshot(name string) error {
	result, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete snapshot %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// parseTimestamp: драйвер отдаёт DATETIME то как time.Time, то строкой
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
