package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"vaultshot/pkg/models"
)

const FileName = "vaultshot.db"

// ErrNoActiveNote is returned when no note has been opened for editing.
var ErrNoActiveNote = errors.New("no active note")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	queryCaptures := `
	CREATE TABLE IF NOT EXISTS captures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL,
		mode TEXT NOT NULL,
		file_path TEXT NOT NULL,
		status TEXT NOT NULL,
		inserted BOOLEAN NOT NULL DEFAULT 0,
		note_path TEXT,
		message TEXT,
		captured_at DATETIME
	);`

	// Single row; id is pinned to 1.
	queryEditor := `
	CREATE TABLE IF NOT EXISTS editor_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		note_path TEXT NOT NULL,
		cursor_line INTEGER NOT NULL DEFAULT 0,
		cursor_ch INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`

	if _, err := s.db.Exec(queryCaptures); err != nil {
		return fmt.Errorf("failed to create captures table: %w", err)
	}
	if _, err := s.db.Exec(queryEditor); err != nil {
		return fmt.Errorf("failed to create editor_state table: %w", err)
	}
	return nil
}

func (s *Store) Save(c *models.Capture) error {
	res, err := s.db.Exec(`
		INSERT INTO captures (uuid, mode, file_path, status, inserted, note_path, message, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UUID, c.Mode, c.FilePath, string(c.Status), c.Inserted, c.NotePath, c.Message, c.CapturedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert capture: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// ListCaptures returns the newest captures first. An empty status returns
// every row.
func (s *Store) ListCaptures(limit int, status models.Status) ([]models.Capture, error) {
	query := `
	SELECT id, uuid, mode, file_path, status, inserted, COALESCE(note_path, ''), COALESCE(message, ''), captured_at
	FROM captures`

	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	var results []models.Capture
	for rows.Next() {
		var c models.Capture
		var st string
		var ts time.Time
		if err := rows.Scan(&c.ID, &c.UUID, &c.Mode, &c.FilePath, &st, &c.Inserted, &c.NotePath, &c.Message, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		c.Status = models.Status(st)
		c.CapturedAt = ts
		results = append(results, c)
	}
	return results, rows.Err()
}

// ListSavedPaths maps capture IDs to file paths for captures that produced a file.
func (s *Store) ListSavedPaths() (map[int64]string, error) {
	rows, err := s.db.Query("SELECT id, file_path FROM captures WHERE status = ?", string(models.StatusSaved))
	if err != nil {
		return nil, fmt.Errorf("failed to query paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[int64]string)
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, err
		}
		paths[id] = path
	}
	return paths, rows.Err()
}

func (s *Store) DeleteCapture(id int64) error {
	_, err := s.db.Exec("DELETE FROM captures WHERE id = ?", id)
	return err
}

// DeleteUnsaved removes every attempt that did not produce a file.
func (s *Store) DeleteUnsaved() (int64, error) {
	res, err := s.db.Exec("DELETE FROM captures WHERE status != ?", string(models.StatusSaved))
	if err != nil {
		return 0, fmt.Errorf("failed to delete unsaved captures: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) GetCapturePath(id int64) (string, error) {
	var path string
	err := s.db.QueryRow("SELECT file_path FROM captures WHERE id = ?", id).Scan(&path)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("capture with ID %d not found", id)
	}
	return path, err
}

// ActiveNote returns the focused note and its cursor.
func (s *Store) ActiveNote() (string, models.Position, error) {
	var path string
	var pos models.Position
	err := s.db.QueryRow("SELECT note_path, cursor_line, cursor_ch FROM editor_state WHERE id = 1").
		Scan(&path, &pos.Line, &pos.Ch)
	if err == sql.ErrNoRows {
		return "", models.Position{}, ErrNoActiveNote
	}
	if err != nil {
		return "", models.Position{}, fmt.Errorf("failed to read editor state: %w", err)
	}
	return path, pos, nil
}

func (s *Store) SetActiveNote(path string, pos models.Position) error {
	_, err := s.db.Exec(`
		INSERT INTO editor_state (id, note_path, cursor_line, cursor_ch, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			note_path = excluded.note_path,
			cursor_line = excluded.cursor_line,
			cursor_ch = excluded.cursor_ch,
			updated_at = excluded.updated_at`,
		path, pos.Line, pos.Ch, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set active note: %w", err)
	}
	return nil
}

func (s *Store) SetCursor(pos models.Position) error {
	res, err := s.db.Exec(
		"UPDATE editor_state SET cursor_line = ?, cursor_ch = ?, updated_at = ? WHERE id = 1",
		pos.Line, pos.Ch, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoActiveNote
	}
	return nil
}

func (s *Store) ClearActiveNote() error {
	_, err := s.db.Exec("DELETE FROM editor_state WHERE id = 1")
	return err
}
