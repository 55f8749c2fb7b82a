package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"vaultshot/internal/db"
	"vaultshot/pkg/models"
)

var ErrNoActiveDocument = errors.New("no active document")

// Surface gives access to whichever document is currently focused.
type Surface interface {
	Active(ctx context.Context) (Document, error)
}

// Document is an open, editable note.
type Document interface {
	Path() string
	Cursor() models.Position
	Insert(text string, at models.Position) error
	SetCursor(pos models.Position) error
}

// StateStore persists which note is focused and where its cursor sits.
type StateStore interface {
	ActiveNote() (string, models.Position, error)
	SetCursor(pos models.Position) error
}

// Files reads and writes note bodies.
type Files interface {
	ReadFile(rel string) ([]byte, error)
	WriteFile(rel string, data []byte) error
}

// FileSurface serves the note recorded in the state store, editing it on disk.
type FileSurface struct {
	State StateStore
	Files Files
}

func (s *FileSurface) Active(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, pos, err := s.State.ActiveNote()
	if errors.Is(err, db.ErrNoActiveNote) {
		return nil, ErrNoActiveDocument
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.Files.ReadFile(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoActiveDocument, path, err)
	}
	return &fileDocument{path: path, cursor: pos, state: s.State, files: s.Files}, nil
}

type fileDocument struct {
	path   string
	cursor models.Position
	state  StateStore
	files  Files
}

func (d *fileDocument) Path() string { return d.path }

func (d *fileDocument) Cursor() models.Position { return d.cursor }

func (d *fileDocument) Insert(text string, at models.Position) error {
	data, err := d.files.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	out := Splice(string(data), text, at)
	if err := d.files.WriteFile(d.path, []byte(out)); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}

func (d *fileDocument) SetCursor(pos models.Position) error {
	if err := d.state.SetCursor(pos); err != nil {
		return err
	}
	d.cursor = pos
	return nil
}

// Splice inserts text into doc at pos. Positions beyond the document are
// clamped: a line past the end lands at the end of the document, a column
// past the end of its line lands at the end of that line.
func Splice(doc, text string, pos models.Position) string {
	off := Offset(doc, pos)
	return doc[:off] + text + doc[off:]
}

// Offset converts a line/column position into a byte offset in doc. Columns
// count runes, so the offset never splits a multi-byte character.
func Offset(doc string, pos models.Position) int {
	if pos.Line < 0 {
		return 0
	}
	lines := strings.SplitAfter(doc, "\n")
	if pos.Line >= len(lines) {
		return len(doc)
	}

	off := 0
	for _, l := range lines[:pos.Line] {
		off += len(l)
	}
	line := strings.TrimSuffix(lines[pos.Line], "\n")
	b := 0
	for ch := pos.Ch; ch > 0 && b < len(line); ch-- {
		_, size := utf8.DecodeRuneInString(line[b:])
		b += size
	}
	return off + b
}

// End returns the position just past the last character of doc.
func End(doc string) models.Position {
	lines := strings.SplitAfter(doc, "\n")
	last := len(lines) - 1
	return models.Position{Line: last, Ch: utf8.RuneCountInString(lines[last])}
}
