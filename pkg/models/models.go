package models

import "time"

const (
	DefaultOutputFolder = "screenshots"
	DefaultFormat       = FormatPNG
)

type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
)

func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatJPG, FormatPDF:
		return true
	}
	return false
}

// Settings are the per-vault options persisted between runs.
type Settings struct {
	OutputFolder     string `yaml:"output_folder" json:"output_folder"`
	Format           Format `yaml:"format" json:"format"`
	IncludeTimestamp bool   `yaml:"include_timestamp" json:"include_timestamp"`
	AutoInsert       bool   `yaml:"auto_insert" json:"auto_insert"`
}

func DefaultSettings() Settings {
	return Settings{
		OutputFolder:     DefaultOutputFolder,
		Format:           DefaultFormat,
		IncludeTimestamp: true,
		AutoInsert:       true,
	}
}

type Status string

const (
	StatusSaved            Status = "saved"
	StatusCancelled        Status = "cancelled"
	StatusPermissionDenied Status = "permission_denied"
	StatusFailed           Status = "failed"
)

// Position is a zero-based cursor location inside a note.
type Position struct {
	Line int `json:"line"`
	Ch   int `json:"ch"`
}

// Capture represents the outcome of a single screenshot request.
type Capture struct {
	ID         int64     `json:"id"` // Database ID
	UUID       string    `json:"uuid"`
	Mode       string    `json:"mode"`
	FilePath   string    `json:"file_path"` // relative to the vault root
	Status     Status    `json:"status"`
	Inserted   bool      `json:"inserted"`
	NotePath   string    `json:"note_path,omitempty"`
	Message    string    `json:"message"`
	CapturedAt time.Time `json:"captured_at"`
}
