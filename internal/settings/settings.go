package settings

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"vaultshot/pkg/models"
)

const (
	DirName  = ".vaultshot"
	FileName = "settings.yaml"
)

// RootFolder as an output folder stores captures at the top of the vault.
const RootFolder = "."

var ErrInvalidSetting = errors.New("invalid setting")

// Keys accepted by Set, in display order.
var Keys = []string{"folder", "format", "timestamp", "auto-insert"}

// PathFor returns where settings for the vault rooted at root are stored.
func PathFor(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// Load reads the settings blob at path and merges it over the defaults.
// A missing file is not an error.
func Load(path string) (models.Settings, error) {
	s := models.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return models.DefaultSettings(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	Normalize(&s)
	if err := Validate(s); err != nil {
		return models.DefaultSettings(), err
	}
	return s, nil
}

// Save writes the whole record to path.
func Save(path string, s models.Settings) error {
	Normalize(&s)
	if err := Validate(s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Normalize fills empty required fields with their defaults. A folder that
// resolves to the vault root, such as "." or "a/..", becomes RootFolder.
func Normalize(s *models.Settings) {
	folder := strings.Trim(strings.TrimSpace(filepath.ToSlash(s.OutputFolder)), "/")
	if folder == "" {
		folder = models.DefaultOutputFolder
	}
	s.OutputFolder = path.Clean(folder)
	s.Format = models.Format(strings.ToLower(strings.TrimSpace(string(s.Format))))
	if s.Format == "" {
		s.Format = models.DefaultFormat
	}
}

func Validate(s models.Settings) error {
	if !s.Format.Valid() {
		return fmt.Errorf("%w: format %q (want png, jpg or pdf)", ErrInvalidSetting, s.Format)
	}
	if filepath.IsAbs(s.OutputFolder) || hasParentRef(s.OutputFolder) {
		return fmt.Errorf("%w: folder %q must stay inside the vault", ErrInvalidSetting, s.OutputFolder)
	}
	return nil
}

// Set applies a single edit by key.
func Set(s *models.Settings, key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "folder", "output-folder":
		s.OutputFolder = value
	case "format":
		s.Format = models.Format(value)
	case "timestamp", "include-timestamp":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: timestamp %q is not a boolean", ErrInvalidSetting, value)
		}
		s.IncludeTimestamp = b
	case "auto-insert":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: auto-insert %q is not a boolean", ErrInvalidSetting, value)
		}
		s.AutoInsert = b
	default:
		return fmt.Errorf("%w: unknown key %q (want one of %s)", ErrInvalidSetting, key, strings.Join(Keys, ", "))
	}
	Normalize(s)
	return Validate(*s)
}

func hasParentRef(p string) bool {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
