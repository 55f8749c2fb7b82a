// Package vault is the document store: a directory of notes addressed by
// slash-separated paths relative to its root.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrOutsideVault = errors.New("path escapes the vault")

type Vault struct {
	Root string
}

// Open checks that root is an existing directory.
func Open(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", abs)
	}
	return &Vault{Root: abs}, nil
}

// Clean normalizes a vault-relative path and rejects anything that would
// resolve outside the root.
func Clean(rel string) (string, error) {
	slashed := filepath.ToSlash(strings.TrimSpace(rel))
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrOutsideVault, rel)
		}
	}
	p := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrOutsideVault)
	}
	return p, nil
}

// AbsPath joins the root with rel in OS form, for handing to other processes.
func (v *Vault) AbsPath(rel string) (string, error) {
	p, err := Clean(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.Root, filepath.FromSlash(p)), nil
}

func (v *Vault) Exists(rel string) (bool, error) {
	abs, err := v.AbsPath(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateFolder creates rel and any missing parents. Existing folders are
// left alone.
func (v *Vault) CreateFolder(rel string) error {
	abs, err := v.AbsPath(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", rel, err)
	}
	return nil
}

func (v *Vault) ReadFile(rel string) ([]byte, error) {
	abs, err := v.AbsPath(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// WriteFile replaces rel with data, keeping the existing file mode.
func (v *Vault) WriteFile(rel string, data []byte) error {
	abs, err := v.AbsPath(rel)
	if err != nil {
		return err
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".vaultshot-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return os.Rename(tmp.Name(), abs)
}

// Rel converts an OS path (absolute or relative to the working directory)
// into a vault-relative path.
func (v *Vault) Rel(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(v.Root, abs)
	if err != nil {
		return "", err
	}
	return Clean(rel)
}
