// Package export writes encoded contact cards to the filesystem.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/cardsmith/internal/contact"
	"github.com/smileynet/cardsmith/internal/vcard"
)

// ErrInvalidName indicates a derived file name that is empty, a dot-segment,
// or would escape the export directory.
var ErrInvalidName = errors.New("export: invalid file name")

// Saver writes vCard files under a base directory.
type Saver struct {
	dir string
}

// NewSaver creates a Saver that writes into dir.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// Dir returns the export directory.
func (s *Saver) Dir() string { return s.dir }

// Save encodes r and writes it as vcard.Filename(r.FullName) in the export
// directory, returning the written path. The file is replaced atomically.
func (s *Saver) Save(r contact.Record) (string, error) {
	p, err := s.path(vcard.Filename(r.FullName))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".cardsmith-*.vcf")
	if err != nil {
		return "", fmt.Errorf("export: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(vcard.Encode(r)); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("export: writing %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", p, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", p, err)
	}
	return p, nil
}

// path returns the filesystem path for name inside the export directory.
// It rejects names that are empty, dot-segments, or contain path separators.
func (s *Saver) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
