package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrNotPDF      = errors.New("only pdf files are allowed")
	ErrBadFilename = errors.New("invalid document path")
)

// Local stores uploaded documents under a base directory on disk. Stored
// names get a uuid prefix so a re-upload never clobbers the file a reviewer
// may be reading.
type Local struct{ baseDir string }

func NewLocal(baseDir string) *Local { return &Local{baseDir: baseDir} }

// Store writes data as <base>/<subdir>/<uuid>_<filename> and returns the
// relative path to persist. Only PDFs are accepted.
func (s *Local) Store(subdir, filename string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "", fmt.Errorf("%w: got %q", ErrNotPDF, filepath.Ext(filename))
	}
	dir := filepath.Join(s.baseDir, filepath.Clean(subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + "_" + filepath.Base(filename)
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil {
		return "", err
	}
	return rel, nil
}

// Path resolves a stored relative path to an absolute one, refusing paths
// that escape the base directory.
func (s *Local) Path(rel string) (string, error) {
	clean := filepath.Clean(rel)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrBadFilename
	}
	full := filepath.Join(s.baseDir, clean)
	if _, err := os.Stat(full); err != nil {
		return "", ErrNotFound
	}
	return full, nil
}
