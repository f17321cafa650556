package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MediaStore is the shared uploads directory. Multipart uploads, generated
// images, and rendered videos all land here, and the API serves it
// statically. Names are sanitized to keep writes inside the root; existence
// of a file is never checked on behalf of the catalog.
type MediaStore struct {
	baseDir string
}

// NewMediaStore initializes a MediaStore rooted at baseDir, creating it if needed.
func NewMediaStore(baseDir string) (*MediaStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, errors.New("storage: base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base directory: %w", err)
	}
	return &MediaStore{baseDir: baseDir}, nil
}

// Dir returns the configured root directory.
func (s *MediaStore) Dir() string {
	if s == nil {
		return ""
	}
	return s.baseDir
}

// Path resolves a file name to its location under the store root. The name is
// cleaned to prevent directory traversal.
func (s *MediaStore) Path(name string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}

// Save streams r into a file under the store root and returns its path.
func (s *MediaStore) Save(name string, r io.Reader) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return path, nil
}

// sanitizeName normalizes a name and prevents escaping the storage root.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	cleaned := filepath.Clean(name)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid name")
	}
	return cleaned, nil
}
