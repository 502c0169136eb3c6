package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fallbackDir = "./uploads"

// LocalStorage keeps assets on the local filesystem under a single root
// directory. Stored filenames are generated, never the caller's upload names.
type LocalStorage struct {
	root string
}

// NewLocalStorage resolves and creates the configured directory. When the
// configured directory cannot be created, it falls back to ./uploads before
// giving up. Creation is idempotent; an already existing directory is fine.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = fallbackDir
	}

	desired, err := filepath.Abs(dir)
	if err == nil {
		err = os.MkdirAll(desired, 0o755)
	}
	if err == nil {
		return &LocalStorage{root: desired}, nil
	}

	fallback, fbErr := filepath.Abs(fallbackDir)
	if fbErr == nil {
		fbErr = os.MkdirAll(fallback, 0o755)
	}
	if fbErr != nil {
		return nil, fmt.Errorf("cannot create upload dir %q (%v) or fallback %q: %w", dir, err, fallback, fbErr)
	}

	log.Printf("WARNING: upload dir %q not usable (%v), falling back to %q", dir, err, fallback)
	return &LocalStorage{root: fallback}, nil
}

// Root returns the directory assets are written to.
func (s *LocalStorage) Root() string {
	return s.root
}

// StoreImage writes the content under a random UUID-derived name plus the
// lower-cased original extension. The write goes through a temp file and an
// atomic rename so a crash mid-write never leaves a partial file under a
// name an entity could reference.
func (s *LocalStorage) StoreImage(r io.Reader, originalName string) (string, error) {
	if strings.Contains(originalName, "..") {
		return "", fmt.Errorf("invalid file name: %s", originalName)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, name)); err != nil {
		return "", err
	}
	return name, nil
}

// DeleteIfExists removes the named asset. Failures are logged and swallowed;
// losing an orphan file must never block a catalog update.
func (s *LocalStorage) DeleteIfExists(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	// Stored names are flat; anything path-like did not come from StoreImage.
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete asset %s: %v", name, err)
	}
}
