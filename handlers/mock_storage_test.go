package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// mockStorage records stores and deletes so tests can assert on asset
// lifecycle behavior without touching the filesystem.
type mockStorage struct {
	stored    []string
	deleted   []string
	failStore bool
}

func (m *mockStorage) StoreImage(r io.Reader, originalName string) (string, error) {
	if m.failStore {
		return "", errors.New("disk full")
	}
	name := fmt.Sprintf("stored-%d%s", len(m.stored), strings.ToLower(filepath.Ext(originalName)))
	m.stored = append(m.stored, name)
	return name, nil
}

func (m *mockStorage) DeleteIfExists(name string) {
	m.deleted = append(m.deleted, name)
}
