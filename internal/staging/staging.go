package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// Manager owns the staging namespace: a root directory holding one
// uniquely named subdirectory per download request. Staged files are
// kept after the request returns so they can be served later; nothing
// here deletes them.
type Manager struct {
	root string
}

// NewManager creates a manager rooted at root, creating the directory
// if it does not exist
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging root: %w", err)
	}
	return &Manager{root: root}, nil
}

// Root returns the staging root path
func (m *Manager) Root() string {
	return m.root
}

// CreateDir allocates a fresh, empty staging directory. Names are
// unique per call, so concurrent requests never share a directory.
func (m *Manager) CreateDir() (string, error) {
	dir := filepath.Join(m.root, "dl-"+uuid.NewString())
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// Resolve locates a staged file by basename. The search covers the
// staging root and its direct subdirectories only; invalid names are
// rejected before any filesystem access.
func (m *Manager) Resolve(name string) (string, error) {
	if !ValidName(name) {
		return "", ErrInvalidName
	}

	candidate := filepath.Join(m.root, name)
	if isRegularFile(candidate) {
		return candidate, nil
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return "", fmt.Errorf("failed to read staging root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(m.root, entry.Name(), name)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

// ValidName reports whether name is a plain basename with no path
// separators or relative segments
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
