package cookies

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Provisioner materializes the configured cookie blob into a file the
// extraction engine can read. The jar is written once, on first use,
// and the same path is handed to every request. The temp directory
// holding it lives for the whole process.
type Provisioner struct {
	source string

	mu   sync.Mutex
	path string
}

// NewProvisioner creates a provisioner for the given cookie blob.
// An empty source means no cookies are configured.
func NewProvisioner(source string) *Provisioner {
	return &Provisioner{source: source}
}

// Path returns the cookie jar location, or an empty path when no
// cookie source is configured. A write failure fails the current
// request only; the next request retries the write.
func (p *Provisioner) Path() (string, error) {
	if p.source == "" {
		return "", nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path != "" {
		return p.path, nil
	}

	dir, err := os.MkdirTemp("", "ytwebhook-cookies-")
	if err != nil {
		return "", fmt.Errorf("failed to create cookie directory: %w", err)
	}

	jar := filepath.Join(dir, "cookies.txt")
	if err := os.WriteFile(jar, []byte(p.source), 0600); err != nil {
		return "", fmt.Errorf("failed to write cookie jar: %w", err)
	}

	p.path = jar
	return jar, nil
}
