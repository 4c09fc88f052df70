package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

const releaseAPI = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

// Manager locates the yt-dlp executable and can install it from the
// official release channel when it is missing.
type Manager struct {
	binDir string
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// NewManager creates a manager that installs into binDir
func NewManager(binDir string) *Manager {
	os.MkdirAll(binDir, 0755)
	return &Manager{binDir: binDir}
}

// BinaryPath returns the managed executable path for this platform
func (m *Manager) BinaryPath() string {
	return filepath.Join(m.binDir, assetName())
}

// Resolve returns a usable engine path: the configured one if it
// exists or is on PATH, otherwise the managed install location.
// Returns an error when nothing is installed anywhere.
func (m *Manager) Resolve(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		if path, err := exec.LookPath(configured); err == nil {
			return path, nil
		}
	}

	if m.IsInstalled() {
		return m.BinaryPath(), nil
	}

	return "", fmt.Errorf("extraction engine not found (looked for %q and %q)", configured, m.BinaryPath())
}

// IsInstalled checks if the managed binary exists
func (m *Manager) IsInstalled() bool {
	_, err := os.Stat(m.BinaryPath())
	return err == nil
}

// EnsureInstalled downloads the engine if it is not already present
func (m *Manager) EnsureInstalled() error {
	if m.IsInstalled() {
		return nil
	}
	return m.Install()
}

// Install fetches the latest release asset for this platform and
// writes it into the managed directory
func (m *Manager) Install() error {
	resp, err := http.Get(releaseAPI)
	if err != nil {
		return fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("release API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return fmt.Errorf("failed to parse release info: %w", err)
	}

	asset := assetName()
	var downloadURL string
	for _, a := range release.Assets {
		if a.Name == asset {
			downloadURL = a.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no release asset for platform: %s", asset)
	}

	resp, err = http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine download failed with status %d", resp.StatusCode)
	}

	target := m.BinaryPath()
	tmp := target + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write engine binary: %w", err)
	}

	if err := os.Chmod(tmp, 0755); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to make executable: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to install engine: %w", err)
	}

	return nil
}

// assetName returns the release asset name for the current platform
func assetName() string {
	switch runtime.GOOS {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "yt-dlp_linux_aarch64"
		}
		return "yt-dlp_linux"
	default:
		return "yt-dlp"
	}
}
