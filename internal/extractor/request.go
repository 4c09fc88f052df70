package extractor

import (
	"path/filepath"

	"ytwebhook/pkg/models"
)

const (
	// Prefer a plain mp4 container, fall back to whatever the engine
	// considers best when mp4 is unavailable.
	DefaultFormat = "best[ext=mp4]/best"

	outputPattern = "%(id)s.%(ext)s"
)

// Invocation describes a single engine run: what to fetch, where to
// put it, and how to present the client to the remote platform.
// Building one performs no I/O.
type Invocation struct {
	URL            string
	StagingDir     string
	Format         string
	UserAgent      string
	AcceptLanguage string
	PlayerClient   string
	CookiePath     string
}

// NewInvocation assembles an invocation from the service configuration,
// a target URL, a fresh staging directory, and an optional cookie jar
func NewInvocation(cfg *models.Config, url, stagingDir, cookiePath string) *Invocation {
	return &Invocation{
		URL:            url,
		StagingDir:     stagingDir,
		Format:         DefaultFormat,
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		PlayerClient:   cfg.PlayerClient,
		CookiePath:     cookiePath,
	}
}

// OutputTemplate returns the engine output path template, rooted in
// the staging directory and parameterized by video id and extension
func (inv *Invocation) OutputTemplate() string {
	return filepath.Join(inv.StagingDir, outputPattern)
}

// Args renders the yt-dlp argument list
func (inv *Invocation) Args() []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--print-json",
		"-f", inv.Format,
		"-o", inv.OutputTemplate(),
	}

	// Header shaping and client impersonation reduce the odds of the
	// remote platform blocking the request.
	if inv.UserAgent != "" {
		args = append(args, "--add-header", "User-Agent:"+inv.UserAgent)
	}
	if inv.AcceptLanguage != "" {
		args = append(args, "--add-header", "Accept-Language:"+inv.AcceptLanguage)
	}
	if inv.PlayerClient != "" {
		args = append(args, "--extractor-args", "youtube:player_client="+inv.PlayerClient)
	}

	if inv.CookiePath != "" {
		args = append(args, "--cookies", inv.CookiePath)
	}

	args = append(args, inv.URL)
	return args
}
