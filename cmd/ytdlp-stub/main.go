// Command ytdlp-stub mimics the extraction engine's contract for local
// testing without network access: it writes a dummy artifact at the -o
// template location and prints an info JSON, or fails with a canned
// blocking message when the URL asks for one.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoURL = errors.New("no URL found in arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the stub logic and returns an exit code
func run(args []string, stdout, stderr io.Writer) int {
	videoURL, outputTemplate, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	// Canned failures, selected by URL substring.
	switch {
	case strings.Contains(videoURL, "ratelimit"):
		fmt.Fprintln(stderr, "ERROR: HTTP Error 429: Too Many Requests")
		return 1
	case strings.Contains(videoURL, "antibot"):
		fmt.Fprintln(stderr, "ERROR: Sign in to confirm you're not a bot")
		return 1
	case strings.Contains(videoURL, "missing"):
		fmt.Fprintln(stderr, "ERROR: Video unavailable")
		return 1
	}

	filename := renderTemplate(outputTemplate, "stub000", "mp4")
	if filename != "" {
		if err := os.WriteFile(filename, []byte("stub video data"), 0644); err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return 1
		}
	}

	info := map[string]any{
		"id":          "stub000",
		"ext":         "mp4",
		"title":       "Stub Video",
		"description": "A stub download",
		"tags":        []string{"stub", "test video"},
		"duration":    42,
		"uploader":    "stub uploader",
		"upload_date": "20240101",
		"thumbnail":   "https://example.com/thumb.jpg",
		"view_count":  1234,
		"_filename":   filename,
	}

	json.NewEncoder(stdout).Encode(info)
	return 0
}

// parseArgs extracts the URL and the -o output template
func parseArgs(args []string) (string, string, error) {
	var videoURL, outputTemplate string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "-o" && i+1 < len(args) {
			outputTemplate = args[i+1]
			i++
			continue
		}

		if strings.HasPrefix(strings.ToLower(arg), "http") {
			videoURL = arg
		}
	}

	if videoURL == "" {
		return "", "", ErrNoURL
	}

	return videoURL, outputTemplate, nil
}

// renderTemplate substitutes the id and ext parameters of an output
// template the way the real engine would
func renderTemplate(template, id, ext string) string {
	if template == "" {
		return ""
	}
	rendered := strings.ReplaceAll(template, "%(id)s", id)
	rendered = strings.ReplaceAll(rendered, "%(ext)s", ext)
	return filepath.Clean(rendered)
}
