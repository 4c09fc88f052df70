package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ytwebhook/pkg/models"
)

var ErrArtifactMissing = errors.New("engine reported success but produced no file")

// Extractor invokes the external media-extraction engine. One inbound
// request maps to exactly one engine run; there is no internal retry.
type Extractor struct {
	config *models.Config
	rules  []Rule
}

// New creates an extractor using the default classification rules
func New(cfg *models.Config) *Extractor {
	return &Extractor{config: cfg, rules: DefaultRules}
}

// NewWithRules creates an extractor with a custom rule set, checked in
// order before falling back to FailureGeneric
func NewWithRules(cfg *models.Config, rules []Rule) *Extractor {
	return &Extractor{config: cfg, rules: rules}
}

// Result is a successful extraction: the staged file plus the
// normalized metadata and synthesized caption.
type Result struct {
	Metadata models.Metadata
	Caption  string
	FilePath string
	FileSize int64
}

// Extract runs the engine for rawURL, downloading into stagingDir.
// Cancellation via ctx is best-effort: the engine process is killed,
// but a partially written artifact may remain in the staging dir.
func (e *Extractor) Extract(ctx context.Context, rawURL, stagingDir, cookiePath string) (*Result, error) {
	inv := NewInvocation(e.config, rawURL, stagingDir, cookiePath)

	cmd := exec.CommandContext(ctx, e.config.YtdlpPath, inv.Args()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, &Error{Kind: Classify(e.rules, msg), Message: msg}
	}

	info, err := parseInfo(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse engine output: %w", err)
	}

	meta := Synthesize(info)

	filePath := stringField(info, "_filename")
	if filePath == "" {
		// Older engine versions omit _filename; reconstruct it from
		// the output template parameters.
		filePath = filepath.Join(stagingDir, meta.VideoID+"."+stringField(info, "ext"))
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, filePath)
	}

	return &Result{
		Metadata: meta,
		Caption:  BuildCaption(meta),
		FilePath: filePath,
		FileSize: fileInfo.Size(),
	}, nil
}

// parseInfo decodes the info dict from engine stdout. The JSON line is
// the last non-empty line; anything before it is progress noise.
func parseInfo(out []byte) (map[string]any, error) {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}
		var info map[string]any
		if err := json.Unmarshal(line, &info); err != nil {
			return nil, err
		}
		return info, nil
	}
	return nil, errors.New("empty engine output")
}
