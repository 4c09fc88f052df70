package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"ytwebhook/internal/extractor"
	"ytwebhook/internal/staging"
	"ytwebhook/pkg/models"
)

const serviceName = "YouTube Downloader Webhook"

const blockedHint = "The platform is blocking automated access. Supply account cookies via the cookie_source option or retry later."

type downloadRequest struct {
	URL string `json:"url"`
}

type downloadResponse struct {
	Success     bool            `json:"success"`
	FilePath    string          `json:"file_path"`
	FileSize    int64           `json:"file_size"`
	Metadata    models.Metadata `json:"metadata"`
	Caption     string          `json:"caption"`
	DownloadURL string          `json:"download_url"`
	TempDir     string          `json:"temp_dir"`
}

// handleDownload handles POST /download: one engine invocation per
// request, staged into a fresh directory
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	cookiePath, err := s.cookies.Path()
	if err != nil {
		s.metrics.ObserveDownload("error")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("cookie provisioning failed: %v", err))
		return
	}

	stagingDir, err := s.staging.CreateDir()
	if err != nil {
		s.metrics.ObserveDownload("error")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("staging failed: %v", err))
		return
	}

	result, err := s.extractor.Extract(r.Context(), req.URL, stagingDir, cookiePath)
	if err != nil {
		s.writeExtractionError(w, err)
		return
	}

	s.metrics.ObserveDownload("success")

	basename := filepath.Base(result.FilePath)
	writeJSON(w, http.StatusOK, downloadResponse{
		Success:     true,
		FilePath:    result.FilePath,
		FileSize:    result.FileSize,
		Metadata:    result.Metadata,
		Caption:     result.Caption,
		DownloadURL: fmt.Sprintf("%s://%s/file/%s", requestScheme(r), r.Host, basename),
		TempDir:     stagingDir,
	})
}

// writeExtractionError is the single translation point from engine
// failure kinds to HTTP status codes
func (s *Server) writeExtractionError(w http.ResponseWriter, err error) {
	var engineErr *extractor.Error
	if errors.As(err, &engineErr) {
		s.metrics.ObserveDownload(engineErr.Kind.String())

		switch engineErr.Kind {
		case extractor.FailureRateLimited, extractor.FailureAntiBot:
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":  blockedHint,
				"detail": engineErr.Message,
			})
		case extractor.FailureNotFound:
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":  "video not found",
				"detail": engineErr.Message,
			})
		default:
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("extraction failed: %s", engineErr.Message))
		}
		return
	}

	s.metrics.ObserveDownload("error")

	if errors.Is(err, extractor.ErrArtifactMissing) {
		writeError(w, http.StatusInternalServerError, "download failed - file not found")
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

// handleFile handles GET /file/{filename}: serves a previously staged
// file as an attachment
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}

	path, err := s.staging.Resolve(name)
	if err != nil {
		switch {
		case errors.Is(err, staging.ErrInvalidName):
			writeError(w, http.StatusBadRequest, "invalid file name")
		case errors.Is(err, staging.ErrNotFound):
			writeError(w, http.StatusNotFound, "File not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.metrics.ObserveFileServed()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// handleIndex describes the service and its endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"endpoints": map[string]string{
			"POST /download":       "download a video and return metadata + caption",
			"GET /file/{filename}": "serve a previously downloaded file",
			"GET /health":          "health check",
			"GET /metrics":         "Prometheus metrics",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
