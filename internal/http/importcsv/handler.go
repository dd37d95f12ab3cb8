package importcsv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/budgetsync/internal/ingest"
)

const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=runner_mock.go -package=importcsv
type Runner interface {
	RunSource(ctx context.Context, job ingest.Job) (*ingest.Report, error)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
}

type errorResponse struct {
	Error  string         `json:"error"`
	Report *ingest.Report `json:"report,omitempty"`
}

// importFile runs one uploaded export or statement through its source.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	if source == "" {
		http.Error(w, "source field is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sources pick their reader by extension, so the temp file keeps it.
	path, err := saveUpload(file, filepath.Ext(header.Filename))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(path)

	report, err := h.runner.RunSource(r.Context(), ingest.Job{Source: source, Paths: []string{path}})

	switch {
	case errors.Is(err, ingest.ErrUnknownSource), errors.Is(err, ingest.ErrNoReadableFiles):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Report: report})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Report: report})
	default:
		writeJSON(w, http.StatusCreated, report)
	}
}

func saveUpload(src io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp("", "budgetsync-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("store upload: %w", err)
	}

	return f.Name(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
