// Package assets serves the static asset directory and the resume download.
package assets

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler serves files from a fixed root directory.
type Handler struct {
	root   string // absolute path to the asset directory
	resume string // resume filename relative to root
}

// New creates a Handler rooted at dir. The directory must already exist;
// resume is the download target relative to it.
func New(dir, resume string) (*Handler, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: root is not a directory: %s", abs)
	}
	return &Handler{root: abs, resume: resume}, nil
}

// safePath resolves a relative path against the asset root and rejects any
// result that escapes it (directory traversal).
func (h *Handler) safePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("assets: path is required")
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("assets: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(h.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("assets: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, h.root+string(os.PathSeparator)) && abs != h.root {
		return "", fmt.Errorf("assets: path escapes asset root: %s", rel)
	}
	return abs, nil
}

// Resume handles GET /resume: the fixed-path download with an attachment
// disposition so browsers save rather than render it.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	abs, err := h.safePath(h.resume)
	if err != nil {
		http.Error(w, "resume unavailable", http.StatusNotFound)
		return
	}
	if _, err := os.Stat(abs); err != nil {
		http.Error(w, "resume unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(abs)))
	http.ServeFile(w, r, abs)
}

// Static handles GET /static/*: plain file serving under the asset root.
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	abs, err := h.safePath(rel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
