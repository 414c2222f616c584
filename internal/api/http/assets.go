// internal/api/http/assets.go
package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

// MountAssets serves the quiz UI: "/" is index.html and everything under
// /static/ comes straight from the blob store.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		serveBlob(w, bs, "index.html")
	})

	// GET /static/*   -> returns the blob at whatever follows /static/
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")        // everything after /static/
		key = strings.TrimPrefix(key, "/") // normalize
		serveBlob(w, bs, key)
	})
}

func serveBlob(w http.ResponseWriter, bs storage.BlobStore, key string) {
	rc, err := bs.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("read asset", "key", key, "error", err)
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	_, _ = io.Copy(w, rc)
}
