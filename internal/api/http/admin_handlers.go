package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

// Reloader rereads the question bank and publishes the new snapshot.
type Reloader interface {
	Reload(ctx context.Context) (*quiz.Bank, error)
}

// POST /api/admin/reload
func ReloadHandler(rl Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := rl.Reload(r.Context())
		if err != nil {
			slog.Error("reload bank", "error", err)
			status := http.StatusInternalServerError
			if errors.Is(err, quiz.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, "reload: "+err.Error(), status)
			return
		}
		slog.Info("question bank reloaded", "questions", b.Len())
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "questions": b.Len()})
	}
}

// PUT /api/admin/bank?format=json|yaml
//
// Replaces the stored bank with the request body and reloads it. The body is
// decoded and validated before anything is written, so a malformed or empty
// upload leaves the current bank untouched.
func UploadBankHandler(sink quiz.Sink, rl Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := quiz.FormatFromName(r.URL.Query().Get("format"))
		qs, err := quiz.DecodeQuestions(http.MaxBytesReader(w, r.Body, 8<<20), format)
		if err == nil {
			err = quiz.Validate(qs)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := sink.Save(r.Context(), qs); err != nil {
			slog.Error("save bank", "error", err)
			http.Error(w, "save bank: "+err.Error(), http.StatusInternalServerError)
			return
		}
		b, err := rl.Reload(r.Context())
		if err != nil {
			slog.Error("reload bank", "error", err)
			http.Error(w, "reload: "+err.Error(), http.StatusInternalServerError)
			return
		}
		slog.Info("question bank replaced", "questions", b.Len(), "format", format)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "questions": b.Len()})
	}
}
