package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/legal-discovery/backend/internal/export"
	"github.com/legal-discovery/backend/internal/session"
)

type ExportHandler struct {
	sessions *session.Store
}

func NewExportHandler(sessions *session.Store) *ExportHandler {
	return &ExportHandler{sessions: sessions}
}

// Download serves the session's batch in the requested format
// (GET /api/sessions/{id}/export/{format} with format txt|json|pdf).
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	results, err := h.sessions.Results(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			jsonError(w, "session not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	switch chi.URLParam(r, "format") {
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="transcripts.txt"`)
		w.Write([]byte(export.Text(results)))

	case "json":
		data, err := export.JSON(results)
		if err != nil {
			jsonError(w, "failed to render JSON", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="discovery_report.json"`)
		w.Write(data)

	case "pdf":
		data, err := export.PDF(results)
		if err != nil {
			jsonError(w, "failed to render PDF", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="discovery_report.pdf"`)
		w.Write(data)

	default:
		jsonError(w, "unknown export format (want txt, json, or pdf)", http.StatusBadRequest)
	}
}
