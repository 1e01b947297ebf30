package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/legal-discovery/backend/internal/session"
)

type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create starts a new empty session for one browser interaction
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	jsonResponse(w, sess, http.StatusCreated)
}

// Get returns the session with its accumulated results
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			jsonError(w, "session not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, sess, http.StatusOK)
}

// Delete discards a session and its results
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
