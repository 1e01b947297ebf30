package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/legal-discovery/backend/internal/job"
	"github.com/legal-discovery/backend/internal/scribe"
	"github.com/legal-discovery/backend/internal/session"
	"github.com/legal-discovery/backend/internal/storage"
)

type TranscribeHandler struct {
	service     *scribe.Service
	queue       *job.JobQueue
	sessions    *session.Store
	uploadPath  string
	maxBodySize int64
	defaultLang string
}

func NewTranscribeHandler(service *scribe.Service, queue *job.JobQueue, sessions *session.Store,
	uploadPath string, maxBodySize int64, defaultLang string) *TranscribeHandler {
	return &TranscribeHandler{
		service:     service,
		queue:       queue,
		sessions:    sessions,
		uploadPath:  uploadPath,
		maxBodySize: maxBodySize,
		defaultLang: defaultLang,
	}
}

type transcribeResponse struct {
	SessionID string   `json:"session_id"`
	JobIDs    []string `json:"job_ids"`
}

// Upload accepts a multipart batch of audio files and queues one transcription
// job per file. Form fields: "files" (1-5 audio files), "session_id"
// (required), "engine", "language", "keyterms" (comma-separated hints).
func (h *TranscribeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "request too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		jsonError(w, "session_id is required", http.StatusBadRequest)
		return
	}
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "no files uploaded", http.StatusBadRequest)
		return
	}
	if len(files)+len(sess.Results) > session.MaxBatchSize {
		jsonError(w, fmt.Sprintf("batch limited to %d files per session", session.MaxBatchSize), http.StatusBadRequest)
		return
	}

	engine := r.FormValue("engine")
	if engine == "" {
		engine = h.service.DefaultEngine()
	}
	if !h.service.HasEngine(engine) {
		jsonError(w, "unknown engine: "+engine, http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = h.defaultLang
	}
	keyterms := parseKeyterms(r.FormValue("keyterms"))

	jobIDs := make([]string, 0, len(files))
	for _, hdr := range files {
		f, err := hdr.Open()
		if err != nil {
			jsonError(w, "failed to read upload: "+hdr.Filename, http.StatusBadRequest)
			return
		}
		storedName, err := storage.SaveUpload(h.uploadPath, hdr.Filename, f)
		f.Close()
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) {
				jsonError(w, hdr.Filename+": unsupported file type", http.StatusBadRequest)
				return
			}
			jsonError(w, "failed to save upload: "+hdr.Filename, http.StatusInternalServerError)
			return
		}

		j, err := h.queue.Enqueue(job.JobTranscribe, storedName, job.TranscribeParams{
			Engine:    engine,
			Language:  language,
			Keyterms:  keyterms,
			SessionID: sessionID,
			Filename:  hdr.Filename,
		})
		if err != nil {
			jsonError(w, "failed to queue job", http.StatusInternalServerError)
			return
		}
		jobIDs = append(jobIDs, j.ID)
	}

	jsonResponse(w, transcribeResponse{SessionID: sessionID, JobIDs: jobIDs}, http.StatusAccepted)
}

// Engines lists the registered speech-to-text engines
func (h *TranscribeHandler) Engines(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"engines": h.service.EngineNames(),
		"default": h.service.DefaultEngine(),
	}, http.StatusOK)
}

// parseKeyterms splits a comma-separated hint list, dropping empty entries
func parseKeyterms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}
