package handlers

import (
	"net/http"

	"github.com/legal-discovery/backend/internal/storage"
)

// FilesHandler exposes the upload staging directory. Files appear here after
// upload and disappear once their transcription job has consumed them.
type FilesHandler struct {
	uploadPath string
}

func NewFilesHandler(uploadPath string) *FilesHandler {
	return &FilesHandler{uploadPath: uploadPath}
}

// ListUploads returns the audio files currently staged for transcription
func (h *FilesHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	entries, err := storage.ListDirectory(h.uploadPath, ".")
	if err != nil {
		jsonError(w, "failed to list uploads", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]interface{}{"entries": entries}, http.StatusOK)
}
