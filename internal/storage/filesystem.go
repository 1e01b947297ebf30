package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads whose extension is not an
// accepted audio format.
var ErrUnsupportedType = errors.New("unsupported file type")

type FileEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// audioExtensions are the upload types accepted for transcription. MP3 and
// WAV are what the frontend offers; the rest are also accepted by Scribe.
var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true,
	".flac": true, ".ogg": true, ".webm": true,
}

func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// SaveUpload writes an uploaded file into dir under a unique, sanitized name
// and returns that name. The original filename only contributes its extension;
// everything else is replaced to keep uploads path-traversal safe.
func SaveUpload(dir, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !audioExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

// ListDirectory lists audio files under basePath/relativePath.
func ListDirectory(basePath, relativePath string) ([]*FileEntry, error) {
	fullPath := filepath.Join(basePath, relativePath)

	// Prevent path traversal
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, err
	}
	// A bare prefix check would admit siblings like "uploads-x" for base
	// "uploads", so require a separator after the base.
	if absFull != absBase && !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) {
		return nil, os.ErrPermission
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	result := []*FileEntry{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !IsAudioFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		result = append(result, &FileEntry{
			Name: entry.Name(),
			Path: filepath.Join(relativePath, entry.Name()),
			Size: info.Size(),
		})
	}
	return result, nil
}

// Remove deletes a file inside basePath, refusing anything that escapes it.
func Remove(basePath, name string) error {
	target := filepath.Join(basePath, filepath.Base(name))
	return os.Remove(target)
}
