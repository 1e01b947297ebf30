package scribe

import (
	"context"

	"github.com/legal-discovery/backend/internal/transcript"
)

// Request is the input for a transcription
type Request struct {
	FilePath string   // absolute path to the audio file
	Language string   // "auto", "en", etc.
	Keyterms []string // transcription hints for domain vocabulary
}

// Response is the output of a transcription
type Response struct {
	Text         string              // full transcript text
	LanguageCode string              // detected language
	Words        []transcript.Word   // word-level diarized output
	Entities     []transcript.Entity // detected entity mentions
}

// Transcriber is the common interface for all speech-to-text engines
type Transcriber interface {
	// Transcribe converts an audio file to a transcript with speaker and
	// entity annotations
	Transcribe(ctx context.Context, req Request, updateProgress func(float64)) (*Response, error)
	// Name returns the engine name
	Name() string
}
