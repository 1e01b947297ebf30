package scribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/legal-discovery/backend/internal/job"
	"github.com/legal-discovery/backend/internal/session"
	"github.com/legal-discovery/backend/internal/storage"
	"github.com/legal-discovery/backend/internal/transcript"
)

// Service manages speech-to-text engines and processes transcription jobs
type Service struct {
	engines    map[string]Transcriber
	uploadPath string
	sessions   *session.Store
	demoMode   bool
}

// NewService creates a scribe service with available engines. When demoMode
// is set the demo engine is the default even if a real API is configured.
func NewService(uploadPath string, sessions *session.Store, apiKey, modelID string, demoMode bool) *Service {
	s := &Service{
		engines:    make(map[string]Transcriber),
		uploadPath: uploadPath,
		sessions:   sessions,
		demoMode:   demoMode,
	}

	// Register ElevenLabs engine when a key is configured
	if apiKey != "" {
		s.engines["elevenlabs"] = NewElevenLabsClient(apiKey, modelID)
		log.Printf("[scribe] registered ElevenLabs engine (model %s)", modelID)
	}

	// Demo engine is always available
	s.engines["demo"] = NewDemoClient()
	log.Printf("[scribe] registered demo engine")

	return s
}

// RegisterEngine adds an engine
func (s *Service) RegisterEngine(name string, engine Transcriber) {
	s.engines[name] = engine
	log.Printf("[scribe] registered %s engine", name)
}

// HasEngine reports whether an engine is registered under the given name
func (s *Service) HasEngine(name string) bool {
	_, ok := s.engines[name]
	return ok
}

// DefaultEngine prefers the real API when configured, falling back to demo
func (s *Service) DefaultEngine() string {
	if !s.demoMode && s.HasEngine("elevenlabs") {
		return "elevenlabs"
	}
	return "demo"
}

// EngineNames lists the registered engines
func (s *Service) EngineNames() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}

// HandleJob processes a transcription job: it runs the requested engine over
// the uploaded file, reconstructs the diarized transcript, highlights detected
// entities, and appends the result to the job's session. The uploaded file is
// deleted only after a successful run; a failed job keeps its upload so the
// job can be retried.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.TranscribeParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	engine, ok := s.engines[params.Engine]
	if !ok {
		return fmt.Errorf("unknown engine: %s (available: %v)", params.Engine, s.EngineNames())
	}

	fullPath := filepath.Join(s.uploadPath, j.FilePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", j.FilePath)
	}

	log.Printf("[scribe] starting transcription: engine=%s file=%s language=%s keyterms=%d",
		params.Engine, j.FilePath, params.Language, len(params.Keyterms))

	resp, err := engine.Transcribe(ctx, Request{
		FilePath: fullPath,
		Language: params.Language,
		Keyterms: params.Keyterms,
	}, updateProgress)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	result := buildResult(params.Filename, resp)

	if err := s.sessions.Append(params.SessionID, result); err != nil {
		return fmt.Errorf("store result: %w", err)
	}

	storage.Remove(s.uploadPath, j.FilePath)

	log.Printf("[scribe] transcription complete: file=%s entities=%d", params.Filename, len(result.Entities))

	resultJSON, _ := json.Marshal(job.TranscribeResult{
		SessionID:   params.SessionID,
		Filename:    params.Filename,
		Language:    result.Language,
		EntityCount: len(result.Entities),
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}

// buildResult turns a raw engine response into a display-ready record.
// When word-level diarization is available the transcript text is the
// reconstructed speaker turns; otherwise the engine's flat text is used.
func buildResult(filename string, resp *Response) *transcript.Result {
	text := resp.Text
	if len(resp.Words) > 0 {
		text = transcript.FormatDiarized(resp.Words)
	}

	entities := resp.Entities
	if entities == nil {
		entities = []transcript.Entity{}
	}

	return &transcript.Result{
		Filename:      filename,
		Text:          text,
		FormattedText: transcript.Highlight(text, entities),
		Entities:      entities,
		Language:      resp.LanguageCode,
		Status:        transcript.StatusCompleted,
	}
}
