package scribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/legal-discovery/backend/internal/transcript"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"
const maxElevenLabsFileSize = 1024 * 1024 * 1024 // 1GB API limit

// ElevenLabsClient uses the ElevenLabs Scribe speech-to-text API
type ElevenLabsClient struct {
	apiKey     string
	modelID    string
	baseURL    string
	httpClient *http.Client
}

func NewElevenLabsClient(apiKey, modelID string) *ElevenLabsClient {
	if modelID == "" {
		modelID = "scribe_v2"
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		modelID: modelID,
		baseURL: elevenLabsBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// SetBaseURL overrides the API endpoint (used by tests)
func (c *ElevenLabsClient) SetBaseURL(url string) {
	c.baseURL = url
}

func (c *ElevenLabsClient) Name() string {
	return "elevenlabs"
}

// scribeResponse is the JSON shape returned by the speech-to-text endpoint
type scribeResponse struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
	Words        []struct {
		Text      string  `json:"text"`
		Start     float64 `json:"start"`
		End       float64 `json:"end"`
		Type      string  `json:"type"`
		SpeakerID string  `json:"speaker_id"`
	} `json:"words"`
	Entities []struct {
		Text  string  `json:"text"`
		Type  string  `json:"type"`
		Start float64 `json:"start_time"`
		End   float64 `json:"end_time"`
	} `json:"entities"`
}

func (c *ElevenLabsClient) Transcribe(ctx context.Context, req Request, updateProgress func(float64)) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key not configured")
	}

	info, err := os.Stat(req.FilePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxElevenLabsFileSize {
		return nil, fmt.Errorf("audio file too large: %d bytes (limit %d)", info.Size(), maxElevenLabsFileSize)
	}

	updateProgress(0.05)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("model_id", c.modelID)
	writer.WriteField("diarize", "true")
	writer.WriteField("detect_entities", "true")
	writer.WriteField("tag_audio_events", "false")
	if req.Language != "" && req.Language != "auto" {
		writer.WriteField("language_code", req.Language)
	}
	if len(req.Keyterms) > 0 {
		keyterms, err := json.Marshal(req.Keyterms)
		if err != nil {
			return nil, fmt.Errorf("marshal keyterms: %w", err)
		}
		writer.WriteField("keyterms", string(keyterms))
	}
	writer.Close()

	updateProgress(0.15)

	url := c.baseURL + "/v1/speech-to-text"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("xi-api-key", c.apiKey)

	log.Printf("[scribe] sending request to %s (audio: %s)", url, filepath.Base(req.FilePath))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ElevenLabs API request: %w", err)
	}
	defer resp.Body.Close()

	updateProgress(0.9)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ElevenLabs API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed scribeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	result := &Response{
		Text:         parsed.Text,
		LanguageCode: parsed.LanguageCode,
	}
	for _, w := range parsed.Words {
		// Scribe emits "spacing" tokens between words; they carry no
		// speaker attribution and would pollute the diarized turns.
		if w.Type == "spacing" {
			continue
		}
		result.Words = append(result.Words, transcript.Word{
			Text:      w.Text,
			SpeakerID: w.SpeakerID,
			Start:     w.Start,
			End:       w.End,
			Type:      w.Type,
		})
	}
	for _, e := range parsed.Entities {
		result.Entities = append(result.Entities, transcript.Entity{
			Text:  e.Text,
			Type:  e.Type,
			Start: e.Start,
			End:   e.End,
		})
	}

	updateProgress(0.95)
	return result, nil
}
