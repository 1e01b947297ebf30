package scribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const scribeFixture = `{
	"language_code": "en",
	"text": "Hello there. General Kenobi.",
	"words": [
		{"text": "Hello", "start": 0.0, "end": 0.4, "type": "word", "speaker_id": "speaker_0"},
		{"text": " ", "start": 0.4, "end": 0.5, "type": "spacing"},
		{"text": "there.", "start": 0.5, "end": 0.9, "type": "word", "speaker_id": "speaker_0"},
		{"text": "General", "start": 1.2, "end": 1.6, "type": "word", "speaker_id": "speaker_1"},
		{"text": "Kenobi.", "start": 1.6, "end": 2.1, "type": "word", "speaker_id": "speaker_1"}
	],
	"entities": [
		{"text": "General Kenobi", "type": "person", "start_time": 1.2, "end_time": 2.1}
	]
}`

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hearing.mp3")
	if err := os.WriteFile(path, []byte("fake-mp3-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestElevenLabsClient_Transcribe(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotModel, gotDiarize, gotEntities, gotKeyterms string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model_id")
		gotDiarize = r.FormValue("diarize")
		gotEntities = r.FormValue("detect_entities")
		gotKeyterms = r.FormValue("keyterms")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(scribeFixture))
	}))
	defer server.Close()

	client := NewElevenLabsClient("test-key", "")
	client.SetBaseURL(server.URL)

	resp, err := client.Transcribe(context.Background(), Request{
		FilePath: writeTempAudio(t),
		Language: "auto",
		Keyterms: []string{"NDA", "habeas corpus"},
	}, func(float64) {})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotPath != "/v1/speech-to-text" {
		t.Errorf("path=%q, want /v1/speech-to-text", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key=%q, want test-key", gotKey)
	}
	if gotModel != "scribe_v2" {
		t.Errorf("model_id=%q, want scribe_v2 default", gotModel)
	}
	if gotDiarize != "true" || gotEntities != "true" {
		t.Errorf("diarize=%q detect_entities=%q, want both true", gotDiarize, gotEntities)
	}
	if gotKeyterms != `["NDA","habeas corpus"]` {
		t.Errorf("keyterms=%q, want JSON array", gotKeyterms)
	}

	if resp.LanguageCode != "en" {
		t.Errorf("language=%q, want en", resp.LanguageCode)
	}
	// Spacing tokens must be dropped; 4 real words remain.
	if len(resp.Words) != 4 {
		t.Fatalf("got %d words, want 4 (spacing dropped)", len(resp.Words))
	}
	if resp.Words[2].SpeakerID != "speaker_1" {
		t.Errorf("word 2 speaker=%q, want speaker_1", resp.Words[2].SpeakerID)
	}
	if len(resp.Entities) != 1 || resp.Entities[0].Type != "person" {
		t.Errorf("entities=%+v, want one person mention", resp.Entities)
	}
}

func TestElevenLabsClient_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewElevenLabsClient("bad-key", "scribe_v2")
	client.SetBaseURL(server.URL)

	_, err := client.Transcribe(context.Background(), Request{FilePath: writeTempAudio(t)}, func(float64) {})
	if err == nil {
		t.Fatal("want error on 401 response")
	}
}

func TestElevenLabsClient_NoKey(t *testing.T) {
	t.Parallel()

	client := NewElevenLabsClient("", "")
	if _, err := client.Transcribe(context.Background(), Request{FilePath: "x"}, func(float64) {}); err == nil {
		t.Fatal("want error when API key is missing")
	}
}
