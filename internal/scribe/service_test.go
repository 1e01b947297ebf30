package scribe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/legal-discovery/backend/internal/job"
	"github.com/legal-discovery/backend/internal/session"
)

func TestService_HandleJob_Demo(t *testing.T) {
	t.Parallel()

	uploadDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(uploadDir, "deposition.mp3"), []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	sessions := session.NewStore(time.Hour)
	t.Cleanup(sessions.Close)
	sess := sessions.Create()

	svc := NewService(uploadDir, sessions, "", "", false)
	svc.RegisterEngine("demo", &DemoClient{Delay: 0})

	params, _ := json.Marshal(job.TranscribeParams{
		Engine:    "demo",
		Language:  "en",
		SessionID: sess.ID,
		Filename:  "deposition.mp3",
	})
	j := &job.Job{ID: "j1", Type: job.JobTranscribe, FilePath: "deposition.mp3", Params: params}

	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err != nil {
		t.Fatalf("HandleJob: %v", err)
	}

	results, err := sessions.Results(sess.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.Filename != "deposition.mp3" {
		t.Errorf("filename=%q", r.Filename)
	}
	if !strings.Contains(r.Text, "**Speaker 0**:") || !strings.Contains(r.Text, "**Speaker 1**:") {
		t.Errorf("diarized text missing speaker labels: %q", r.Text)
	}
	if !strings.Contains(r.FormattedText, `<span class="entity-tag" title="person">John Smith (PERSON)</span>`) {
		t.Errorf("formatted text missing entity span: %q", r.FormattedText)
	}
	if len(r.Entities) != 3 {
		t.Errorf("got %d entities, want 3", len(r.Entities))
	}

	// Upload must be cleaned up after processing.
	if _, err := os.Stat(filepath.Join(uploadDir, "deposition.mp3")); !os.IsNotExist(err) {
		t.Error("uploaded file was not removed")
	}

	var jr job.TranscribeResult
	if err := json.Unmarshal(j.Result, &jr); err != nil {
		t.Fatalf("unmarshal job result: %v", err)
	}
	if jr.EntityCount != 3 || jr.SessionID != sess.ID {
		t.Errorf("job result=%+v", jr)
	}
}

// flakyEngine fails its first call and then behaves like the demo engine.
type flakyEngine struct {
	calls int
}

func (f *flakyEngine) Name() string { return "flaky" }

func (f *flakyEngine) Transcribe(ctx context.Context, req Request, updateProgress func(float64)) (*Response, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("transient upstream error")
	}
	return (&DemoClient{Delay: 0}).Transcribe(ctx, req, updateProgress)
}

func TestService_HandleJob_KeepsUploadOnFailure(t *testing.T) {
	t.Parallel()

	uploadDir := t.TempDir()
	uploaded := filepath.Join(uploadDir, "dep.mp3")
	if err := os.WriteFile(uploaded, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	sessions := session.NewStore(time.Hour)
	t.Cleanup(sessions.Close)
	sess := sessions.Create()

	svc := NewService(uploadDir, sessions, "", "", false)
	svc.RegisterEngine("flaky", &flakyEngine{})

	params, _ := json.Marshal(job.TranscribeParams{
		Engine:    "flaky",
		SessionID: sess.ID,
		Filename:  "dep.mp3",
	})
	j := &job.Job{ID: "j3", Type: job.JobTranscribe, FilePath: "dep.mp3", Params: params}

	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err == nil {
		t.Fatal("want error from first attempt")
	}
	// The upload must survive a failed run so the job can be retried.
	if _, err := os.Stat(uploaded); err != nil {
		t.Fatalf("upload removed after failure: %v", err)
	}

	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err != nil {
		t.Fatalf("retried HandleJob: %v", err)
	}
	results, err := sessions.Results(sess.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results after retry, want 1", len(results))
	}
	if _, err := os.Stat(uploaded); !os.IsNotExist(err) {
		t.Error("upload not removed after successful retry")
	}
}

func TestService_DefaultEngine(t *testing.T) {
	t.Parallel()

	sessions := session.NewStore(time.Hour)
	t.Cleanup(sessions.Close)

	cases := []struct {
		name     string
		apiKey   string
		demoMode bool
		want     string
	}{
		{"no key", "", false, "demo"},
		{"key configured", "xi-test", false, "elevenlabs"},
		{"demo mode overrides key", "xi-test", true, "demo"},
	}
	for _, tc := range cases {
		svc := NewService(t.TempDir(), sessions, tc.apiKey, "", tc.demoMode)
		if got := svc.DefaultEngine(); got != tc.want {
			t.Errorf("%s: DefaultEngine()=%q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestService_HandleJob_UnknownEngine(t *testing.T) {
	t.Parallel()

	sessions := session.NewStore(time.Hour)
	t.Cleanup(sessions.Close)

	svc := NewService(t.TempDir(), sessions, "", "", false)
	params, _ := json.Marshal(job.TranscribeParams{Engine: "whisper"})
	j := &job.Job{ID: "j2", Params: params, FilePath: "x.mp3"}

	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err == nil {
		t.Fatal("want error for unknown engine")
	}
}
