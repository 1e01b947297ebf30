package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobTranscribe JobType = "transcribe"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued transcription task
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranscribeParams are parameters for a transcription job
type TranscribeParams struct {
	Engine    string   `json:"engine"`             // "elevenlabs", "demo"
	Language  string   `json:"language"`           // "auto", "en", etc.
	Keyterms  []string `json:"keyterms,omitempty"` // transcription hints
	SessionID string   `json:"session_id"`         // session receiving the result
	Filename  string   `json:"filename"`           // original upload filename
}

// TranscribeResult is the output of a successful transcription
type TranscribeResult struct {
	SessionID   string `json:"session_id"`
	Filename    string `json:"filename"`
	Language    string `json:"language"`     // detected or specified language
	EntityCount int    `json:"entity_count"` // detected entity mentions
}

// JobHandler processes a job. The implementation is provided by the scribe package.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
