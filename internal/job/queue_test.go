package job_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/legal-discovery/backend/internal/db"
	"github.com/legal-discovery/backend/internal/job"
)

func newQueue(t *testing.T) *job.JobQueue {
	t.Helper()
	d, err := db.NewSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	q := job.NewJobQueue(d.DB())
	t.Cleanup(q.Stop)
	return q
}

func waitForStatus(t *testing.T, q *job.JobQueue, id string, want job.JobStatus) *job.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := q.GetJob(id)
		if err == nil && j.Status == want {
			return j
		}
		time.Sleep(20 * time.Millisecond)
	}
	j, _ := q.GetJob(id)
	t.Fatalf("job %s never reached %s (last: %+v)", id, want, j)
	return nil
}

func TestQueue_ProcessesJob(t *testing.T) {
	t.Parallel()

	q := newQueue(t)
	q.RegisterHandler(job.JobTranscribe, func(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
		var params job.TranscribeParams
		if err := json.Unmarshal(j.Params, &params); err != nil {
			return err
		}
		j.Result, _ = json.Marshal(job.TranscribeResult{Filename: params.Filename, EntityCount: 2})
		updateProgress(1.0)
		return nil
	})

	j, err := q.Enqueue(job.JobTranscribe, "abc.mp3", job.TranscribeParams{
		Engine:   "demo",
		Filename: "abc.mp3",
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	done := waitForStatus(t, q, j.ID, job.StatusCompleted)
	var result job.TranscribeResult
	if err := json.Unmarshal(done.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Filename != "abc.mp3" || result.EntityCount != 2 {
		t.Errorf("result=%+v", result)
	}
}

func TestQueue_FailedJobAndRetry(t *testing.T) {
	t.Parallel()

	q := newQueue(t)
	attempts := 0
	q.RegisterHandler(job.JobTranscribe, func(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
		attempts++
		if attempts == 1 {
			return context.DeadlineExceeded
		}
		return nil
	})

	j, err := q.Enqueue(job.JobTranscribe, "bad.mp3", job.TranscribeParams{Engine: "demo"})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	failed := waitForStatus(t, q, j.ID, job.StatusFailed)
	if failed.Error == "" {
		t.Error("failed job has no error message")
	}

	if err := q.RetryJob(j.ID); err != nil {
		t.Fatalf("RetryJob: %v", err)
	}
	waitForStatus(t, q, j.ID, job.StatusCompleted)
}

func TestQueue_ListNewestFirst(t *testing.T) {
	t.Parallel()

	q := newQueue(t)
	// No handler registered: jobs fail fast, but stay listed.
	first, _ := q.Enqueue(job.JobTranscribe, "one.mp3", job.TranscribeParams{})
	time.Sleep(50 * time.Millisecond) // ensure distinct created_at
	second, _ := q.Enqueue(job.JobTranscribe, "two.mp3", job.TranscribeParams{})

	jobs, err := q.ListJobs()
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Errorf("jobs not ordered newest first: %s, %s", jobs[0].ID, jobs[1].ID)
	}
}
