// Package session keeps each browser session's batch of transcription results
// in memory. Results are intentionally not persisted: a session lives for one
// interaction and is dropped after its idle TTL.
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legal-discovery/backend/internal/transcript"
)

// MaxBatchSize caps how many results one session may hold. The upload handler
// enforces the same limit per request.
const MaxBatchSize = 5

var (
	ErrNotFound  = errors.New("session not found")
	ErrBatchFull = errors.New("session batch is full")
)

// Session is the caller-owned mutable context holding one batch of results.
type Session struct {
	ID         string               `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	LastAccess time.Time            `json:"last_access"`
	Results    []*transcript.Result `json:"results"`
}

// Store is an in-memory session registry safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore creates a store whose sessions expire after ttl of inactivity and
// starts the cleanup goroutine.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create registers a new empty session and returns a snapshot of it.
func (s *Store) Create() Session {
	now := time.Now()
	sess := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		LastAccess: now,
		Results:    []*transcript.Result{},
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return snapshot(sess)
}

// Get returns a snapshot of the session with the given ID and refreshes its
// idle timer. The snapshot's Results slice is a copy, so callers may read it
// without racing the transcription worker.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	sess.LastAccess = time.Now()
	return snapshot(sess), nil
}

func snapshot(sess *Session) Session {
	out := *sess
	out.Results = make([]*transcript.Result, len(sess.Results))
	copy(out.Results, sess.Results)
	return out
}

// Append adds a result to the session's batch.
func (s *Store) Append(id string, r *transcript.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if len(sess.Results) >= MaxBatchSize {
		return ErrBatchFull
	}
	sess.Results = append(sess.Results, r)
	sess.LastAccess = time.Now()
	return nil
}

// Results returns a copy of the session's result slice so callers can iterate
// without holding the store lock.
func (s *Store) Results(id string) ([]*transcript.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]*transcript.Result, len(sess.Results))
	copy(out, sess.Results)
	return out, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.expire()
		}
	}
}

func (s *Store) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastAccess) > s.ttl {
			delete(s.sessions, id)
			log.Printf("[session] expired session %s (%d results)", id, len(sess.Results))
		}
	}
}
