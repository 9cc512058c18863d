package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
)

// JobStore provides in-memory storage for extraction jobs. Résumé bytes are
// processed in RAM only and never written to disk. Jobs are automatically
// cleaned up after a TTL so abandoned polls do not leak memory.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ExtractionJob
	ttl  time.Duration
}

// NewJobStore creates a new in-memory job store with the given TTL
func NewJobStore(ttl time.Duration) *JobStore {
	s := &JobStore{
		jobs: make(map[string]*domain.ExtractionJob),
		ttl:  ttl,
	}
	go s.cleanupLoop()
	return s
}

// NewJobID creates a random job ID
func NewJobID() string {
	return uuid.New().String()
}

// StoreJob stores an extraction job
func (s *JobStore) StoreJob(job *domain.ExtractionJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
}

// GetJob retrieves an extraction job by ID. It returns a copy taken under
// the lock so pollers never observe a job mid-update.
func (s *JobStore) GetJob(jobID string) *domain.ExtractionJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

// UpdateJob updates an existing extraction job
func (s *JobStore) UpdateJob(jobID string, update func(*domain.ExtractionJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		update(job)
	}
}

// DeleteJob removes a job from storage
func (s *JobStore) DeleteJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// cleanupLoop periodically removes expired jobs
func (s *JobStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *JobStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
