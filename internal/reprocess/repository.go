package reprocess

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository keeps reprocessing jobs in memory. Jobs are cheap to repeat
// and the uploads they read are persisted, so the queue is not.
type Repository struct {
	mu   sync.Mutex
	jobs map[string]*Job
	seq  uint64
	now  func() time.Time
}

// NewRepository constructs a Repository.
func NewRepository() *Repository {
	return &Repository{
		jobs: make(map[string]*Job),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateJob stores a new job and returns a copy of it.
func (r *Repository) CreateJob(_ context.Context, job *Job) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := job.Copy()
	r.seq++
	stored.seq = r.seq
	stored.JobID = uuid.NewString()
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.jobs[stored.JobID] = stored
	return stored.Copy(), nil
}

func (r *Repository) get(jobID string) (*Job, error) {
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s not found", jobID)
	}
	return job, nil
}

// UpdateStatus updates status, message and optional error.
func (r *Repository) UpdateStatus(_ context.Context, jobID string, status JobStatus, message string, lastErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.get(jobID)
	if err != nil {
		return err
	}
	now := r.now()
	job.Status = status
	job.StatusMessage = message
	job.UpdatedAt = now
	if lastErr != nil {
		job.LastError = lastErr.Error()
	}
	if job.Finished() {
		job.CompletedAt = &now
	}
	return nil
}

// UpdateProgress updates the progress counters and message.
func (r *Repository) UpdateProgress(_ context.Context, jobID string, current, total int, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.get(jobID)
	if err != nil {
		return err
	}
	job.ProgressCurrent = current
	job.ProgressTotal = total
	job.StatusMessage = message
	job.UpdatedAt = r.now()
	return nil
}

// RecordOutcome counts one replayed upload.
func (r *Repository) RecordOutcome(_ context.Context, jobID string, failure error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.get(jobID)
	if err != nil {
		return err
	}
	if failure != nil {
		job.Failed++
		job.LastError = failure.Error()
	} else {
		job.Succeeded++
	}
	job.ProgressCurrent = job.Succeeded + job.Failed
	job.UpdatedAt = r.now()
	return nil
}

// MarkNextJobRunning claims the oldest queued job, or returns nil.
func (r *Repository) MarkNextJobRunning(_ context.Context) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *Job
	for _, job := range r.jobs {
		if job.Status != JobStatusQueued {
			continue
		}
		if next == nil || job.seq < next.seq {
			next = job
		}
	}
	if next == nil {
		return nil, nil
	}
	now := r.now()
	next.Status = JobStatusRunning
	next.StatusMessage = "Running"
	next.StartedAt = &now
	next.UpdatedAt = now
	return next.Copy(), nil
}

// CancelQueued cancels every queued job, used on shutdown.
func (r *Repository) CancelQueued(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	now := r.now()
	for _, job := range r.jobs {
		if job.Status == JobStatusQueued {
			job.Status = JobStatusCancelled
			job.StatusMessage = "Cancelled at shutdown"
			job.UpdatedAt = now
			job.CompletedAt = &now
			n++
		}
	}
	return n
}

// GetActiveJob returns the running job, if any.
func (r *Repository) GetActiveJob(_ context.Context) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, job := range r.jobs {
		if job.Status == JobStatusRunning {
			return job.Copy(), nil
		}
	}
	return nil, nil
}

// GetJob returns a job by id.
func (r *Repository) GetJob(_ context.Context, jobID string) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.get(jobID)
	if err != nil {
		return nil, err
	}
	return job.Copy(), nil
}

// ListRecentJobs returns up to limit jobs, newest first.
func (r *Repository) ListRecentJobs(_ context.Context, limit int) ([]*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := make([]*Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job.Copy())
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].seq > jobs[j].seq
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}
