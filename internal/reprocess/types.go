// Package reprocess re-runs the extractors over archived uploads in a
// background worker, so improved heuristics reach documents received
// before they shipped.
package reprocess

import (
	"time"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job is one reprocessing request and its progress.
type Job struct {
	JobID           string        `json:"job_id"`
	Kinds           []league.Kind `json:"kinds"`
	DryRun          bool          `json:"dry_run"`
	Status          JobStatus     `json:"status"`
	StatusMessage   string        `json:"status_message,omitempty"`
	ProgressCurrent int           `json:"progress_current"`
	ProgressTotal   int           `json:"progress_total"`
	Succeeded       int           `json:"succeeded"`
	Failed          int           `json:"failed"`
	LastError       string        `json:"last_error,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`

	seq uint64
}

// Copy returns a copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	cpy.Kinds = append([]league.Kind(nil), j.Kinds...)
	return &cpy
}

// Finished reports whether the job reached a terminal state.
func (j *Job) Finished() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	Kinds  []league.Kind
	DryRun bool
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(total int)
	OnUploadProcessed(uploadID string, kind league.Kind)
	OnUploadFailed(uploadID string, kind league.Kind, err error)
	OnJobComplete()
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs"`
}
