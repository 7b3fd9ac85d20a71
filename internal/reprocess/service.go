package reprocess

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

// ErrInvalidKind is returned when a request names an unknown document kind.
var ErrInvalidKind = errors.New("invalid document kind")

// Request represents a reprocess invocation request. No kinds means all.
type Request struct {
	Kinds  []league.Kind `json:"kinds"`
	DryRun bool          `json:"dry_run"`
}

// Validate checks the requested kinds.
func (r Request) Validate() error {
	for _, k := range r.Kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidKind, k)
		}
	}
	return nil
}

// Service coordinates job bookkeeping, execution and status reporting.
type Service struct {
	repo   *Repository
	runner *Runner

	historyLimit int
	pollInterval time.Duration
	wake         chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(archive store.UploadArchive, processors map[league.Kind]service.Processor) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		repo:         NewRepository(),
		runner:       NewRunner(archive, processors),
		historyLimit: 10,
		pollInterval: 3 * time.Second,
		wake:         make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for it to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()
	if n := s.repo.CancelQueued(ctx); n > 0 {
		log.Info().Int("jobs", n).Msg("Cancelled queued reprocess jobs")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	spec := JobSpec{Kinds: req.Kinds, DryRun: req.DryRun}
	planned, err := s.runner.Plan(ctx, spec)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.CreateJob(ctx, &Job{
		Kinds:         req.Kinds,
		DryRun:        req.DryRun,
		Status:        JobStatusQueued,
		StatusMessage: "Queued",
		ProgressTotal: len(planned),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("job_id", stored.JobID).Int("uploads", len(planned)).Bool("dry_run", req.DryRun).Msg("Reprocess job queued")

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return stored, nil
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

// GetJob returns a single job.
func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJob(ctx, jobID)
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				log.Error().Err(err).Msg("claim reprocess job")
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-s.wake:
					continue
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	reporter := &jobReporter{
		ctx:   s.ctx,
		repo:  s.repo,
		jobID: job.JobID,
	}

	spec := JobSpec{Kinds: job.Kinds, DryRun: job.DryRun}
	if err := s.runner.Run(s.ctx, spec, reporter); err != nil {
		status := JobStatusFailed
		if errors.Is(err, context.Canceled) {
			status = JobStatusCancelled
		}
		log.Error().Err(err).Str("job_id", job.JobID).Msg("Reprocess job failed")
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, status, "Job failed", err)
		return
	}

	done, _ := s.repo.GetJob(s.ctx, job.JobID)
	if done != nil {
		log.Info().
			Str("job_id", job.JobID).
			Int("succeeded", done.Succeeded).
			Int("failed", done.Failed).
			Msg("✓ Reprocess job completed")
	}
	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}

type jobReporter struct {
	ctx   context.Context
	repo  *Repository
	jobID string
	total int
}

func (r *jobReporter) OnJobStart(total int) {
	r.total = total
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, 0, total, "Job starting")
}

func (r *jobReporter) OnUploadProcessed(uploadID string, kind league.Kind) {
	_ = r.repo.RecordOutcome(r.ctx, r.jobID, nil)
}

func (r *jobReporter) OnUploadFailed(uploadID string, kind league.Kind, err error) {
	_ = r.repo.RecordOutcome(r.ctx, r.jobID, fmt.Errorf("%s upload %s: %w", kind, uploadID, err))
}

func (r *jobReporter) OnJobComplete() {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, r.total, r.total, "Job complete")
}
