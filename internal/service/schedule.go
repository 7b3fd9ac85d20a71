package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// ScheduleService keeps generic schedule documents as parsed pages.
type ScheduleService struct {
	base
	repo *repository.ScheduleRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(d Deps) *ScheduleService {
	return &ScheduleService{
		base: newBase(d),
		repo: repository.NewScheduleRepository(d.Store),
	}
}

// Kind implements Processor.
func (s *ScheduleService) Kind() league.Kind { return league.KindSchedule }

// Process decodes and stores an uploaded schedule.
func (s *ScheduleService) Process(ctx context.Context, u Upload) (*document.ParsedDocument, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *ScheduleService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *ScheduleService) run(ctx context.Context, u Upload) (*document.ParsedDocument, error) {
	doc, err := s.decode(ctx, s.Kind(), u)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	log.Info().Str("kind", string(s.Kind())).Int("pages", len(doc.Pages)).Msg("✓ Schedule processed")
	s.notify(ctx, publisher.TypeProcessed, s.Kind(), store.CurrentKey, map[string]any{"pages": len(doc.Pages)})
	return doc, nil
}

// Get returns the stored schedule document.
func (s *ScheduleService) Get(ctx context.Context) (*document.ParsedDocument, error) {
	return s.repo.Get(ctx)
}
