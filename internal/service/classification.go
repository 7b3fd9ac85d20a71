package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/classification"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// ClassificationService handles standings documents
type ClassificationService struct {
	base
	repo      *repository.ClassificationRepository
	extractor *classification.Extractor
}

// NewClassificationService creates a new classification service
func NewClassificationService(d Deps) *ClassificationService {
	b := newBase(d)
	return &ClassificationService{
		base:      b,
		repo:      repository.NewClassificationRepository(d.Store),
		extractor: classification.New(b.team),
	}
}

// Kind implements Processor.
func (s *ClassificationService) Kind() league.Kind { return league.KindClassification }

// Process extracts, stores and announces an uploaded classification.
func (s *ClassificationService) Process(ctx context.Context, u Upload) (*league.ClassificationTable, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *ClassificationService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *ClassificationService) run(ctx context.Context, u Upload) (*league.ClassificationTable, error) {
	doc, err := s.decode(ctx, s.Kind(), u)
	if err != nil {
		return nil, err
	}
	table, err := s.extractor.Extract(doc.Lines())
	if err != nil {
		return nil, fmt.Errorf("extracting classification: %w", err)
	}
	if err := s.repo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("saving classification: %w", err)
	}

	validated := 0
	for _, row := range table.Rows {
		if row.Validated {
			validated++
		}
	}
	log.Info().
		Str("kind", string(s.Kind())).
		Int("rows", len(table.Rows)).
		Int("validated", validated).
		Bool("last_match", table.LastMatch != nil).
		Msg("✓ Classification processed")

	s.notify(ctx, publisher.TypeProcessed, s.Kind(), store.CurrentKey, map[string]any{
		"rows":      len(table.Rows),
		"validated": validated,
	})
	return table, nil
}

// Get returns the stored classification.
func (s *ClassificationService) Get(ctx context.Context) (*league.ClassificationTable, error) {
	return s.repo.Get(ctx)
}
