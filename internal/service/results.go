package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/matchday"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// ResultsService handles results bulletins
type ResultsService struct {
	base
	repo *repository.ResultsRepository
}

// NewResultsService creates a new results service
func NewResultsService(d Deps) *ResultsService {
	return &ResultsService{
		base: newBase(d),
		repo: repository.NewResultsRepository(d.Store),
	}
}

// Kind implements Processor.
func (s *ResultsService) Kind() league.Kind { return league.KindResults }

// Process extracts and stores the played fixtures of a round.
func (s *ResultsService) Process(ctx context.Context, u Upload) (*league.MatchdayResults, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *ResultsService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *ResultsService) run(ctx context.Context, u Upload) (*league.MatchdayResults, error) {
	doc, err := s.decode(ctx, s.Kind(), u)
	if err != nil {
		return nil, err
	}
	results, err := matchday.ExtractResults(doc.Lines())
	if err != nil {
		return nil, fmt.Errorf("extracting results: %w", err)
	}
	if err := s.repo.Save(ctx, results); err != nil {
		return nil, fmt.Errorf("saving results %d: %w", results.Matchday, err)
	}

	log.Info().
		Int("matchday", results.Matchday).
		Int("matches", len(results.Matches)).
		Str("season", results.Season).
		Msg("✓ Results processed")

	s.notify(ctx, publisher.TypeProcessed, s.Kind(), strconv.Itoa(results.Matchday), map[string]any{
		"matchday": results.Matchday,
		"matches":  len(results.Matches),
	})
	return results, nil
}

// Get returns the results of round n.
func (s *ResultsService) Get(ctx context.Context, n int) (*league.MatchdayResults, error) {
	return s.repo.Get(ctx, n)
}

// Latest returns the results of the highest numbered round.
func (s *ResultsService) Latest(ctx context.Context) (*league.MatchdayResults, error) {
	return s.repo.Latest(ctx)
}
