package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/matchday"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// MatchdayService handles matchday fixture sheets
type MatchdayService struct {
	base
	repo *repository.MatchdayRepository
}

// NewMatchdayService creates a new matchday service
func NewMatchdayService(d Deps) *MatchdayService {
	return &MatchdayService{
		base: newBase(d),
		repo: repository.NewMatchdayRepository(d.Store),
	}
}

// Kind implements Processor.
func (s *MatchdayService) Kind() league.Kind { return league.KindMatchday }

// Team is the tracked team used for projections.
func (s *MatchdayService) Team() string { return s.team }

// Process extracts and stores every fixture of an uploaded round. The
// full round is stored; callers project it with ForTeam.
func (s *MatchdayService) Process(ctx context.Context, u Upload) (*league.Matchday, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *MatchdayService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *MatchdayService) run(ctx context.Context, u Upload) (*league.Matchday, error) {
	doc, err := s.decode(ctx, s.Kind(), u)
	if err != nil {
		return nil, err
	}
	round, err := matchday.Extract(doc.Lines())
	if err != nil {
		return nil, fmt.Errorf("extracting matchday: %w", err)
	}
	if err := s.repo.Save(ctx, round); err != nil {
		return nil, fmt.Errorf("saving matchday %d: %w", round.Number, err)
	}

	team := len(round.FixturesFor(s.team))
	log.Info().
		Int("matchday", round.Number).
		Int("fixtures", len(round.Fixtures)).
		Int("team_fixtures", team).
		Msg("✓ Matchday processed")

	s.notify(ctx, publisher.TypeProcessed, s.Kind(), strconv.Itoa(round.Number), map[string]any{
		"matchday":      round.Number,
		"fixtures":      len(round.Fixtures),
		"team_fixtures": team,
	})
	return round, nil
}

// Get returns matchday n.
func (s *MatchdayService) Get(ctx context.Context, n int) (*league.Matchday, error) {
	return s.repo.Get(ctx, n)
}

// Latest returns the highest numbered matchday.
func (s *MatchdayService) Latest(ctx context.Context) (*league.Matchday, error) {
	return s.repo.Latest(ctx)
}

// UpdateLatest replaces the latest matchday with m. The numbers must agree.
func (s *MatchdayService) UpdateLatest(ctx context.Context, m *league.Matchday) (*league.Matchday, error) {
	latest, err := s.repo.Latest(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrLatestMatchdayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest matchday: %w", err)
	}
	if latest.Number != m.Number {
		return nil, fmt.Errorf("%w: got %d, latest is %d", ErrMatchdayNumberMismatch, m.Number, latest.Number)
	}
	if m.Fixtures == nil {
		m.Fixtures = []league.MatchFixture{}
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("saving matchday %d: %w", m.Number, err)
	}

	log.Info().Int("matchday", m.Number).Int("fixtures", len(m.Fixtures)).Msg("Latest matchday updated")
	s.notify(ctx, publisher.TypeUpdated, s.Kind(), strconv.Itoa(m.Number), map[string]any{"fixtures": len(m.Fixtures)})
	return m, nil
}

// Delete removes matchday n.
func (s *MatchdayService) Delete(ctx context.Context, n int) error {
	if err := s.repo.Delete(ctx, n); err != nil {
		return err
	}
	log.Info().Int("matchday", n).Msg("Matchday deleted")
	s.notify(ctx, publisher.TypeDeleted, s.Kind(), strconv.Itoa(n), nil)
	return nil
}

// DeleteLatest removes the highest numbered matchday and returns its number.
func (s *MatchdayService) DeleteLatest(ctx context.Context) (int, error) {
	latest, err := s.repo.Latest(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrLatestMatchdayNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("loading latest matchday: %w", err)
	}
	if err := s.Delete(ctx, latest.Number); err != nil {
		return 0, err
	}
	return latest.Number, nil
}

// TeamFixtures returns the tracked team's fixtures of every stored round,
// ordered by round. Rounds without the team are skipped.
func (s *MatchdayService) TeamFixtures(ctx context.Context) ([]league.Matchday, error) {
	rounds, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []league.Matchday{}
	for _, round := range rounds {
		projected := round.ForTeam(s.team)
		if len(projected.Fixtures) > 0 {
			out = append(out, projected)
		}
	}
	return out, nil
}
