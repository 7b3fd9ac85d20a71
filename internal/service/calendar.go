package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/calendar"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// CalendarService handles the tracked team's season calendar
type CalendarService struct {
	base
	repo      *repository.CalendarRepository
	extractor *calendar.Extractor
}

// NewCalendarService creates a new calendar service
func NewCalendarService(d Deps) *CalendarService {
	b := newBase(d)
	return &CalendarService{
		base:      b,
		repo:      repository.NewCalendarRepository(d.Store),
		extractor: calendar.New(b.team),
	}
}

// Kind implements Processor.
func (s *CalendarService) Kind() league.Kind { return league.KindCalendar }

// Process extracts, stores and announces an uploaded season calendar.
func (s *CalendarService) Process(ctx context.Context, u Upload) (*league.TeamCalendar, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *CalendarService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *CalendarService) run(ctx context.Context, u Upload) (*league.TeamCalendar, error) {
	doc, err := s.decode(ctx, s.Kind(), u)
	if err != nil {
		return nil, err
	}
	cal, err := s.extractor.Extract(doc.Lines())
	if err != nil {
		return nil, fmt.Errorf("extracting calendar: %w", err)
	}
	if err := s.repo.Save(ctx, cal); err != nil {
		return nil, fmt.Errorf("saving calendar: %w", err)
	}

	byes := 0
	for _, m := range cal.Matches {
		if m.IsBye() {
			byes++
		}
	}
	log.Info().
		Str("team", cal.Team).
		Str("season", cal.Season).
		Int("rounds", len(cal.Matches)).
		Int("byes", byes).
		Msg("✓ Calendar processed")

	s.notify(ctx, publisher.TypeProcessed, s.Kind(), store.CurrentKey, map[string]any{
		"rounds": len(cal.Matches),
		"byes":   byes,
	})
	return cal, nil
}

// Get returns the stored calendar.
func (s *CalendarService) Get(ctx context.Context) (*league.TeamCalendar, error) {
	return s.repo.Get(ctx)
}
