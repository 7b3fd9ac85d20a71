package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/topscorers"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store/repository"
)

// TopScorersService handles scorer tables, either spreadsheet grids or
// PDF exports.
type TopScorersService struct {
	base
	repo *repository.TopScorersRepository
	xlsx *document.XLSXLoader
	html *document.HTMLExtractor
}

// NewTopScorersService creates a new top scorers service
func NewTopScorersService(d Deps) *TopScorersService {
	return &TopScorersService{
		base: newBase(d),
		repo: repository.NewTopScorersRepository(d.Store),
		xlsx: document.NewXLSXLoader(),
		html: document.NewHTMLExtractor(),
	}
}

// Kind implements Processor.
func (s *TopScorersService) Kind() league.Kind { return league.KindTopScorers }

// Process extracts, stores and announces an uploaded scorer table.
func (s *TopScorersService) Process(ctx context.Context, u Upload) (*league.TopScorersTable, error) {
	if err := s.accept(ctx, s.Kind(), u); err != nil {
		return nil, err
	}
	return s.run(ctx, u)
}

// Replay implements Processor.
func (s *TopScorersService) Replay(ctx context.Context, u Upload) error {
	_, err := s.run(ctx, u)
	return err
}

func (s *TopScorersService) run(ctx context.Context, u Upload) (*league.TopScorersTable, error) {
	format := document.Detect(u.ContentType, u.Filename, u.Data)
	table, err := s.extract(ctx, format, u)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("saving top scorers: %w", err)
	}

	log.Info().
		Str("format", string(format)).
		Str("season", table.Season).
		Int("scorers", len(table.Scorers)).
		Msg("✓ Top scorers processed")

	s.notify(ctx, publisher.TypeProcessed, s.Kind(), store.CurrentKey, map[string]any{
		"scorers": len(table.Scorers),
		"format":  string(format),
	})
	return table, nil
}

func (s *TopScorersService) extract(ctx context.Context, format document.Format, u Upload) (*league.TopScorersTable, error) {
	var rows [][]string
	var err error
	switch format {
	case document.FormatXLSX:
		rows, err = s.xlsx.Load(u.Data)
	case document.FormatHTML:
		rows, err = s.html.Rows(u.Data)
	default:
		doc, derr := s.decode(ctx, s.Kind(), u)
		if derr != nil {
			return nil, derr
		}
		table, terr := topscorers.ExtractText(doc.Lines())
		if terr != nil {
			return nil, fmt.Errorf("extracting top scorers: %w", terr)
		}
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s upload: %w", s.Kind(), err)
	}
	table, err := topscorers.ExtractGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("extracting top scorers: %w", err)
	}
	return table, nil
}

// Get returns the stored scorer table.
func (s *TopScorersService) Get(ctx context.Context) (*league.TopScorersTable, error) {
	return s.repo.Get(ctx)
}
