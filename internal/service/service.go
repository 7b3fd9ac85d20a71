// Package service runs uploaded documents through decoding, extraction and
// persistence, one service per document kind.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/extract/calendar"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

var (
	// ErrEmptyUpload is returned for uploads without content.
	ErrEmptyUpload = errors.New("uploaded file is empty")
	// ErrLatestMatchdayNotFound means no matchday is stored yet.
	ErrLatestMatchdayNotFound = errors.New("no latest matchday stored")
	// ErrMatchdayNumberMismatch means an update does not target the latest matchday.
	ErrMatchdayNumberMismatch = errors.New("matchday number does not match the latest stored matchday")
)

// Upload is a document received for processing.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FromArchive turns an archived upload back into processing input.
func FromArchive(u store.Upload) Upload {
	return Upload{Filename: u.Filename, ContentType: u.ContentType, Data: u.Data}
}

// Processor is implemented by every per-kind service.
type Processor interface {
	Kind() league.Kind
	// Replay re-runs extraction and persistence without archiving again.
	Replay(ctx context.Context, u Upload) error
}

// Deps are the collaborators shared by the services. Archive and Notifier
// are optional.
type Deps struct {
	Store    store.RecordStore
	Archive  store.UploadArchive
	Notifier publisher.Notifier
	Registry *document.Registry
	Team     string
}

type base struct {
	store    store.RecordStore
	archive  store.UploadArchive
	notifier publisher.Notifier
	registry *document.Registry
	team     string
}

func newBase(d Deps) base {
	b := base{
		store:    d.Store,
		archive:  d.Archive,
		notifier: d.Notifier,
		registry: d.Registry,
		team:     d.Team,
	}
	if b.notifier == nil {
		b.notifier = publisher.Discard{}
	}
	if b.registry == nil {
		b.registry = document.NewRegistry()
	}
	if b.team == "" {
		b.team = calendar.DefaultTeam
	}
	return b
}

// accept validates an upload and keeps a raw copy for reprocessing.
// Archiving failures are logged and never reject the upload.
func (b *base) accept(ctx context.Context, kind league.Kind, u Upload) error {
	if len(u.Data) == 0 {
		return ErrEmptyUpload
	}
	if b.archive == nil {
		return nil
	}
	rec := &store.Upload{
		Kind:        kind,
		Filename:    u.Filename,
		ContentType: u.ContentType,
		Data:        u.Data,
	}
	if err := b.archive.SaveUpload(ctx, rec); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("file", u.Filename).Msg("failed to archive upload")
		return nil
	}
	log.Debug().Str("kind", string(kind)).Str("upload_id", rec.ID).Int64("size", rec.Size).Msg("upload archived")
	return nil
}

func (b *base) decode(ctx context.Context, kind league.Kind, u Upload) (*document.ParsedDocument, error) {
	format := document.Detect(u.ContentType, u.Filename, u.Data)
	doc, err := b.registry.Extract(ctx, format, u.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s upload: %w", kind, err)
	}
	return doc, nil
}

func (b *base) notify(ctx context.Context, eventType string, kind league.Kind, key string, summary map[string]any) {
	event := publisher.NewEvent(eventType, kind, key, summary)
	if err := b.notifier.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", eventType).Str("kind", string(kind)).Msg("failed to publish event")
	}
}

// Services bundles one service per document kind.
type Services struct {
	Team string

	Classification *ClassificationService
	Schedule       *ScheduleService
	Matchdays      *MatchdayService
	Results        *ResultsService
	Calendar       *CalendarService
	TopScorers     *TopScorersService
}

// New wires every service over the same dependencies.
func New(d Deps) *Services {
	return &Services{
		Team:           newBase(d).team,
		Classification: NewClassificationService(d),
		Schedule:       NewScheduleService(d),
		Matchdays:      NewMatchdayService(d),
		Results:        NewResultsService(d),
		Calendar:       NewCalendarService(d),
		TopScorers:     NewTopScorersService(d),
	}
}

// Processors returns the services keyed by the kind they handle.
func (s *Services) Processors() map[league.Kind]Processor {
	out := make(map[league.Kind]Processor)
	for _, p := range []Processor{s.Classification, s.Schedule, s.Matchdays, s.Results, s.Calendar, s.TopScorers} {
		out[p.Kind()] = p
	}
	return out
}
