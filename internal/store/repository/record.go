// Package repository provides typed access to the records kept in a
// store.RecordStore.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

func save[T any](ctx context.Context, s store.RecordStore, kind league.Kind, key string, v *T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kind, err)
	}
	return s.Put(ctx, kind, key, payload)
}

func load[T any](ctx context.Context, s store.RecordStore, kind league.Kind, key string) (*T, error) {
	payload, err := s.Get(ctx, kind, key)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(payload, v); err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", kind, key, err)
	}
	return v, nil
}

// ClassificationRepository stores the current standings.
type ClassificationRepository struct {
	store store.RecordStore
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(s store.RecordStore) *ClassificationRepository {
	return &ClassificationRepository{store: s}
}

// Save replaces the stored table.
func (r *ClassificationRepository) Save(ctx context.Context, t *league.ClassificationTable) error {
	return save(ctx, r.store, league.KindClassification, store.CurrentKey, t)
}

// Get returns the stored table or store.ErrNotFound.
func (r *ClassificationRepository) Get(ctx context.Context) (*league.ClassificationTable, error) {
	return load[league.ClassificationTable](ctx, r.store, league.KindClassification, store.CurrentKey)
}

// CalendarRepository stores the tracked team's calendar.
type CalendarRepository struct {
	store store.RecordStore
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(s store.RecordStore) *CalendarRepository {
	return &CalendarRepository{store: s}
}

func (r *CalendarRepository) Save(ctx context.Context, c *league.TeamCalendar) error {
	return save(ctx, r.store, league.KindCalendar, store.CurrentKey, c)
}

func (r *CalendarRepository) Get(ctx context.Context) (*league.TeamCalendar, error) {
	return load[league.TeamCalendar](ctx, r.store, league.KindCalendar, store.CurrentKey)
}

// TopScorersRepository stores the latest scorer ranking.
type TopScorersRepository struct {
	store store.RecordStore
}

// NewTopScorersRepository creates a new top scorers repository
func NewTopScorersRepository(s store.RecordStore) *TopScorersRepository {
	return &TopScorersRepository{store: s}
}

func (r *TopScorersRepository) Save(ctx context.Context, t *league.TopScorersTable) error {
	return save(ctx, r.store, league.KindTopScorers, store.CurrentKey, t)
}

func (r *TopScorersRepository) Get(ctx context.Context) (*league.TopScorersTable, error) {
	return load[league.TopScorersTable](ctx, r.store, league.KindTopScorers, store.CurrentKey)
}

// ScheduleRepository stores the last generic schedule document as parsed
// pages.
type ScheduleRepository struct {
	store store.RecordStore
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(s store.RecordStore) *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

func (r *ScheduleRepository) Save(ctx context.Context, doc *document.ParsedDocument) error {
	return save(ctx, r.store, league.KindSchedule, store.CurrentKey, doc)
}

func (r *ScheduleRepository) Get(ctx context.Context) (*document.ParsedDocument, error) {
	return load[document.ParsedDocument](ctx, r.store, league.KindSchedule, store.CurrentKey)
}
