package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

// numbers returns the numeric keys of kind in ascending order. Keys that
// are not round numbers are ignored.
func numbers(ctx context.Context, s store.RecordStore, kind league.Kind) ([]int, error) {
	keys, err := s.Keys(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		if n, err := strconv.Atoi(k); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

func latest(ctx context.Context, s store.RecordStore, kind league.Kind) (int, error) {
	nums, err := numbers(ctx, s, kind)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, fmt.Errorf("latest %s: %w", kind, store.ErrNotFound)
	}
	return nums[len(nums)-1], nil
}

// MatchdayRepository stores one record per round number.
type MatchdayRepository struct {
	store store.RecordStore
}

// NewMatchdayRepository creates a new matchday repository
func NewMatchdayRepository(s store.RecordStore) *MatchdayRepository {
	return &MatchdayRepository{store: s}
}

// Save writes m under its round number, replacing any previous version.
func (r *MatchdayRepository) Save(ctx context.Context, m *league.Matchday) error {
	return save(ctx, r.store, league.KindMatchday, strconv.Itoa(m.Number), m)
}

// Get returns round n.
func (r *MatchdayRepository) Get(ctx context.Context, n int) (*league.Matchday, error) {
	return load[league.Matchday](ctx, r.store, league.KindMatchday, strconv.Itoa(n))
}

// Latest returns the round with the highest number.
func (r *MatchdayRepository) Latest(ctx context.Context) (*league.Matchday, error) {
	n, err := latest(ctx, r.store, league.KindMatchday)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, n)
}

// Numbers lists the stored rounds in ascending order.
func (r *MatchdayRepository) Numbers(ctx context.Context) ([]int, error) {
	return numbers(ctx, r.store, league.KindMatchday)
}

// All returns every stored round in ascending order.
func (r *MatchdayRepository) All(ctx context.Context) ([]*league.Matchday, error) {
	nums, err := r.Numbers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*league.Matchday, 0, len(nums))
	for _, n := range nums {
		m, err := r.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Delete removes round n.
func (r *MatchdayRepository) Delete(ctx context.Context, n int) error {
	return r.store.Delete(ctx, league.KindMatchday, strconv.Itoa(n))
}

// ResultsRepository stores the results bulletin of each round.
type ResultsRepository struct {
	store store.RecordStore
}

// NewResultsRepository creates a new results repository
func NewResultsRepository(s store.RecordStore) *ResultsRepository {
	return &ResultsRepository{store: s}
}

func (r *ResultsRepository) Save(ctx context.Context, res *league.MatchdayResults) error {
	return save(ctx, r.store, league.KindResults, strconv.Itoa(res.Matchday), res)
}

func (r *ResultsRepository) Get(ctx context.Context, n int) (*league.MatchdayResults, error) {
	return load[league.MatchdayResults](ctx, r.store, league.KindResults, strconv.Itoa(n))
}

func (r *ResultsRepository) Latest(ctx context.Context) (*league.MatchdayResults, error) {
	n, err := latest(ctx, r.store, league.KindResults)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, n)
}
