// Package publisher announces processed documents to the outside world.
package publisher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// Event types.
const (
	TypeProcessed = "document.processed"
	TypeDeleted   = "document.deleted"
	TypeUpdated   = "document.updated"
)

// Event describes a change to a stored record.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Kind      league.Kind    `json:"kind"`
	Key       string         `json:"key"`
	Summary   map[string]any `json:"summary,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType string, kind league.Kind, key string, summary map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Kind:      kind,
		Key:       key,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}
}

// Notifier receives events.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Fanout delivers each event to every notifier. Failures are logged so a
// broken sink never fails the request that produced the event.
type Fanout []Notifier

// Publish implements Notifier.
func (f Fanout) Publish(ctx context.Context, event Event) error {
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event); err != nil {
			log.Warn().Err(err).Str("event", event.Type).Str("kind", string(event.Kind)).Msg("event delivery failed")
		}
	}
	return nil
}

// Discard drops every event.
type Discard struct{}

// Publish implements Notifier.
func (Discard) Publish(context.Context, Event) error { return nil }
