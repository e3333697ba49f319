// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/google/uuid"
)

// PreferenceRepository persists per-user tag weights and profile
// markers. Weight rows are unique per (user, tag), created lazily on
// first write, and mutated only through additive increments.
type PreferenceRepository interface {
	// GetWeights returns all stored weights for a user. Users with no
	// stored rows get an empty map.
	GetWeights(ctx context.Context, userID string) (preference.Weights, error)

	// IncrementWeight atomically applies weight = weight + delta for
	// one (user, tag) pair, inserting the row at delta when absent.
	// Concurrent increments for the same pair must not lose updates.
	IncrementWeight(ctx context.Context, userID, tag string, delta float64) error

	// EnsureProfile creates the user's profile marker on first contact;
	// it is a no-op when the profile already exists.
	EnsureProfile(ctx context.Context, userID string) error
}

// Event is one row of the interaction audit log.
type Event struct {
	ID        uuid.UUID
	UserID    string
	Action    string
	ItemID    string
	Details   string
	CreatedAt time.Time
}

// EventRepository appends interaction events. Append failures are
// logged and never fail the originating call.
type EventRepository interface {
	Append(ctx context.Context, event Event) error

	// ListByUser returns up to limit of the user's most recent events,
	// newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Event, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Increment atomically bumps a counter key, creating it at 1.
	// Used for per-user cache generation counters.
	Increment(ctx context.Context, key string) (int64, error)
}

// RankedOffer is the collaborator-facing view of one ranked result.
type RankedOffer struct {
	Name           string
	Restaurant     string
	EffectivePrice float64
}

// ChatService renders conversational coach text via an external
// pipeline. Failures must degrade to an empty string, not abort the
// request.
type ChatService interface {
	RenderText(ctx context.Context, tone preference.Tone, userMessage string, offers []RankedOffer) (string, error)
}

// SpeechService synthesizes spoken audio for coach text and returns a
// URL to the clip, or an empty string when synthesis is unavailable.
type SpeechService interface {
	RenderAudio(ctx context.Context, text string, tone preference.Tone) (string, error)
}
