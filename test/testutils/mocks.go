package testutils

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/outbound"
)

// MemoryPreferenceRepository is an in-memory preference store for
// service tests.
type MemoryPreferenceRepository struct {
	mu       sync.Mutex
	weights  map[string]map[string]float64
	profiles map[string]bool

	// FailIncrements makes IncrementWeight fail after N successful
	// calls, for partial-failure tests. Zero disables failures.
	FailIncrements int
	increments     int
}

// NewMemoryPreferenceRepository creates an empty preference store
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{
		weights:  make(map[string]map[string]float64),
		profiles: make(map[string]bool),
	}
}

var _ outbound.PreferenceRepository = (*MemoryPreferenceRepository)(nil)

// GetWeights returns a copy of the user's weights
func (r *MemoryPreferenceRepository) GetWeights(ctx context.Context, userID string) (preference.Weights, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	weights := make(preference.Weights, len(r.weights[userID]))
	for tag, w := range r.weights[userID] {
		weights[tag] = w
	}
	return weights, nil
}

// IncrementWeight applies the delta, honoring FailIncrements
func (r *MemoryPreferenceRepository) IncrementWeight(ctx context.Context, userID, tag string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailIncrements > 0 && r.increments >= r.FailIncrements {
		return errors.New("simulated increment failure")
	}
	r.increments++

	if r.weights[userID] == nil {
		r.weights[userID] = make(map[string]float64)
	}
	r.weights[userID][tag] += delta
	return nil
}

// EnsureProfile records the user as registered
func (r *MemoryPreferenceRepository) EnsureProfile(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[userID] = true
	return nil
}

// HasProfile reports whether EnsureProfile was called for the user
func (r *MemoryPreferenceRepository) HasProfile(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.profiles[userID]
}

// Weight returns one stored weight, zero when absent
func (r *MemoryPreferenceRepository) Weight(userID, tag string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.weights[userID][tag]
}

// MemoryEventRepository collects appended events for assertions
type MemoryEventRepository struct {
	mu     sync.Mutex
	Events []outbound.Event
}

// NewMemoryEventRepository creates an empty event store
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

var _ outbound.EventRepository = (*MemoryEventRepository)(nil)

// Append stores the event
func (r *MemoryEventRepository) Append(ctx context.Context, event outbound.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Events = append(r.Events, event)
	return nil
}

// ListByUser returns the user's events, newest first
func (r *MemoryEventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]outbound.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []outbound.Event
	for i := len(r.Events) - 1; i >= 0 && len(events) < limit; i-- {
		if r.Events[i].UserID == userID {
			events = append(events, r.Events[i])
		}
	}
	return events, nil
}

// ActionsForUser returns the recorded action names in append order
func (r *MemoryEventRepository) ActionsForUser(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var actions []string
	for _, e := range r.Events {
		if e.UserID == userID {
			actions = append(actions, e.Action)
		}
	}
	return actions
}

// MemoryCache is a TTL-less in-memory cache for tests
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryCache creates an empty cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

var _ outbound.CacheRepository = (*MemoryCache)(nil)

// Get returns the stored value or an error when absent
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

// Set stores the value, ignoring TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value
	return nil
}

// Delete removes the key
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

// Increment bumps a decimal counter
func (c *MemoryCache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var value int64
	if raw, ok := c.data[key]; ok {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, err
		}
		value = parsed
	}
	value++
	c.data[key] = []byte(strconv.FormatInt(value, 10))
	return value, nil
}

// StubChatService returns a fixed text or error
type StubChatService struct {
	Text string
	Err  error

	mu    sync.Mutex
	Calls int
}

var _ outbound.ChatService = (*StubChatService)(nil)

// RenderText returns the configured text and error
func (s *StubChatService) RenderText(ctx context.Context, tone preference.Tone, userMessage string, offers []outbound.RankedOffer) (string, error) {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()

	return s.Text, s.Err
}

// StubSpeechService returns a fixed audio URL or error
type StubSpeechService struct {
	URL string
	Err error
}

var _ outbound.SpeechService = (*StubSpeechService)(nil)

// RenderAudio returns the configured URL and error
func (s *StubSpeechService) RenderAudio(ctx context.Context, text string, tone preference.Tone) (string, error) {
	return s.URL, s.Err
}
