package coach

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/forkcast/forkcast/internal/domain/catalog"
	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/forkcast/forkcast/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tunes the coach service.
type Options struct {
	// TopN is the number of ranked items returned to the caller.
	TopN int
	// CacheTTL bounds how long a rank response may be served from
	// cache. Feedback bumps the user's cache generation, so staleness
	// only covers catalog-identical, weight-identical requests.
	CacheTTL time.Duration
}

// CoachService implements the food coach use cases.
type CoachService struct {
	catalog *catalog.Catalog
	pricing *PricingResolver
	ranker  *Ranker
	prefs   outbound.PreferenceRepository
	events  outbound.EventRepository
	cache   outbound.CacheRepository
	chat    outbound.ChatService
	speech  outbound.SpeechService
	opts    Options
	logger  *zap.Logger
}

// NewCoachService creates a new coach service.
func NewCoachService(
	cat *catalog.Catalog,
	prefs outbound.PreferenceRepository,
	events outbound.EventRepository,
	cache outbound.CacheRepository,
	chat outbound.ChatService,
	speech outbound.SpeechService,
	opts Options,
	logger *zap.Logger,
) inbound.CoachService {
	if opts.TopN <= 0 {
		opts.TopN = 3
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	pricing := NewPricingResolver(cat)
	return &CoachService{
		catalog: cat,
		pricing: pricing,
		ranker:  NewRanker(cat, pricing),
		prefs:   prefs,
		events:  events,
		cache:   cache,
		chat:    chat,
		speech:  speech,
		opts:    opts,
		logger:  logger.Named("coach-service"),
	}
}

// Rank parses the message, ranks the catalog for the user, and renders
// the coach response.
func (s *CoachService) Rank(ctx context.Context, cmd inbound.RankCommand) (*inbound.RankResult, error) {
	s.logger.Info("Ranking request",
		zap.String("user_id", cmd.UserID),
		zap.String("message", cmd.Message),
	)

	if err := s.prefs.EnsureProfile(ctx, cmd.UserID); err != nil {
		return nil, errors.NewDatabaseError("ensure user profile", err)
	}
	s.appendEvent(ctx, cmd.UserID, "message", "", cmd.Message)

	cacheKey := s.rankCacheKey(ctx, cmd.UserID, cmd.Message)
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	weights, err := s.prefs.GetWeights(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("load user weights", err)
	}

	constraints := ParseConstraints(cmd.Message)
	scored := s.ranker.Rank(constraints, weights)
	if len(scored) > s.opts.TopN {
		scored = scored[:s.opts.TopN]
	}

	tone := preference.ToneFor(weights.CoachStyle())
	result := &inbound.RankResult{
		Items: make([]inbound.RankedItemDTO, len(scored)),
		Tone:  tone,
	}

	offers := make([]outbound.RankedOffer, len(scored))
	for i, sc := range scored {
		restaurantName := "Unknown"
		if r, ok := s.catalog.RestaurantByID(sc.Item.RestaurantID); ok {
			restaurantName = r.Name
		}

		result.Items[i] = inbound.RankedItemDTO{
			ItemID:     sc.Item.ItemID,
			Name:       sc.Item.Name,
			Restaurant: restaurantName,
			Tags:       sc.Item.Tags,
			ProteinEst: sc.Item.ProteinEst,
			BestOffer: inbound.OfferDTO{
				Platform:       sc.Offer.Platform,
				BasePrice:      sc.Offer.BasePrice,
				DeliveryFee:    sc.Offer.DeliveryFee,
				Discount:       sc.Offer.Discount,
				EffectivePrice: sc.Offer.EffectivePrice,
			},
			Score: sc.Score,
		}
		offers[i] = outbound.RankedOffer{
			Name:           sc.Item.Name,
			Restaurant:     restaurantName,
			EffectivePrice: sc.Offer.EffectivePrice,
		}
	}

	result.CoachText = s.renderText(ctx, tone, cmd.Message, offers)
	result.AudioURL = s.renderAudio(ctx, result.CoachText, tone)

	s.storeResult(ctx, cacheKey, result)

	s.logger.Info("Ranking completed",
		zap.String("user_id", cmd.UserID),
		zap.Int("results", len(result.Items)),
		zap.String("tone", string(tone)),
	)

	return result, nil
}

// RecordFeedback applies the weight-update rule and invalidates the
// user's cached rankings.
func (s *CoachService) RecordFeedback(ctx context.Context, cmd inbound.FeedbackCommand) error {
	s.logger.Info("Recording feedback",
		zap.String("user_id", cmd.UserID),
		zap.String("chosen_item_id", cmd.ChosenItemID),
		zap.Int("rating", cmd.Rating),
	)

	if err := s.prefs.EnsureProfile(ctx, cmd.UserID); err != nil {
		return errors.NewDatabaseError("ensure user profile", err)
	}

	// Unknown item ids resolve to empty tag sets and degrade to a
	// no-op for that id; valid ids in the same call still update.
	chosenTags := s.catalog.TagsForItem(cmd.ChosenItemID)
	rejectedTags := make([][]string, 0, len(cmd.NotChosenItemIDs))
	for _, id := range cmd.NotChosenItemIDs {
		rejectedTags = append(rejectedTags, s.catalog.TagsForItem(id))
	}

	// Increments are applied one tag at a time with no compensating
	// rollback: a mid-call failure leaves earlier tags applied, and a
	// retry re-applies them (at-least-once, small known bias).
	for _, delta := range preference.FeedbackDeltas(chosenTags, rejectedTags, cmd.Rating) {
		if err := s.prefs.IncrementWeight(ctx, cmd.UserID, delta.Tag, delta.Value); err != nil {
			return errors.NewDatabaseError(
				fmt.Sprintf("increment weight %q for user %s", delta.Tag, cmd.UserID), err)
		}
	}

	s.appendEvent(ctx, cmd.UserID, "feedback", cmd.ChosenItemID, fmt.Sprintf("Rating: %d", cmd.Rating))
	s.invalidateRankCache(ctx, cmd.UserID)

	return nil
}

// renderText asks the conversational collaborator for coach text and
// falls back to the deterministic template on any failure.
func (s *CoachService) renderText(ctx context.Context, tone preference.Tone, message string, offers []outbound.RankedOffer) string {
	text, err := s.chat.RenderText(ctx, tone, message, offers)
	if err != nil {
		s.logger.Warn("Chat service unavailable, using fallback text", zap.Error(err))
		text = ""
	}
	if text == "" {
		text = fallbackCoachText(tone, offers)
	}
	return text
}

// renderAudio asks the speech collaborator for an audio clip. Absence
// is non-fatal degradation, never an error.
func (s *CoachService) renderAudio(ctx context.Context, text string, tone preference.Tone) string {
	audioURL, err := s.speech.RenderAudio(ctx, text, tone)
	if err != nil {
		s.logger.Warn("Speech service unavailable, skipping audio", zap.Error(err))
		return ""
	}
	return audioURL
}

// appendEvent writes an audit row; failures are logged, never surfaced.
func (s *CoachService) appendEvent(ctx context.Context, userID, action, itemID, details string) {
	event := outbound.Event{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		ItemID:    itemID,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		s.logger.Warn("Failed to append event",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Cache operations

// rankCacheKey builds a per-user, per-generation key so feedback
// invalidates all of a user's cached rankings at once.
func (s *CoachService) rankCacheKey(ctx context.Context, userID, message string) string {
	generation := int64(0)
	if raw, err := s.cache.Get(ctx, "rank:gen:"+userID); err == nil && len(raw) > 0 {
		fmt.Sscanf(string(raw), "%d", &generation)
	}
	digest := sha256.Sum256([]byte(message))
	return fmt.Sprintf("rank:%s:%d:%x", userID, generation, digest[:8])
}

func (s *CoachService) cachedResult(ctx context.Context, key string) *inbound.RankResult {
	raw, err := s.cache.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var result inbound.RankResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (s *CoachService) storeResult(ctx context.Context, key string, result *inbound.RankResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.opts.CacheTTL); err != nil {
		s.logger.Debug("Failed to cache rank result", zap.Error(err))
	}
}

func (s *CoachService) invalidateRankCache(ctx context.Context, userID string) {
	if _, err := s.cache.Increment(ctx, "rank:gen:"+userID); err != nil {
		s.logger.Debug("Failed to bump rank cache generation", zap.Error(err))
	}
}
