// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These represent the use cases that the application exposes
package inbound

import (
	"context"

	"github.com/forkcast/forkcast/internal/domain/preference"
)

// CoachService defines the food coach use cases consumed by the
// request-handling boundary.
type CoachService interface {
	// Rank parses the free-text message into constraints, ranks the
	// catalog for the user, and renders the coach response. An empty
	// result is a valid, non-error outcome.
	Rank(ctx context.Context, cmd RankCommand) (*RankResult, error)

	// RecordFeedback applies the weight-update rule for a chosen item,
	// a set of rejected items, and a satisfaction rating.
	RecordFeedback(ctx context.Context, cmd FeedbackCommand) error
}

// RankCommand carries a user's free-text request.
type RankCommand struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// FeedbackCommand carries one feedback event.
type FeedbackCommand struct {
	UserID           string   `json:"user_id" validate:"required"`
	ChosenItemID     string   `json:"chosen_item_id" validate:"required"`
	NotChosenItemIDs []string `json:"not_chosen_item_ids"`
	Rating           int      `json:"rating" validate:"min=1,max=10"`
}

// OfferDTO describes the winning platform offer for a ranked item.
type OfferDTO struct {
	Platform       string  `json:"platform"`
	BasePrice      float64 `json:"base_price"`
	DeliveryFee    float64 `json:"delivery_fee"`
	Discount       float64 `json:"discount"`
	EffectivePrice float64 `json:"effective_price"`
}

// RankedItemDTO is one scored result.
type RankedItemDTO struct {
	ItemID     string   `json:"item_id"`
	Name       string   `json:"name"`
	Restaurant string   `json:"restaurant"`
	Tags       []string `json:"tags"`
	ProteinEst int      `json:"protein_est"`
	BestOffer  OfferDTO `json:"best_platform"`
	Score      float64  `json:"score"`
}

// RankResult is the full coach response: the top ranked items, the
// tone label, and the rendered text/audio. CoachText falls back to a
// deterministic template when the conversational collaborator is
// unavailable; AudioURL is empty when speech synthesis is unavailable.
type RankResult struct {
	Items     []RankedItemDTO `json:"top_results"`
	Tone      preference.Tone `json:"tone"`
	CoachText string          `json:"coach_text"`
	AudioURL  string          `json:"coach_audio_url"`
}
