package gorm

import (
	"context"

	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRepository implements the event repository interface using GORM
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) outbound.EventRepository {
	return &EventRepository{db: db}
}

// Append writes one audit event. Events are never updated or deleted.
func (r *EventRepository) Append(ctx context.Context, event outbound.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	model := EventModel{
		ID:        event.ID,
		UserID:    event.UserID,
		Action:    event.Action,
		ItemID:    event.ItemID,
		Details:   event.Details,
		CreatedAt: event.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(&model).Error
}

// ListByUser returns a user's most recent events, newest first
func (r *EventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]outbound.Event, error) {
	var models []EventModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]outbound.Event, len(models))
	for i, m := range models {
		events[i] = outbound.Event{
			ID:        m.ID,
			UserID:    m.UserID,
			Action:    m.Action,
			ItemID:    m.ItemID,
			Details:   m.Details,
			CreatedAt: m.CreatedAt,
		}
	}

	return events, nil
}
