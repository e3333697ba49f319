// Package gorm provides GORM-based repository implementations
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// UserProfileModel marks a user as known to the coach. Profiles carry
// no attributes today; the row exists so weights and events always
// reference a registered user.
type UserProfileModel struct {
	UserID    string    `gorm:"primaryKey;size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// UserWeightModel is one learned preference weight for a (user, tag)
// pair. The composite primary key makes the upsert in
// PreferenceRepository.IncrementWeight well defined.
type UserWeightModel struct {
	UserID    string    `gorm:"primaryKey;size:255"`
	Tag       string    `gorm:"primaryKey;size:255"`
	Weight    float64   `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UserWeightModel) TableName() string {
	return "user_weights"
}

// EventModel is an append-only audit row for user interactions
type EventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"size:255;not null;index"`
	Action    string    `gorm:"size:64;not null"`
	ItemID    string    `gorm:"size:255"`
	Details   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}
