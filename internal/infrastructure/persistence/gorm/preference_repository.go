package gorm

import (
	"context"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository implements the preference repository interface
// using GORM
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) outbound.PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetWeights loads all weights for a user. A user with no rows gets an
// empty map, never an error.
func (r *PreferenceRepository) GetWeights(ctx context.Context, userID string) (preference.Weights, error) {
	var models []UserWeightModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	weights := make(preference.Weights, len(models))
	for _, m := range models {
		weights[m.Tag] = m.Weight
	}

	return weights, nil
}

// IncrementWeight applies a single delta to one (user, tag) weight as
// an atomic upsert. Concurrent increments serialize in the database,
// so no delta is lost to a read-modify-write race.
func (r *PreferenceRepository) IncrementWeight(ctx context.Context, userID, tag string, delta float64) error {
	model := UserWeightModel{
		UserID: userID,
		Tag:    tag,
		Weight: delta,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "tag"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weight": gorm.Expr("user_weights.weight + ?", delta),
		}),
	}).Create(&model)

	return result.Error
}

// EnsureProfile registers a user on first contact. Existing profiles
// are left untouched.
func (r *PreferenceRepository) EnsureProfile(ctx context.Context, userID string) error {
	model := UserProfileModel{UserID: userID}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&model)

	return result.Error
}
