// Package catalog loads the JSON catalog files produced by the seed
// tool into the in-memory catalog aggregate.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domain "github.com/forkcast/forkcast/internal/domain/catalog"
	"go.uber.org/zap"
)

const (
	restaurantsFile   = "restaurants.json"
	menuItemsFile     = "menu_items.json"
	platformsFile     = "platform_prices.json"
	couponsFile       = "coupons.json"
	socialRatingsFile = "social_ratings.json"
)

// Load reads the catalog files from dir and builds the catalog
// aggregate. Restaurants, menu items, and platform listings are
// required; coupons and social ratings are optional and default to
// empty when the file is absent.
func Load(dir string, logger *zap.Logger) (*domain.Catalog, error) {
	var restaurants []domain.Restaurant
	if err := loadFile(dir, restaurantsFile, &restaurants); err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := loadFile(dir, menuItemsFile, &items); err != nil {
		return nil, err
	}

	var listings []domain.PlatformListing
	if err := loadFile(dir, platformsFile, &listings); err != nil {
		return nil, err
	}

	var coupons []domain.Coupon
	if err := loadOptionalFile(dir, couponsFile, &coupons, logger); err != nil {
		return nil, err
	}

	var ratings []domain.SocialRating
	if err := loadOptionalFile(dir, socialRatingsFile, &ratings, logger); err != nil {
		return nil, err
	}

	cat, err := domain.New(restaurants, items, listings, coupons, ratings)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog data in %s: %w", dir, err)
	}

	logger.Info("Catalog loaded",
		zap.String("dir", dir),
		zap.Int("restaurants", len(restaurants)),
		zap.Int("menu_items", len(items)),
		zap.Int("platform_listings", len(listings)),
		zap.Int("coupons", len(coupons)),
	)

	return cat, nil
}

func loadFile(dir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func loadOptionalFile(dir, name string, out interface{}, logger *zap.Logger) error {
	if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
		logger.Warn("Optional catalog file missing", zap.String("file", name))
		return nil
	}
	return loadFile(dir, name, out)
}
