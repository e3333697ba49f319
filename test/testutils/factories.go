// Package testutils provides test data factories for consistent test
// data generation
package testutils

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/forkcast/forkcast/internal/domain/catalog"
)

// CatalogFactory provides methods to create test catalog data
type CatalogFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewCatalogFactory creates a new catalog factory with seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{
		faker: gofakeit.New(seed),
	}
}

// Restaurant creates a restaurant with a unique ID
func (f *CatalogFactory) Restaurant() catalog.Restaurant {
	f.seq++
	return catalog.Restaurant{
		ID:           fmt.Sprintf("r%d", f.seq),
		Name:         f.faker.Company(),
		Neighborhood: f.faker.City(),
	}
}

// MenuItem creates a menu item for the given restaurant
func (f *CatalogFactory) MenuItem(restaurantID string, tags ...string) catalog.MenuItem {
	f.seq++
	if tags == nil {
		tags = []string{}
	}
	return catalog.MenuItem{
		ItemID:       fmt.Sprintf("m%d", f.seq),
		RestaurantID: restaurantID,
		Name:         f.faker.Dinner(),
		Tags:         tags,
		CaloriesEst:  f.faker.IntRange(150, 1200),
		ProteinEst:   f.faker.IntRange(5, 55),
	}
}

// Listing creates a platform listing for an item
func (f *CatalogFactory) Listing(itemID, platform string, basePrice, deliveryFee float64) catalog.PlatformListing {
	return catalog.PlatformListing{
		ItemID:       itemID,
		PlatformName: platform,
		BasePrice:    round2(basePrice),
		DeliveryFee:  round2(deliveryFee),
	}
}

// RandomListing creates a listing with faked prices
func (f *CatalogFactory) RandomListing(itemID, platform string) catalog.PlatformListing {
	return f.Listing(itemID, platform,
		f.faker.Float64Range(9.0, 18.0),
		f.faker.Float64Range(0.99, 5.99),
	)
}

// Coupon creates a coupon for a platform
func (f *CatalogFactory) Coupon(platform string, discountValue, minSpend float64) catalog.Coupon {
	f.seq++
	return catalog.Coupon{
		Code:          fmt.Sprintf("%s%d", f.faker.Word(), f.seq),
		PlatformName:  platform,
		DiscountValue: discountValue,
		MinSpend:      minSpend,
	}
}

// BuildCatalog assembles a catalog aggregate and fails loudly on
// inconsistent fixtures
func BuildCatalog(
	restaurants []catalog.Restaurant,
	items []catalog.MenuItem,
	listings []catalog.PlatformListing,
	coupons []catalog.Coupon,
	ratings []catalog.SocialRating,
) (*catalog.Catalog, error) {
	return catalog.New(restaurants, items, listings, coupons, ratings)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
