// Package catalog contains the immutable reference data for the
// food-delivery marketplace: restaurants, menu items, per-platform
// listings, coupons, and social ratings. The catalog is loaded once at
// process start and shared by all requests; it is never mutated
// post-load, so concurrent readers require no locking.
package catalog

// Restaurant represents a restaurant offering menu items
type Restaurant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
}

// MenuItem represents a single orderable dish.
// Tags are drawn from an open vocabulary (e.g. "veg", "high_protein",
// "no_egg") and are used both for filtering and for personalization.
type MenuItem struct {
	ItemID       string   `json:"item_id"`
	RestaurantID string   `json:"restaurant_id"`
	Name         string   `json:"name"`
	Tags         []string `json:"tags"`
	CaloriesEst  int      `json:"calories_est"`
	ProteinEst   int      `json:"protein_est"`
}

// HasAllTags reports whether the item carries every tag in required.
func (m MenuItem) HasAllTags(required []string) bool {
	for _, want := range required {
		found := false
		for _, tag := range m.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// HasTag reports whether the item carries the given tag.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PlatformListing represents one delivery platform's offer for an item.
// An item typically has one listing per platform; monetary values carry
// two-decimal rounding applied at generation time.
type PlatformListing struct {
	ItemID       string  `json:"item_id"`
	PlatformName string  `json:"platform_name"`
	BasePrice    float64 `json:"base_price"`
	DeliveryFee  float64 `json:"delivery_fee"`
}

// Coupon represents a platform discount code.
// DiscountValue is overloaded: values below 1.0 are a fractional
// discount of the base price, values at or above 1.0 are a flat
// currency amount. A coupon qualifies only when the listing's platform
// matches and base_price >= min_spend.
type Coupon struct {
	Code          string  `json:"code"`
	PlatformName  string  `json:"platform"`
	DiscountValue float64 `json:"discount_value"`
	MinSpend      float64 `json:"min_spend"`
}

// Discount returns the discount amount the coupon yields against the
// given base price, or 0 when the coupon does not qualify.
func (c Coupon) Discount(basePrice float64) float64 {
	if basePrice < c.MinSpend {
		return 0
	}
	if c.DiscountValue < 1.0 {
		return basePrice * c.DiscountValue
	}
	return c.DiscountValue
}

// SocialRating aggregates review signal for an item. It is part of the
// catalog surface but currently feeds no scoring rule.
type SocialRating struct {
	ItemID      string  `json:"item_id"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}
