package coach

import (
	"github.com/forkcast/forkcast/internal/domain/catalog"
)

// Offer is one platform listing after applying its best-qualifying
// coupon: effective price = base price - discount + delivery fee.
type Offer struct {
	Platform       string  `json:"platform"`
	BasePrice      float64 `json:"base_price"`
	DeliveryFee    float64 `json:"delivery_fee"`
	Discount       float64 `json:"discount"`
	EffectivePrice float64 `json:"effective_price"`
}

// PricingResolver selects the cheapest effective offer for an item
// across all platform listings.
type PricingResolver struct {
	catalog *catalog.Catalog
}

// NewPricingResolver creates a pricing resolver over the catalog.
func NewPricingResolver(c *catalog.Catalog) *PricingResolver {
	return &PricingResolver{catalog: c}
}

// BestOffer returns the listing with the minimum effective price.
// On each platform only the single coupon maximizing the discount is
// applied; coupons with unmet min_spend contribute nothing. Ties break
// to the first listing in catalog encounter order. ok is false when
// the item has no listings at all, which callers must treat as an
// exclusion, never an error.
func (p *PricingResolver) BestOffer(itemID string) (Offer, bool) {
	listings := p.catalog.ListingsForItem(itemID)
	if len(listings) == 0 {
		return Offer{}, false
	}

	var best Offer
	found := false
	for _, listing := range listings {
		var discount float64
		for _, coupon := range p.catalog.CouponsForPlatform(listing.PlatformName) {
			if d := coupon.Discount(listing.BasePrice); d > discount {
				discount = d
			}
		}

		effective := listing.BasePrice - discount + listing.DeliveryFee
		if !found || effective < best.EffectivePrice {
			found = true
			best = Offer{
				Platform:       listing.PlatformName,
				BasePrice:      listing.BasePrice,
				DeliveryFee:    listing.DeliveryFee,
				Discount:       discount,
				EffectivePrice: effective,
			}
		}
	}

	return best, true
}
