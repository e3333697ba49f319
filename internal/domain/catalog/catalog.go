package catalog

import "fmt"

// Catalog is the read-only aggregate over all reference data.
// Slices preserve encounter order, which downstream ranking and
// pricing rely on for stable tie-breaking.
type Catalog struct {
	restaurants []Restaurant
	items       []MenuItem
	listings    []PlatformListing
	coupons     []Coupon
	ratings     []SocialRating

	restaurantsByID  map[string]Restaurant
	itemsByID        map[string]MenuItem
	listingsByItem   map[string][]PlatformListing
	couponsByPlatform map[string][]Coupon
	ratingsByItem    map[string]SocialRating
}

// New builds a catalog and validates referential integrity: every menu
// item must resolve to a restaurant and every listing to a menu item.
func New(
	restaurants []Restaurant,
	items []MenuItem,
	listings []PlatformListing,
	coupons []Coupon,
	ratings []SocialRating,
) (*Catalog, error) {
	c := &Catalog{
		restaurants:       restaurants,
		items:             items,
		listings:          listings,
		coupons:           coupons,
		ratings:           ratings,
		restaurantsByID:   make(map[string]Restaurant, len(restaurants)),
		itemsByID:         make(map[string]MenuItem, len(items)),
		listingsByItem:    make(map[string][]PlatformListing, len(items)),
		couponsByPlatform: make(map[string][]Coupon),
		ratingsByItem:     make(map[string]SocialRating, len(ratings)),
	}

	for _, r := range restaurants {
		c.restaurantsByID[r.ID] = r
	}
	for _, item := range items {
		if _, ok := c.restaurantsByID[item.RestaurantID]; !ok {
			return nil, fmt.Errorf("menu item %s references unknown restaurant %s", item.ItemID, item.RestaurantID)
		}
		c.itemsByID[item.ItemID] = item
	}
	for _, l := range listings {
		if _, ok := c.itemsByID[l.ItemID]; !ok {
			return nil, fmt.Errorf("listing on %s references unknown menu item %s", l.PlatformName, l.ItemID)
		}
		c.listingsByItem[l.ItemID] = append(c.listingsByItem[l.ItemID], l)
	}
	for _, cp := range coupons {
		c.couponsByPlatform[cp.PlatformName] = append(c.couponsByPlatform[cp.PlatformName], cp)
	}
	for _, sr := range ratings {
		c.ratingsByItem[sr.ItemID] = sr
	}

	return c, nil
}

// Items returns all menu items in catalog encounter order.
func (c *Catalog) Items() []MenuItem {
	return c.items
}

// Restaurants returns all restaurants in catalog encounter order.
func (c *Catalog) Restaurants() []Restaurant {
	return c.restaurants
}

// ItemByID looks up a menu item by identifier.
func (c *Catalog) ItemByID(itemID string) (MenuItem, bool) {
	item, ok := c.itemsByID[itemID]
	return item, ok
}

// RestaurantByID looks up a restaurant by identifier.
func (c *Catalog) RestaurantByID(id string) (Restaurant, bool) {
	r, ok := c.restaurantsByID[id]
	return r, ok
}

// ListingsForItem returns the platform listings for an item in
// encounter order. An empty result marks the item as unpriceable.
func (c *Catalog) ListingsForItem(itemID string) []PlatformListing {
	return c.listingsByItem[itemID]
}

// CouponsForPlatform returns all coupons redeemable on a platform.
func (c *Catalog) CouponsForPlatform(platform string) []Coupon {
	return c.couponsByPlatform[platform]
}

// RatingForItem returns the social rating for an item, if any.
func (c *Catalog) RatingForItem(itemID string) (SocialRating, bool) {
	sr, ok := c.ratingsByItem[itemID]
	return sr, ok
}

// TagsForItem returns the tag list of an item, or nil for unknown ids.
// Unknown ids degrade to an empty tag set rather than an error so that
// feedback referencing stale items becomes a no-op.
func (c *Catalog) TagsForItem(itemID string) []string {
	if item, ok := c.itemsByID[itemID]; ok {
		return item.Tags
	}
	return nil
}
