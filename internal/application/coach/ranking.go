package coach

import (
	"sort"

	"github.com/forkcast/forkcast/internal/domain/catalog"
	"github.com/forkcast/forkcast/internal/domain/preference"
)

// ScoredItem is one ranking survivor with its winning offer and score.
type ScoredItem struct {
	Item         catalog.MenuItem
	Offer        Offer
	TagWeightSum float64
	Score        float64
}

// Ranker filters the catalog by parsed constraints and scores the
// survivors with price, protein signal, and the user's tag weights.
type Ranker struct {
	catalog *catalog.Catalog
	pricing *PricingResolver
}

// NewRanker creates a ranking engine over the catalog.
func NewRanker(c *catalog.Catalog, pricing *PricingResolver) *Ranker {
	return &Ranker{catalog: c, pricing: pricing}
}

// Rank returns every surviving catalog item ordered by score
// descending. An item survives when its tag set is a superset of the
// required tags, it is priceable, and its effective price fits the
// budget when one was given.
//
// score = -effective_price + protein_est/10 + sum of user tag weights.
// Price dominates negatively; personalization shifts rank additively
// and is unbounded, so heavily reinforced tags can eventually outweigh
// any price difference. Equal scores keep catalog encounter order.
func (r *Ranker) Rank(constraints Constraints, weights preference.Weights) []ScoredItem {
	var scored []ScoredItem
	for _, item := range r.catalog.Items() {
		if len(constraints.RequiredTags) > 0 && !item.HasAllTags(constraints.RequiredTags) {
			continue
		}

		offer, ok := r.pricing.BestOffer(item.ItemID)
		if !ok {
			continue
		}
		if constraints.Budget != nil && offer.EffectivePrice > *constraints.Budget {
			continue
		}

		tagWeightSum := weights.Sum(item.Tags)
		score := -offer.EffectivePrice + float64(item.ProteinEst)/10.0 + tagWeightSum

		scored = append(scored, ScoredItem{
			Item:         item,
			Offer:        offer,
			TagWeightSum: tagWeightSum,
			Score:        score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
