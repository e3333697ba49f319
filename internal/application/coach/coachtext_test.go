package coach

import (
	"testing"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
)

func TestSpokenPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{23.00, "23 dollars"},
		{14.75, "14 dollars and 75 cents"},
		{9.05, "9 dollars and 5 cents"},
		{0.99, "0 dollars and 99 cents"},
		// sub-cent residue from a fractional coupon rounds up to a
		// whole dollar, never "and 100 cents"
		{9.996, "10 dollars"},
		{19.999, "20 dollars"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spokenPrice(tt.price))
	}
}

func TestFallbackCoachText_TonePhrasings(t *testing.T) {
	offers := []outbound.RankedOffer{
		{Name: "Tofu Power Bowl", Restaurant: "Green Bowl Co.", EffectivePrice: 14.75},
		{Name: "Tempeh Wrap", Restaurant: "Vegan Delights", EffectivePrice: 12.00},
	}

	hype := fallbackCoachText(preference.ToneHype, offers)
	assert.Contains(t, hype, "let's crush it")
	assert.Contains(t, hype, "Option 1, BOOM!")
	assert.Contains(t, hype, "14 dollars and 75 cents")

	gentle := fallbackCoachText(preference.ToneGentle, offers)
	assert.Contains(t, gentle, "carefully selected")
	assert.Contains(t, gentle, "beautiful Tofu Power Bowl")

	neutral := fallbackCoachText(preference.ToneNeutral, offers)
	assert.Contains(t, neutral, "Hey there!")
	assert.Contains(t, neutral, "Number 2 is the Tempeh Wrap which will cost 12 dollars.")
}

func TestFallbackCoachText_NoOffers(t *testing.T) {
	text := fallbackCoachText(preference.ToneNeutral, nil)
	assert.Contains(t, text, "Hey there!")
}
