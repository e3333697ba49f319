package coach

import (
	"fmt"
	"math"
	"strings"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/outbound"
)

// fallbackCoachText renders a deterministic tone-templated response
// when the conversational collaborator is unavailable or returns
// nothing.
func fallbackCoachText(tone preference.Tone, offers []outbound.RankedOffer) string {
	var b strings.Builder

	switch tone {
	case preference.ToneHype:
		b.WriteString("Yo, let's crush it! Here are the ultimate fuel options to hit your macros today! ")
	case preference.ToneGentle:
		b.WriteString("Hmm, I've carefully selected these gentle, nourishing options just for you. Take your time deciding. ")
	default:
		b.WriteString("Hey there! Here are the top 3 options based on your exact preferences. ")
	}

	for i, offer := range offers {
		price := spokenPrice(offer.EffectivePrice)
		switch tone {
		case preference.ToneHype:
			fmt.Fprintf(&b, "Option %d, BOOM! We've got the %s for just %s! ", i+1, offer.Name, price)
		case preference.ToneGentle:
			fmt.Fprintf(&b, "For option %d, perhaps try the beautiful %s, coming in at %s. ", i+1, offer.Name, price)
		default:
			fmt.Fprintf(&b, "Number %d is the %s which will cost %s. ", i+1, offer.Name, price)
		}
	}

	return b.String()
}

// spokenPrice spells out a price so speech engines read it naturally.
func spokenPrice(price float64) string {
	dollars := int(price)
	cents := int(math.Round((price - float64(dollars)) * 100))
	// Fractional coupons can leave sub-cent amounts that round up to a
	// full dollar.
	if cents == 100 {
		dollars++
		cents = 0
	}
	if cents == 0 {
		return fmt.Sprintf("%d dollars", dollars)
	}
	return fmt.Sprintf("%d dollars and %d cents", dollars, cents)
}
