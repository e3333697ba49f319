package preference

// Tone is the discrete coaching voice derived from the coach_style
// scalar, governing how responses are phrased and spoken.
type Tone string

const (
	ToneHype    Tone = "hype"
	ToneGentle  Tone = "gentle"
	ToneNeutral Tone = "neutral"
)

// Coach tone thresholds on the coach_style scalar.
const (
	hypeThreshold   = 1.0
	gentleThreshold = -1.0
)

// ToneFor maps the coach_style scalar to a discrete tone label.
func ToneFor(coachStyle float64) Tone {
	switch {
	case coachStyle > hypeThreshold:
		return ToneHype
	case coachStyle < gentleThreshold:
		return ToneGentle
	default:
		return ToneNeutral
	}
}

// Description returns the prose style hint handed to the
// conversational text collaborator.
func (t Tone) Description() string {
	switch t {
	case ToneHype:
		return "extremely energetic, hyped, and enthusiastic"
	case ToneGentle:
		return "gentle, soft, nurturing, and calm"
	default:
		return "helpful, friendly, and straightforward"
	}
}
