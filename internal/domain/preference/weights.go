// Package preference contains the per-user personalization model: tag
// weights accumulated from feedback, the feedback update rule, and the
// coach tone derived from the reserved coach_style scalar.
package preference

// CoachStyleTag is the reserved tag storing the coach tone scalar.
// It is not a catalog tag and never participates in item scoring.
const CoachStyleTag = "coach_style"

// Feedback update rule constants.
const (
	// ChosenReward is added to each tag of the chosen item.
	ChosenReward = 1.0
	// RejectedPenalty is subtracted from each rejected-item tag not
	// shared with the chosen item.
	RejectedPenalty = 0.5
	// ToneDelta is applied to the coach_style scalar on strong ratings.
	ToneDelta = 1.0
	// HighRating and LowRating bound the neutral dead zone (5-7).
	HighRating = 8
	LowRating  = 4
)

// Weights maps tag to the user's accumulated weight. Missing tags
// default to 0.0. Weights are unbounded: sufficiently reinforced
// preference can outweigh any price difference, which is intentional.
type Weights map[string]float64

// Get returns the weight for a tag, defaulting to 0.0.
func (w Weights) Get(tag string) float64 {
	return w[tag]
}

// Sum returns the summed weight over the given tags.
func (w Weights) Sum(tags []string) float64 {
	var total float64
	for _, tag := range tags {
		total += w[tag]
	}
	return total
}

// CoachStyle returns the coach tone scalar.
func (w Weights) CoachStyle() float64 {
	return w[CoachStyleTag]
}

// Delta is a single weight adjustment produced by the feedback rule.
type Delta struct {
	Tag   string
	Value float64
}

// FeedbackDeltas computes the weight adjustments for one feedback call:
// every chosen-item tag gains ChosenReward; every tag appearing on a
// rejected item but not on the chosen item loses RejectedPenalty, once
// per call regardless of how many rejected items carry it; the
// coach_style scalar moves by ToneDelta when the rating leaves the
// neutral dead zone. Each tag appears at most once in the result, so
// applying deltas as atomic increments yields exactly the per-call
// semantics.
func FeedbackDeltas(chosenTags []string, rejectedTags [][]string, rating int) []Delta {
	var deltas []Delta

	chosen := make(map[string]bool, len(chosenTags))
	for _, tag := range chosenTags {
		if chosen[tag] {
			continue
		}
		chosen[tag] = true
		deltas = append(deltas, Delta{Tag: tag, Value: ChosenReward})
	}

	penalized := make(map[string]bool)
	for _, tags := range rejectedTags {
		for _, tag := range tags {
			// Tags shared with the chosen item are protected from penalty.
			if chosen[tag] || penalized[tag] {
				continue
			}
			penalized[tag] = true
			deltas = append(deltas, Delta{Tag: tag, Value: -RejectedPenalty})
		}
	}

	switch {
	case rating >= HighRating:
		deltas = append(deltas, Delta{Tag: CoachStyleTag, Value: ToneDelta})
	case rating <= LowRating:
		deltas = append(deltas, Delta{Tag: CoachStyleTag, Value: -ToneDelta})
	}

	return deltas
}
