package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneFor(t *testing.T) {
	tests := []struct {
		name       string
		coachStyle float64
		want       Tone
	}{
		{"WellAboveThreshold", 3.0, ToneHype},
		{"JustAboveThreshold", 1.01, ToneHype},
		{"AtUpperThreshold", 1.0, ToneNeutral},
		{"Zero", 0.0, ToneNeutral},
		{"AtLowerThreshold", -1.0, ToneNeutral},
		{"JustBelowThreshold", -1.01, ToneGentle},
		{"WellBelowThreshold", -4.0, ToneGentle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToneFor(tt.coachStyle))
		})
	}
}

func TestTone_Description(t *testing.T) {
	assert.Contains(t, ToneHype.Description(), "energetic")
	assert.Contains(t, ToneGentle.Description(), "gentle")
	assert.Contains(t, ToneNeutral.Description(), "friendly")

	// Unknown tones read as neutral
	assert.Equal(t, ToneNeutral.Description(), Tone("bogus").Description())
}
