package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraints_TagKeywords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"Veg", "something veg please", []string{"veg"}},
		{"Vegan", "VEGAN options", []string{"veg"}},
		{"Protein", "need more protein", []string{"high_protein"}},
		{"NoEgg", "no egg today", []string{"no_egg"}},
		{"Eggless", "eggless lunch", []string{"no_egg"}},
		{"Combined", "vegan high protein no egg", []string{"veg", "high_protein", "no_egg"}},
		{"NoKeywords", "surprise me", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseConstraints(tt.message)
			assert.Equal(t, tt.want, c.RequiredTags)
		})
	}
}

func TestParseConstraints_Budget(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    float64
	}{
		{"Under", "lunch under 20", 20.0},
		{"LessThan", "keep it < 15", 15.0},
		{"DollarSign", "something for $12.50", 12.50},
		{"Bucks", "I have 18 bucks", 18.0},
		{"Dollars", "about 25 dollars", 25.0},
		{"WorkedExample", "I want high protein lunch under 20 bucks", 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseConstraints(tt.message)
			require.True(t, c.HasBudget())
			assert.Equal(t, tt.want, *c.Budget)
		})
	}
}

func TestParseConstraints_NoBudget(t *testing.T) {
	c := ParseConstraints("whatever looks good")
	assert.False(t, c.HasBudget())
}

func TestParseConstraints_UnderPatternWinsOverBucks(t *testing.T) {
	// Both phrasings appear; the under/</$ pattern is matched first.
	c := ParseConstraints("under 10 but I could do 30 bucks")
	require.True(t, c.HasBudget())
	assert.Equal(t, 10.0, *c.Budget)
}

func TestParseConstraints_WorkedExample(t *testing.T) {
	c := ParseConstraints("I want high protein lunch under 20 bucks")

	assert.Equal(t, []string{"high_protein"}, c.RequiredTags)
	require.True(t, c.HasBudget())
	assert.Equal(t, 20.0, *c.Budget)
}
