// Package coach provides the application layer for the food coach:
// constraint parsing, cross-platform pricing, preference-weighted
// ranking, and the feedback update rule.
package coach

import (
	"regexp"
	"strconv"
	"strings"
)

// Constraints is the structured filter extracted from a request
// message: required item tags and an optional budget ceiling.
type Constraints struct {
	RequiredTags []string
	Budget       *float64
}

// HasBudget reports whether a price ceiling was extracted.
func (c Constraints) HasBudget() bool {
	return c.Budget != nil
}

// Budget extraction patterns. The under/</$ form is tried first; the
// "N bucks" form is only a fallback. Amounts may carry exactly two
// decimal digits.
var (
	budgetPattern = regexp.MustCompile(`(?:under|<|\$)\s*(\d+(?:\.\d{2})?)`)
	bucksPattern  = regexp.MustCompile(`(\d+(?:\.\d{2})?)\s*(?:bucks|dollars)`)
)

// ParseConstraints extracts tags and a budget from free text using
// case-insensitive keyword and pattern matching. This is a narrow
// heuristic layer, not NLU: unrecognized text yields an empty
// constraint set rather than an error, and conflicting phrases are not
// reconciled.
func ParseConstraints(message string) Constraints {
	msg := strings.ToLower(message)

	var c Constraints
	if strings.Contains(msg, "veg") || strings.Contains(msg, "vegan") {
		c.RequiredTags = append(c.RequiredTags, "veg")
	}
	if strings.Contains(msg, "protein") {
		c.RequiredTags = append(c.RequiredTags, "high_protein")
	}
	if strings.Contains(msg, "no egg") || strings.Contains(msg, "eggless") {
		c.RequiredTags = append(c.RequiredTags, "no_egg")
	}

	if m := budgetPattern.FindStringSubmatch(msg); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			c.Budget = &v
		}
	} else if m := bucksPattern.FindStringSubmatch(msg); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			c.Budget = &v
		}
	}

	return c
}
