package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateExperience(t *testing.T) {
	bands := DefaultConfig().Experience

	tests := []struct {
		name             string
		years            float64
		min              float64
		max              float64
		wantScore        float64
		wantOver         bool
		wantUnder        bool
	}{
		{name: "within range", years: 5, min: 2, max: 8, wantScore: 100},
		{name: "exactly at minimum", years: 2, min: 2, max: 8, wantScore: 100},
		{name: "exactly at maximum", years: 8, min: 2, max: 8, wantScore: 100},
		{name: "slightly over maximum", years: 10, min: 2, max: 8, wantScore: 85},
		{name: "at overqualification boundary", years: 13, min: 2, max: 8, wantScore: 85},
		{name: "far over maximum", years: 14, min: 2, max: 8, wantScore: 70, wantOver: true},
		{name: "just short of minimum", years: 4, min: 5, max: 10, wantScore: 56},
		{name: "well short of minimum", years: 1, min: 5, max: 10, wantScore: 14, wantUnder: true},
		{name: "no experience against a minimum", years: 0, min: 5, max: 10, wantScore: 0, wantUnder: true},
		{name: "missing maximum falls back to default", years: 16, min: 0, max: 0, wantScore: 85},
		{name: "far over the defaulted maximum", years: 25, min: 0, max: 0, wantScore: 70, wantOver: true},
		{name: "negative years treated as zero", years: -3, min: 0, max: 8, wantScore: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateExperience(tt.years, tt.min, tt.max, bands)
			assert.InDelta(t, tt.wantScore, got.Score, 0.001)
			assert.Equal(t, tt.wantOver, got.IsOverqualified)
			assert.Equal(t, tt.wantUnder, got.IsUnderqualified)
		})
	}
}

func TestEvaluateExperienceUnderqualifiedSlack(t *testing.T) {
	bands := DefaultConfig().Experience

	// Two years short is still within the slack; beyond that flags.
	within := evaluateExperience(3, 5, 10, bands)
	assert.False(t, within.IsUnderqualified)

	beyond := evaluateExperience(2.5, 5, 10, bands)
	assert.True(t, beyond.IsUnderqualified)
}
