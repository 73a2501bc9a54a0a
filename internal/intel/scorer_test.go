package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		source string
		tier   int
	}{
		{"SEC.gov 10-K Filing", 1},
		{"Annual Report 2024", 1},
		{"Crunchbase", 2},
		{"CFO Interview with Bloomberg", 2},
		{"TechCrunch", 3},
		{"", 3},
		{"Some Regional Business Journal", 3},
		{"Growjo", 4},
		{"ZoomInfo Company Profile", 4},
		{"RocketReach", 4},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.tier, TierFor(tt.source))
		})
	}
}

func TestCredibilityFor(t *testing.T) {
	assert.Equal(t, 95, CredibilityFor(1))
	assert.Equal(t, 80, CredibilityFor(2))
	assert.Equal(t, 60, CredibilityFor(3))
	assert.Equal(t, 40, CredibilityFor(4))
	// Unknown tier falls back to tier 3
	assert.Equal(t, 60, CredibilityFor(9))
}

func TestClampCredibility(t *testing.T) {
	assert.Equal(t, 90, ClampCredibility(1, 50), "below band clamps up")
	assert.Equal(t, 100, ClampCredibility(1, 100))
	assert.Equal(t, 49, ClampCredibility(4, 85), "above band clamps down")
	assert.Equal(t, 75, ClampCredibility(2, 75), "in band passes through")
}

func est(amount float64, cred int) RevenueEstimate {
	return RevenueEstimate{AmountMillions: amount, CredibilityScore: cred}
}

func TestDeriveConfidence(t *testing.T) {
	tests := []struct {
		name      string
		estimates []RevenueEstimate
		quality   ResearchQuality
		want      Confidence
	}{
		{
			name: "no estimates",
			want: ConfidenceInsufficient,
		},
		{
			name:      "single low-credibility estimate",
			estimates: []RevenueEstimate{est(10, 45)},
			want:      ConfidenceLow,
		},
		{
			name:      "two credible agreeing sources",
			estimates: []RevenueEstimate{est(100, 95), est(88, 92)},
			want:      ConfidenceHigh,
		},
		{
			name:      "credible sources, wide disagreement",
			estimates: []RevenueEstimate{est(100, 95), est(50, 92)},
			want:      ConfidenceModerate,
		},
		{
			name:      "moderate credibility within loose spread",
			estimates: []RevenueEstimate{est(100, 75), est(70, 60)},
			want:      ConfidenceModerateHigh,
		},
		{
			name:      "aggregator-only sources",
			estimates: []RevenueEstimate{est(100, 40), est(95, 40)},
			want:      ConfidenceLow,
		},
		{
			name:      "single high-credibility source",
			estimates: []RevenueEstimate{est(500, 95)},
			want:      ConfidenceLow,
		},
		{
			name:      "spread exactly at high boundary",
			estimates: []RevenueEstimate{est(100, 90), est(80, 85)},
			want:      ConfidenceHigh,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveConfidence(tt.estimates, tt.quality))
		})
	}
}

func TestDeriveConfidenceRedFlags(t *testing.T) {
	agreeing := []RevenueEstimate{est(100, 95), est(92, 90)}

	t.Run("high variance caps at moderate", func(t *testing.T) {
		q := ResearchQuality{RedFlags: []string{FlagHighVariance}}
		assert.Equal(t, ConfidenceModerate, DeriveConfidence(agreeing, q))
	})

	t.Run("stale data drops one level", func(t *testing.T) {
		q := ResearchQuality{RedFlags: []string{FlagStaleData}}
		assert.Equal(t, ConfidenceModerateHigh, DeriveConfidence(agreeing, q))
	})

	t.Run("unrelated flags leave confidence alone", func(t *testing.T) {
		q := ResearchQuality{RedFlags: []string{FlagParentRevenueOnly}}
		assert.Equal(t, ConfidenceHigh, DeriveConfidence(agreeing, q))
	})

	t.Run("flags never raise confidence", func(t *testing.T) {
		low := []RevenueEstimate{est(10, 45)}
		q := ResearchQuality{RedFlags: []string{FlagStaleData}}
		assert.Equal(t, ConfidenceLow, DeriveConfidence(low, q))
	})
}

// Adding a source never lowers the result below what the smaller set gave,
// holding spread constant.
func TestDeriveConfidenceMonotonicInCount(t *testing.T) {
	one := []RevenueEstimate{est(100, 95)}
	two := append(one, est(100, 60))

	first := DeriveConfidence(one, ResearchQuality{})
	second := DeriveConfidence(two, ResearchQuality{})

	rank := map[Confidence]int{
		ConfidenceInsufficient: 0,
		ConfidenceLow:          1,
		ConfidenceModerate:     2,
		ConfidenceModerateHigh: 3,
		ConfidenceHigh:         4,
	}
	assert.GreaterOrEqual(t, rank[second], rank[first])
}

func TestAmountSpread(t *testing.T) {
	assert.Equal(t, 0.0, amountSpread(nil))
	assert.Equal(t, 0.0, amountSpread([]RevenueEstimate{est(100, 50)}))
	assert.InDelta(t, 0.5, amountSpread([]RevenueEstimate{est(100, 50), est(50, 50)}), 1e-9)
	// Zero amounts are excluded from the spread
	assert.Equal(t, 0.0, amountSpread([]RevenueEstimate{est(100, 50), est(0, 50)}))
}
