package intel

import "strings"

// Source credibility tiers. Tier 1 is highest.
//
// Classification is a fixed substring table keyed on source/domain names;
// anything unrecognized lands in tier 3 (industry press).
var tierPatterns = []struct {
	tier     int
	patterns []string
}{
	{1, []string{
		"sec.gov", "sec filing", "10-k", "10-q", "annual report",
		"audited", "investor relations", "earnings release",
	}},
	{2, []string{
		"analyst report", "earnings call", "funding announcement",
		"cfo interview", "ceo interview", "press release", "crunchbase",
		"pitchbook",
	}},
	{4, []string{
		"growjo", "rocketreach", "zoominfo", "owler", "leadiq", "zippia",
		"datanyze", "kona equity",
	}},
}

// Credibility band per tier: [lo, hi] and the midpoint reported for sources
// classified locally rather than by the model.
var tierBands = map[int]struct{ lo, hi, mid int }{
	1: {90, 100, 95},
	2: {70, 89, 80},
	3: {50, 69, 60},
	4: {30, 49, 40},
}

// TierFor classifies a source name into a credibility tier 1-4.
func TierFor(sourceName string) int {
	name := strings.ToLower(sourceName)
	for _, entry := range tierPatterns {
		for _, p := range entry.patterns {
			if strings.Contains(name, p) {
				return entry.tier
			}
		}
	}
	return 3
}

// CredibilityFor returns the fixed midpoint credibility score for a tier.
func CredibilityFor(tier int) int {
	if band, ok := tierBands[tier]; ok {
		return band.mid
	}
	return tierBands[3].mid
}

// ClampCredibility forces score into tier's band, preserving the invariant
// that tier and credibility are consistent.
func ClampCredibility(tier, score int) int {
	band, ok := tierBands[tier]
	if !ok {
		band = tierBands[3]
	}
	if score < band.lo {
		return band.lo
	}
	if score > band.hi {
		return band.hi
	}
	return score
}

// DeriveConfidence computes the confidence level for a set of revenue
// estimates. Rules apply in priority order; the first match wins.
//
// All estimates are treated as a single pool regardless of year: the data is
// too sparse for per-year bucketing to help, and mixing years only widens the
// spread, which can never inflate confidence.
func DeriveConfidence(estimates []RevenueEstimate, quality ResearchQuality) Confidence {
	if len(estimates) == 0 {
		return ConfidenceInsufficient
	}

	best := 0
	for _, e := range estimates {
		if e.CredibilityScore > best {
			best = e.CredibilityScore
		}
	}
	count := len(estimates)
	spread := amountSpread(estimates)

	var level Confidence
	switch {
	case best >= 80 && count >= 2 && spread <= 0.20:
		level = ConfidenceHigh
	case best >= 70 && count >= 2 && spread <= 0.40:
		level = ConfidenceModerateHigh
	case best >= 50 && count >= 2:
		level = ConfidenceModerate
	default:
		level = ConfidenceLow
	}

	return applyRedFlags(level, quality.RedFlags)
}

// amountSpread returns (max-min)/max over positive amounts. Zero when fewer
// than two positive amounts exist: a single figure has no disagreement.
func amountSpread(estimates []RevenueEstimate) float64 {
	var amounts []float64
	for _, e := range estimates {
		if e.AmountMillions > 0 {
			amounts = append(amounts, e.AmountMillions)
		}
	}
	if len(amounts) < 2 {
		return 0
	}
	min, max := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return (max - min) / max
}

// applyRedFlags demotes confidence based on model-reported research quality:
// high_variance caps HIGH/MODERATE_HIGH at MODERATE; stale_data drops one
// level.
func applyRedFlags(level Confidence, flags []string) Confidence {
	has := func(flag string) bool {
		for _, f := range flags {
			if f == flag {
				return true
			}
		}
		return false
	}

	if has(FlagHighVariance) && (level == ConfidenceHigh || level == ConfidenceModerateHigh) {
		level = ConfidenceModerate
	}
	if has(FlagStaleData) {
		switch level {
		case ConfidenceHigh:
			level = ConfidenceModerateHigh
		case ConfidenceModerateHigh:
			level = ConfidenceModerate
		case ConfidenceModerate:
			level = ConfidenceLow
		}
	}
	return level
}
