package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

func TestSortStatements(t *testing.T) {
	statements := []intel.StrategicStatement{
		{Quote: "a", RelevanceScore: 70},
		{Quote: "b", RelevanceScore: 90},
		{Quote: "c", RelevanceScore: 70},
		{Quote: "d", RelevanceScore: 85},
	}
	sorted := SortStatements(statements)

	scores := make([]int, len(sorted))
	for i, s := range sorted {
		scores[i] = s.RelevanceScore
	}
	assert.Equal(t, []int{90, 85, 70, 70}, scores)

	// Stable: equal scores keep insertion order.
	assert.Equal(t, "a", sorted[2].Quote)
	assert.Equal(t, "c", sorted[3].Quote)

	// Input untouched.
	assert.Equal(t, "a", statements[0].Quote)
	assert.Equal(t, 70, statements[0].RelevanceScore)
}

func TestRenderDiscovery(t *testing.T) {
	bundle := &intel.DiscoveryBundle{
		CompanyName:    "Acme Corp",
		Domain:         "acme.com",
		CompanyContext: "Acme makes widgets.",
		StrategicStatements: []intel.StrategicStatement{
			{Quote: "We are expanding", SourceName: "News Daily", SourceType: "news", RelevanceScore: 80,
				Speaker: "Jane Smith", SpeakerTitle: "CEO", OutreachAngle: "expansion pain"},
			{Quote: "Top statement", SourceName: "Trade Pub", SourceType: "interview", RelevanceScore: 95},
		},
		CompanyPriorities: []string{"growth", "automation"},
		KeyExecutives: []intel.Executive{
			{Name: "Jane Smith", Title: "CEO", NotableQuotes: []string{"quality first"}},
		},
		OwnershipChanges: []intel.OwnershipChange{
			{Type: intel.EventAcquisition, CounterpartyName: "BigCo", Date: "2024-01", Details: "all-cash deal"},
		},
		AcquirerIntel: &intel.AcquirerIntel{
			AcquirerName: "BigCo",
			Philosophy:   "buy and hold",
			OtherAcquisitions: []intel.Acquisition{
				{Name: "WidgetCo", Date: "2023-05"},
			},
		},
	}
	out := RenderDiscovery(bundle)

	assert.Contains(t, out, "COMPANY INTELLIGENCE REPORT: Acme Corp")
	assert.Contains(t, out, "Acme makes widgets.")
	assert.Contains(t, out, "KEY EXECUTIVES (1)")
	assert.Contains(t, out, "STRATEGIC PRIORITIES (2)")
	assert.Contains(t, out, "ACQUIRER INTELLIGENCE: BigCo")
	assert.Contains(t, out, "WidgetCo")

	// Higher relevance renders first.
	assert.Less(t, indexOf(out, "Top statement"), indexOf(out, "We are expanding"))
}

func TestRenderRevenue(t *testing.T) {
	bundle := &intel.RevenueBundle{
		CompanyName: "Acme Corp",
		Domain:      "acme.com",
		RevenueEstimates: []intel.RevenueEstimate{
			{AmountMillions: 50, AmountDisplay: "$50.0M", SourceName: "ZoomInfo", SourceTier: 4, CredibilityScore: 40},
			{AmountMillions: 120, AmountDisplay: "$120.0M", SourceName: "SEC 10-K", SourceTier: 1, CredibilityScore: 95, Year: 2024},
		},
		Ownership:       &intel.Ownership{Type: "subsidiary_public", ParentCompanyName: "MegaCorp", ParentTicker: "MEGA"},
		EmployeeCount:   &intel.EmployeeCount{Count: 250, Source: "RocketReach", Year: 2025},
		ResearchQuality: intel.ResearchQuality{SourcesFound: 2, HighestTierFound: 1},
		Confidence:      intel.ConfidenceModerate,
	}
	out := RenderRevenue(bundle)

	assert.Contains(t, out, "REVENUE ESTIMATE REPORT: Acme Corp")
	assert.Contains(t, out, "Type: Subsidiary Public")
	assert.Contains(t, out, "MegaCorp")
	assert.Contains(t, out, "250 employees")
	assert.Contains(t, out, "Confidence: MODERATE")
	assert.Contains(t, out, "Use $120.0M from SEC 10-K")

	// Estimates render credibility-descending.
	assert.Less(t, indexOf(out, "SEC 10-K"), indexOf(out, "ZoomInfo"))
}

func TestRenderRevenueEmpty(t *testing.T) {
	bundle := &intel.RevenueBundle{
		CompanyName: "Ghost LLC",
		Domain:      "ghost.example",
		Confidence:  intel.ConfidenceInsufficient,
	}
	out := RenderRevenue(bundle)
	assert.Contains(t, out, "No reliable revenue data found")
	assert.Contains(t, out, "No reliable data available")
}

func TestRenderDeepAnalysis(t *testing.T) {
	bundle := &intel.DeepAnalysisBundle{
		CompanyName:  "Acme Corp",
		Domain:       "acme.com",
		YouTubeIntel: []intel.SourceIntel{{SourceURL: "https://youtube.com/watch?v=a"}},
		ArticleIntel: []intel.SourceIntel{{SourceURL: "https://example.com/news"}},
		Executives:   []intel.Executive{{Name: "Jane Smith", Title: "CEO"}},
		Insights: []intel.StrategicInsight{
			{Topic: "expansion", Detail: "three new DCs", Confidence: "high"},
		},
		PainPoints: []string{"driver retention"},
		OutreachAngles: []intel.OutreachAngle{
			{Angle: "tech modernization", Evidence: "legacy systems quote"},
		},
		KeyQuotes: []intel.AttributedQuote{
			{Speaker: "Jane Smith", Title: "CEO", Quote: "we are scaling"},
		},
	}
	out := RenderDeepAnalysis(bundle)

	assert.Contains(t, out, "DEEP ANALYSIS REPORT: Acme Corp")
	assert.Contains(t, out, "EXPANSION")
	assert.Contains(t, out, "driver retention")
	assert.Contains(t, out, "YouTube videos: 1")
	assert.Contains(t, out, "Articles/News: 1")
	assert.Contains(t, out, "Jane Smith, CEO")
}

func TestRenderDeepAnalysisEmptySections(t *testing.T) {
	out := RenderDeepAnalysis(&intel.DeepAnalysisBundle{CompanyName: "Acme", Domain: "acme.com"})
	assert.Contains(t, out, "No executives identified")
	assert.Contains(t, out, "No strategic insights extracted")
	assert.Contains(t, out, "None identified")
}

func TestRenderDispatch(t *testing.T) {
	_, err := Render(&intel.DiscoveryBundle{})
	require.NoError(t, err)
	_, err = Render("not a bundle")
	require.Error(t, err)
}

func indexOf(haystack, needle string) int {
	return strings.Index(haystack, needle)
}
