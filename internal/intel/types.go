// Package intel holds the company-intelligence domain model and the research
// pipeline built on it: query construction, response validation, source
// credibility scoring, and the orchestrator that sequences the AI calls.
package intel

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which research pipeline a run executes.
type Mode string

const (
	ModeDiscovery    Mode = "discovery"
	ModeRevenue      Mode = "revenue"
	ModeDeepAnalysis Mode = "deep_analysis"
)

// Request identifies the company under research. Immutable once constructed.
type Request struct {
	Domain      string `json:"domain"`
	CompanyName string `json:"company_name"`
	Mode        Mode   `json:"mode"`
}

// NewRequest normalizes domain input (scheme, www prefix, trailing slash) and
// infers a company name from the first domain label when none is given.
func NewRequest(domain, companyName string, mode Mode) Request {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimRight(d, "/")
	if companyName == "" {
		if label, _, found := strings.Cut(d, "."); found && label != "" {
			companyName = titleCase(label)
		} else {
			companyName = titleCase(d)
		}
	}
	return Request{Domain: d, CompanyName: companyName, Mode: mode}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StrategicStatement is one public statement relevant to B2B outreach.
type StrategicStatement struct {
	Quote          string   `json:"statement"`
	Speaker        string   `json:"speaker,omitempty"`
	SpeakerTitle   string   `json:"speaker_title,omitempty"`
	SourceName     string   `json:"source_name"`
	SourceType     string   `json:"source_type,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	Date           string   `json:"date,omitempty"`
	Themes         []string `json:"strategic_themes,omitempty"`
	RelevanceScore int      `json:"outreach_relevance"`
	OutreachAngle  string   `json:"outreach_angle,omitempty"`
}

// Executive is a named company leader with any notable quotes found.
type Executive struct {
	Name          string   `json:"name"`
	Title         string   `json:"title,omitempty"`
	NotableQuotes []string `json:"notable_quotes,omitempty"`
}

// OwnershipEvent classifies an ownership change.
type OwnershipEvent string

const (
	EventAcquisition  OwnershipEvent = "acquisition"
	EventMerger       OwnershipEvent = "merger"
	EventPEInvestment OwnershipEvent = "pe_investment"
)

// OwnershipChange records one transaction in the company's ownership history.
type OwnershipChange struct {
	Date               string         `json:"date,omitempty"`
	Type               OwnershipEvent `json:"event_type"`
	CounterpartyName   string         `json:"counterparty_name"`
	CounterpartyDomain string         `json:"counterparty_domain,omitempty"`
	Amount             string         `json:"amount,omitempty"`
	Details            string         `json:"details,omitempty"`
}

// TriggersFollowup reports whether this change warrants acquirer research:
// a completed acquisition with a known counterparty.
func (c OwnershipChange) TriggersFollowup() bool {
	return c.Type == EventAcquisition && strings.TrimSpace(c.CounterpartyName) != ""
}

// Acquisition names one deal an acquirer has closed.
type Acquisition struct {
	Name string `json:"company"`
	Date string `json:"date,omitempty"`
}

// AcquirerIntel is the result of the conditional follow-up call. Present only
// when discovery detected an acquisition and the follow-up succeeded.
type AcquirerIntel struct {
	AcquirerName         string        `json:"acquirer_name"`
	AcquirerDomain       string        `json:"acquirer_domain,omitempty"`
	Philosophy           string        `json:"acquisition_philosophy,omitempty"`
	OtherAcquisitions    []Acquisition `json:"other_acquisitions,omitempty"`
	Executives           []Executive   `json:"key_executives,omitempty"`
	PostAcquisition      []string      `json:"post_acquisition_statements,omitempty"`
	RecentDevelopments   []string      `json:"recent_developments,omitempty"`
	StrategicPriorities  []string      `json:"strategic_priorities,omitempty"`
	OutreachImplications string        `json:"outreach_implications,omitempty"`
}

// RevenueEstimate is one revenue figure attributed to a named source.
// Invariant: SourceTier and CredibilityScore are consistent per the fixed
// tier bands; the validator clamps inconsistent pairs.
type RevenueEstimate struct {
	AmountMillions   float64 `json:"amount_millions"`
	AmountDisplay    string  `json:"amount_display,omitempty"`
	SourceName       string  `json:"source_name"`
	SourceURL        string  `json:"source_url,omitempty"`
	SourceTier       int     `json:"source_tier"`
	CredibilityScore int     `json:"credibility_score"`
	Year             int     `json:"year,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// EmployeeCount is a headcount figure with attribution.
type EmployeeCount struct {
	Count  int    `json:"count"`
	Source string `json:"source,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// Ownership describes how the company is held.
type Ownership struct {
	Type              string `json:"type"`
	ParentCompanyName string `json:"parent_company_name,omitempty"`
	ParentTicker      string `json:"parent_ticker,omitempty"`
}

// ResearchQuality summarizes how trustworthy the revenue research is.
type ResearchQuality struct {
	SourcesFound     int      `json:"sources_found"`
	HighestTierFound int      `json:"highest_tier_found,omitempty"`
	RedFlags         []string `json:"red_flags,omitempty"`
}

// Red flags the revenue prompt asks the model to report.
const (
	FlagAllAggregators    = "all_aggregators"
	FlagHighVariance      = "high_variance"
	FlagStaleData         = "stale_data"
	FlagParentRevenueOnly = "parent_revenue_only"
	FlagSingleSource      = "single_source"
)

// Confidence is the derived reliability level of a revenue assessment.
type Confidence string

const (
	ConfidenceHigh         Confidence = "HIGH"
	ConfidenceModerateHigh Confidence = "MODERATE_HIGH"
	ConfidenceModerate     Confidence = "MODERATE"
	ConfidenceLow          Confidence = "LOW"
	ConfidenceInsufficient Confidence = "INSUFFICIENT"
)

// Metadata records run provenance. Attached to every bundle.
type Metadata struct {
	CollectionID     string    `json:"collection_id"`
	CollectedAt      time.Time `json:"collected_at"`
	Domain           string    `json:"domain"`
	CompanyName      string    `json:"company_name"`
	Model            string    `json:"model,omitempty"`
	ElapsedSeconds   float64   `json:"collection_time_seconds"`
	GroundingSources []string  `json:"grounding_sources,omitempty"`
}

// DiscoveryBundle is the assembled result of a discovery run.
type DiscoveryBundle struct {
	CompanyName         string               `json:"company_name"`
	Domain              string               `json:"domain"`
	CompanyContext      string               `json:"company_context,omitempty"`
	StrategicStatements []StrategicStatement `json:"strategic_statements"`
	CompanyPriorities   []string             `json:"company_priorities,omitempty"`
	KeyExecutives       []Executive          `json:"key_executives,omitempty"`
	OwnershipChanges    []OwnershipChange    `json:"ownership_changes,omitempty"`
	AcquirerIntel       *AcquirerIntel       `json:"acquirer_intel,omitempty"`
	CollectionNotes     string               `json:"collection_notes,omitempty"`
	Metadata            Metadata             `json:"_metadata"`
}

// RevenueBundle is the assembled result of a revenue run.
type RevenueBundle struct {
	CompanyName      string            `json:"company_name"`
	Domain           string            `json:"domain"`
	CompanyContext   string            `json:"company_context,omitempty"`
	RevenueEstimates []RevenueEstimate `json:"revenue_estimates"`
	EmployeeCount    *EmployeeCount    `json:"employee_count,omitempty"`
	Ownership        *Ownership        `json:"ownership,omitempty"`
	ResearchQuality  ResearchQuality   `json:"research_quality"`
	Confidence       Confidence        `json:"confidence"`
	Metadata         Metadata          `json:"_metadata"`
}

// BestEstimate returns the highest-credibility estimate, or nil.
func (b *RevenueBundle) BestEstimate() *RevenueEstimate {
	var best *RevenueEstimate
	for i := range b.RevenueEstimates {
		if best == nil || b.RevenueEstimates[i].CredibilityScore > best.CredibilityScore {
			best = &b.RevenueEstimates[i]
		}
	}
	return best
}

// StrategicInsight is one finding from deep content analysis.
type StrategicInsight struct {
	Topic      string `json:"topic"`
	Detail     string `json:"detail"`
	Confidence string `json:"confidence,omitempty"`
}

// OutreachAngle pairs a conversation angle with its supporting evidence.
type OutreachAngle struct {
	Angle    string `json:"angle"`
	Evidence string `json:"evidence,omitempty"`
}

// AttributedQuote is an executive quote with attribution.
type AttributedQuote struct {
	Speaker string `json:"speaker"`
	Title   string `json:"title,omitempty"`
	Quote   string `json:"quote"`
}

// SourceIntel is the deep-analysis result for a single source URL.
type SourceIntel struct {
	SourceURL         string             `json:"source_url"`
	SourceType        string             `json:"source_type"`
	SourceName        string             `json:"source_name,omitempty"`
	OriginalRelevance int                `json:"original_relevance,omitempty"`
	Summary           string             `json:"summary,omitempty"`
	Executives        []Executive        `json:"executives_found,omitempty"`
	Insights          []StrategicInsight `json:"strategic_insights,omitempty"`
	BusinessEvents    []string           `json:"business_events,omitempty"`
	PainPoints        []string           `json:"pain_points,omitempty"`
	OutreachAngles    []OutreachAngle    `json:"outreach_angles,omitempty"`
	Quotes            []AttributedQuote  `json:"executive_quotes,omitempty"`
	Announcements     []string           `json:"key_announcements,omitempty"`
}

// DeepAnalysisBundle merges the per-source results of a deep-analysis run.
type DeepAnalysisBundle struct {
	CompanyName    string             `json:"company_name"`
	Domain         string             `json:"domain"`
	YouTubeIntel   []SourceIntel      `json:"youtube_intel"`
	ArticleIntel   []SourceIntel      `json:"article_intel"`
	Executives     []Executive        `json:"executives_found"`
	Insights       []StrategicInsight `json:"strategic_insights"`
	OutreachAngles []OutreachAngle    `json:"outreach_angles"`
	KeyQuotes      []AttributedQuote  `json:"key_quotes"`
	PainPoints     []string           `json:"pain_points"`
	Metadata       Metadata           `json:"_metadata"`
}

// String implements fmt.Stringer for Mode validation errors.
func (m Mode) String() string { return string(m) }

// ParseMode converts CLI input to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDiscovery, ModeRevenue, ModeDeepAnalysis:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
