package intel

import (
	"fmt"
	"strings"

	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
)

// Query is a fully constructed AI call: prompt text plus the declarative
// response spec the answer must conform to. Pure data; no network or
// parsing logic lives here.
type Query struct {
	System    string
	Prompt    string
	Grounding bool
	VideoURL  string
	Spec      *gemini.ResponseSpec
}

// Response specs, one per query template. The validator checks decoded
// payloads against these; the client forwards them for schema enforcement
// when grounding is off.
var (
	discoverySpec = &gemini.ResponseSpec{
		Name: "discovery",
		Fields: []gemini.FieldSpec{
			{Name: "company_name", Kind: gemini.KindString, Required: true},
			{Name: "domain", Kind: gemini.KindString, Required: true},
			{Name: "strategic_statements", Kind: gemini.KindArray, Required: true},
			{Name: "company_priorities", Kind: gemini.KindArray},
			{Name: "key_executives", Kind: gemini.KindArray},
			{Name: "ownership_changes", Kind: gemini.KindArray},
			{Name: "company_context", Kind: gemini.KindString},
			{Name: "collection_notes", Kind: gemini.KindString},
		},
	}

	acquirerSpec = &gemini.ResponseSpec{
		Name: "acquirer",
		Fields: []gemini.FieldSpec{
			{Name: "acquirer_name", Kind: gemini.KindString, Required: true},
			{Name: "acquirer_domain", Kind: gemini.KindString},
			{Name: "key_executives", Kind: gemini.KindArray},
			{Name: "acquisition_philosophy", Kind: gemini.KindString},
			{Name: "other_acquisitions", Kind: gemini.KindArray},
			{Name: "post_acquisition_statements", Kind: gemini.KindArray},
			{Name: "recent_developments", Kind: gemini.KindArray},
			{Name: "strategic_priorities", Kind: gemini.KindArray},
			{Name: "outreach_implications", Kind: gemini.KindString},
		},
	}

	revenueSpec = &gemini.ResponseSpec{
		Name: "revenue",
		Fields: []gemini.FieldSpec{
			{Name: "company_name", Kind: gemini.KindString, Required: true},
			{Name: "domain", Kind: gemini.KindString},
			{Name: "revenue_estimates", Kind: gemini.KindArray, Required: true},
			{Name: "employee_count", Kind: gemini.KindObject},
			{Name: "ownership", Kind: gemini.KindObject},
			{Name: "company_context", Kind: gemini.KindString},
			{Name: "research_quality", Kind: gemini.KindObject},
		},
	}

	youtubeSpec = &gemini.ResponseSpec{
		Name: "youtube",
		Fields: []gemini.FieldSpec{
			{Name: "executives_found", Kind: gemini.KindArray, Required: true},
			{Name: "strategic_insights", Kind: gemini.KindArray, Required: true},
			{Name: "business_events", Kind: gemini.KindArray},
			{Name: "pain_points", Kind: gemini.KindArray},
			{Name: "outreach_angles", Kind: gemini.KindArray},
			{Name: "video_summary", Kind: gemini.KindString},
		},
	}

	articleSpec = &gemini.ResponseSpec{
		Name: "article",
		Fields: []gemini.FieldSpec{
			{Name: "headline_summary", Kind: gemini.KindString, Required: true},
			{Name: "key_announcements", Kind: gemini.KindArray},
			{Name: "executive_quotes", Kind: gemini.KindArray},
			{Name: "strategic_implications", Kind: gemini.KindArray},
			{Name: "outreach_relevance", Kind: gemini.KindInteger},
		},
	}
)

// BuildQuery constructs the primary query for a request. Panics on an
// unknown mode: callers construct requests via NewRequest/ParseMode, so a
// bad mode here is a programmer error.
func BuildQuery(req Request) Query {
	switch req.Mode {
	case ModeDiscovery:
		return Query{
			Prompt:    fmt.Sprintf(discoveryPrompt, req.CompanyName, req.Domain, strings.Join(relevantThemes, ", ")),
			Grounding: true,
			Spec:      discoverySpec,
		}
	case ModeRevenue:
		return Query{
			System:    revenueSystemPrompt,
			Prompt:    fmt.Sprintf("Research annual revenue for: %s (domain: %s)", req.CompanyName, req.Domain),
			Grounding: true,
			Spec:      revenueSpec,
		}
	}
	panic(fmt.Sprintf("intel: no primary query template for mode %q", req.Mode))
}

// BuildAcquirerQuery constructs the follow-up query for a detected
// acquisition. Unknown fields default to the original's placeholders.
func BuildAcquirerQuery(change OwnershipChange, acquiredCompany string) Query {
	domain := change.CounterpartyDomain
	if domain == "" {
		domain = "unknown"
	}
	date := change.Date
	if date == "" {
		date = "unknown date"
	}
	return Query{
		Prompt:    fmt.Sprintf(acquirerPrompt, change.CounterpartyName, domain, acquiredCompany, date),
		Grounding: true,
		Spec:      acquirerSpec,
	}
}

// BuildYouTubeQuery constructs a deep-analysis query that attaches the video
// for native content understanding. No grounding: the video is the source.
func BuildYouTubeQuery(url string) Query {
	return Query{
		Prompt:   youtubePrompt,
		VideoURL: url,
		Spec:     youtubeSpec,
	}
}

// BuildArticleQuery constructs a grounded deep-analysis query for an article
// or press-release URL.
func BuildArticleQuery(url, companyName string) Query {
	if companyName == "" {
		companyName = "Unknown"
	}
	return Query{
		Prompt:    fmt.Sprintf(articlePrompt, companyName, url),
		Grounding: true,
		Spec:      articleSpec,
	}
}
