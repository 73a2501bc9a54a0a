package intel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
)

// Validate checks a decoded payload against its response spec: required
// fields must exist with the declared kinds. Numeric strings are coerced in
// place where unambiguous. Returns a *SchemaError naming every bad field.
//
// No semantic validation happens here; whether a quote is verbatim is the
// model's responsibility, not ours.
func Validate(payload map[string]interface{}, spec *gemini.ResponseSpec) error {
	if payload == nil {
		return &SchemaError{Spec: spec.Name, Fields: []string{"(empty payload)"}}
	}

	var bad []string
	for _, f := range spec.Fields {
		value, ok := payload[f.Name]
		if !ok || value == nil {
			if f.Required {
				bad = append(bad, f.Name)
			}
			continue
		}
		coerced, ok := coerceKind(value, f.Kind)
		if !ok {
			bad = append(bad, f.Name)
			continue
		}
		payload[f.Name] = coerced
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return &SchemaError{Spec: spec.Name, Fields: bad}
	}
	return nil
}

// coerceKind checks value against kind, converting numeric strings where the
// conversion is unambiguous.
func coerceKind(value interface{}, kind gemini.FieldKind) (interface{}, bool) {
	switch kind {
	case gemini.KindString:
		s, ok := value.(string)
		return s, ok
	case gemini.KindNumber, gemini.KindInteger:
		f, ok := asFloat(value)
		if !ok {
			return nil, false
		}
		return f, true
	case gemini.KindArray:
		a, ok := value.([]interface{})
		return a, ok
	case gemini.KindObject:
		o, ok := value.(map[string]interface{})
		return o, ok
	}
	return nil, false
}

// asFloat accepts JSON numbers and unambiguous numeric strings.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// asInt truncates asFloat. Relevance and credibility scores arrive as
// whole numbers but json decodes them as float64.
func asInt(value interface{}) (int, bool) {
	f, ok := asFloat(value)
	return int(f), ok
}

// decodeInto round-trips a payload fragment through JSON into a typed struct.
func decodeInto(fragment interface{}, out interface{}) error {
	raw, err := json.Marshal(fragment)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DecodeDiscovery validates and decodes a discovery payload into a bundle
// (metadata left to the orchestrator).
func DecodeDiscovery(payload map[string]interface{}) (*DiscoveryBundle, error) {
	if err := Validate(payload, discoverySpec); err != nil {
		return nil, err
	}
	normalizeStatements(payload)
	normalizeOwnershipChanges(payload)

	var bundle DiscoveryBundle
	if err := decodeInto(payload, &bundle); err != nil {
		return nil, &SchemaError{Spec: discoverySpec.Name, Fields: []string{fmt.Sprintf("(decode: %v)", err)}}
	}
	return &bundle, nil
}

// DecodeAcquirer validates and decodes an acquirer follow-up payload.
func DecodeAcquirer(payload map[string]interface{}) (*AcquirerIntel, error) {
	if err := Validate(payload, acquirerSpec); err != nil {
		return nil, err
	}
	var out AcquirerIntel
	if err := decodeInto(payload, &out); err != nil {
		return nil, &SchemaError{Spec: acquirerSpec.Name, Fields: []string{fmt.Sprintf("(decode: %v)", err)}}
	}
	return &out, nil
}

// DecodeRevenue validates and decodes a revenue payload, enforcing the
// tier/credibility consistency invariant on every estimate.
func DecodeRevenue(payload map[string]interface{}) (*RevenueBundle, error) {
	if err := Validate(payload, revenueSpec); err != nil {
		return nil, err
	}
	normalizeEstimates(payload)

	var bundle RevenueBundle
	if err := decodeInto(payload, &bundle); err != nil {
		return nil, &SchemaError{Spec: revenueSpec.Name, Fields: []string{fmt.Sprintf("(decode: %v)", err)}}
	}
	if bundle.ResearchQuality.SourcesFound == 0 {
		bundle.ResearchQuality.SourcesFound = len(bundle.RevenueEstimates)
	}
	return &bundle, nil
}

// DecodeYouTube validates and decodes a YouTube deep-analysis payload.
func DecodeYouTube(payload map[string]interface{}, url string) (*SourceIntel, error) {
	if err := Validate(payload, youtubeSpec); err != nil {
		return nil, err
	}
	var out SourceIntel
	if err := decodeInto(payload, &out); err != nil {
		return nil, &SchemaError{Spec: youtubeSpec.Name, Fields: []string{fmt.Sprintf("(decode: %v)", err)}}
	}
	if summary, ok := payload["video_summary"].(string); ok {
		out.Summary = summary
	}
	out.SourceURL = url
	out.SourceType = "youtube"
	return &out, nil
}

// DecodeArticle validates and decodes an article deep-analysis payload.
func DecodeArticle(payload map[string]interface{}, url string) (*SourceIntel, error) {
	if err := Validate(payload, articleSpec); err != nil {
		return nil, err
	}
	var out SourceIntel
	if err := decodeInto(payload, &out); err != nil {
		return nil, &SchemaError{Spec: articleSpec.Name, Fields: []string{fmt.Sprintf("(decode: %v)", err)}}
	}
	if summary, ok := payload["headline_summary"].(string); ok {
		out.Summary = summary
	}
	out.SourceURL = url
	out.SourceType = "article"
	return &out, nil
}

// normalizeStatements coerces per-statement relevance scores so decoding
// into int fields cannot fail on numeric strings.
func normalizeStatements(payload map[string]interface{}) {
	statements, _ := payload["strategic_statements"].([]interface{})
	for _, raw := range statements {
		stmt, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if score, ok := asInt(stmt["outreach_relevance"]); ok {
			stmt["outreach_relevance"] = score
		} else {
			stmt["outreach_relevance"] = 0
		}
	}
}

// normalizeOwnershipChanges drops events outside the retained enum
// (acquisition, merger, pe_investment). The prompt lets the model report
// vc_funding/ipo/spin_off too, but those never participate in the pipeline.
func normalizeOwnershipChanges(payload map[string]interface{}) {
	changes, ok := payload["ownership_changes"].([]interface{})
	if !ok {
		return
	}
	kept := make([]interface{}, 0, len(changes))
	for _, raw := range changes {
		change, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch OwnershipEvent(fmt.Sprint(change["event_type"])) {
		case EventAcquisition, EventMerger, EventPEInvestment:
			kept = append(kept, change)
		}
	}
	payload["ownership_changes"] = kept
}

// normalizeEstimates coerces numeric fields and enforces the tier/credibility
// invariant: a missing or out-of-range tier is re-derived from the source
// name, and the credibility score is clamped into the tier's band.
func normalizeEstimates(payload map[string]interface{}) {
	estimates, _ := payload["revenue_estimates"].([]interface{})
	for _, raw := range estimates {
		est, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if amount, ok := asFloat(est["amount_millions"]); ok {
			est["amount_millions"] = amount
		} else {
			est["amount_millions"] = 0.0
		}
		if year, ok := asInt(est["year"]); ok {
			est["year"] = year
		}

		sourceName, _ := est["source_name"].(string)
		tier, ok := asInt(est["source_tier"])
		if !ok || tier < 1 || tier > 4 {
			tier = TierFor(sourceName)
		}
		est["source_tier"] = tier

		score, ok := asInt(est["credibility_score"])
		if !ok || score <= 0 {
			score = CredibilityFor(tier)
		}
		est["credibility_score"] = ClampCredibility(tier, score)
	}
}
