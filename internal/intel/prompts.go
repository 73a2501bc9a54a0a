package intel

// Strategic themes the discovery prompt asks the model to look for.
var relevantThemes = []string{
	"mobile_commerce",
	"customer_experience",
	"digital_transformation",
	"site_performance",
	"ecommerce_platform",
	"international_expansion",
	"personalization",
	"conversion_optimization",
	"technology_modernization",
	"headless_commerce",
	"omnichannel",
	"sustainability",
	"ai_ml_adoption",
}

const discoveryPrompt = `Search for public statements, interviews, and media appearances about %[1]s (%[2]s).

Find information from these sources (prioritize in this order):
1. YouTube videos - company channel, executive interviews, product demos, webinars
2. Podcast appearances - executives or founders on business/industry podcasts
3. Press releases and company announcements
4. Executive interviews in trade publications or business media
5. Conference talks, keynotes, or panel discussions
6. Partnership and product announcements
7. SEC filings or annual reports (if public company)
8. News articles about strategic moves, funding, or growth

IMPORTANT - Also search for ownership changes:
- Has this company been acquired, merged, or received PE/VC investment?
- If so, who acquired them and when?
- What is the acquirer's domain/website?
- Any statements from either party about the acquisition?

For YouTube and podcast content, note the episode/video title and key quotes.

Return your findings as JSON in this exact format:
` + "```json" + `
{
  "company_name": "%[1]s",
  "domain": "%[2]s",
  "strategic_statements": [
    {
      "statement": "The exact quote or statement",
      "speaker": "Name if known, otherwise null",
      "speaker_title": "Their title if known",
      "source_name": "Publication, podcast name, or YouTube channel",
      "source_type": "youtube|podcast|press_release|interview|news|sec_filing|conference",
      "source_url": "URL if available",
      "date": "YYYY-MM-DD if known",
      "strategic_themes": ["theme1", "theme2"],
      "outreach_relevance": 85,
      "outreach_angle": "Why this matters for B2B outreach"
    }
  ],
  "company_priorities": ["priority1", "priority2", "priority3"],
  "key_executives": [
    {
      "name": "Name",
      "title": "Title",
      "notable_quotes": ["Their best quote if found"]
    }
  ],
  "ownership_changes": [
    {
      "event_type": "acquisition|merger|pe_investment|vc_funding|ipo|spin_off",
      "counterparty_name": "Name of acquirer, investor, or merged company",
      "counterparty_domain": "Their website domain if known",
      "date": "YYYY-MM-DD",
      "amount": "Deal value if disclosed",
      "details": "Brief description of the transaction"
    }
  ],
  "company_context": "2-3 sentence company summary",
  "collection_notes": "Notes about data availability"
}
` + "```" + `

Strategic themes to look for: %[3]s

Return ONLY the JSON object.`

const acquirerPrompt = `Search for strategic intelligence about %[1]s (%[2]s).

Focus on:
1. Their acquisition strategy - what other companies have they acquired?
2. Leadership team and their statements about growth/acquisition philosophy
3. Post-acquisition integration approach - how do they manage acquired companies?
4. Any public statements about their acquisition of %[3]s (%[4]s)
5. News and developments since the acquisition date (%[4]s to present)

Return your findings as JSON:
` + "```json" + `
{
  "acquirer_name": "%[1]s",
  "acquirer_domain": "%[2]s",
  "key_executives": [
    {"name": "Name", "title": "Title", "notable_quotes": ["Quote about strategy"]}
  ],
  "acquisition_philosophy": "Their stated approach to acquisitions",
  "other_acquisitions": [
    {"company": "Name", "date": "YYYY-MM-DD"}
  ],
  "post_acquisition_statements": ["Quote about %[3]s"],
  "recent_developments": ["Brief description with date"],
  "strategic_priorities": ["priority1", "priority2"],
  "outreach_implications": "How this affects outreach to the acquired company"
}
` + "```" + `

Return ONLY the JSON object.`

const revenueSystemPrompt = `You are a financial research analyst specializing in private company revenue estimation.

TASK: Research annual revenue for the company I provide. Use Google Search to find current data.

RESEARCH INSTRUCTIONS:
1. Search for the company's most recent annual revenue figures.
2. Prioritize sources in this order:
   - Tier 1 (90-100 credibility): SEC filings, audited financials, official company reports
   - Tier 2 (70-89): CEO/CFO interviews, analyst reports, verified funding announcements
   - Tier 3 (50-69): Industry publications, trade journals, financial news outlets
   - Tier 4 (30-49): Data aggregators (Growjo, RocketReach, ZoomInfo, Owler, LeadIQ, Zippia)

3. For EACH revenue estimate found, record:
   - Amount in millions (number)
   - Display format (e.g., "$27.9M")
   - Source name
   - Source URL
   - Source tier (1-4)
   - Credibility score (0-100)
   - Year of the data

4. Detect company ownership:
   - public: Publicly traded company
   - private: Privately held company
   - subsidiary_public: Subsidiary of a public company
   - subsidiary_private: Subsidiary of a private company
   - unknown: Cannot determine

5. CRITICAL RULES:
   - For subsidiaries: Report SUBSIDIARY revenue, NOT parent company total
   - Report what you find, even if sources conflict
   - Find employee count if available

6. Red flags to note:
   - all_aggregators: Only Tier 4 sources found
   - high_variance: Sources differ by >3x
   - stale_data: Most recent data is >3 years old
   - parent_revenue_only: Could only find parent company revenue
   - single_source: Only one source found

IMPORTANT: Return ONLY valid JSON (no markdown, no code blocks) matching this structure:
{
  "company_name": "string",
  "domain": "string",
  "revenue_estimates": [
    {
      "amount_millions": 27.9,
      "amount_display": "$27.9M",
      "source_name": "Growjo",
      "source_url": "https://...",
      "source_tier": 4,
      "credibility_score": 45,
      "year": 2025,
      "notes": ""
    }
  ],
  "employee_count": {"count": 175, "source": "RocketReach", "year": 2025},
  "ownership": {
    "type": "private",
    "parent_company_name": "",
    "parent_ticker": ""
  },
  "company_context": "2-3 sentence company summary",
  "research_quality": {
    "sources_found": 3,
    "highest_tier_found": 4,
    "red_flags": []
  }
}

Return ONLY the JSON object, nothing else.`

const youtubePrompt = `Analyze this video for strategic business intelligence.

Extract:
1. **Executive Statements**: Any quotes from CEO, founders, or executives about:
   - Business strategy and priorities
   - Future plans and expansion
   - Technology investments
   - Competitive positioning
   - Company culture and values

2. **Business Intelligence**:
   - Recent acquisitions, mergers, or PE involvement
   - Revenue/growth indicators mentioned
   - Key partnerships announced
   - Market positioning statements
   - Challenges or pain points discussed

3. **Outreach Angles**: What pain points or priorities does this reveal that could be relevant for B2B outreach?

IMPORTANT: Return ONLY valid JSON (no markdown, no code blocks) matching this structure:
{
  "executives_found": [
    {"name": "Name", "title": "Title", "notable_quotes": ["quote1", "quote2"]}
  ],
  "strategic_insights": [
    {"topic": "expansion", "detail": "Planning 10 new stores", "confidence": "high"}
  ],
  "business_events": ["PE acquisition by Z Capital in 2023"],
  "pain_points": ["inventory management", "scaling technology"],
  "outreach_angles": [
    {"angle": "Their tech stack needs modernizing", "evidence": "Quote about legacy systems"}
  ],
  "video_summary": "2-3 sentence executive summary"
}

Return ONLY the JSON object, nothing else.`

const articlePrompt = `Analyze this news article or press release for strategic business intelligence about %[1]s.

Extract:
1. Key announcements or news
2. Executive quotes (with attribution)
3. Strategic implications
4. Any metrics or numbers mentioned
5. Competitive context

IMPORTANT: Return ONLY valid JSON (no markdown, no code blocks) matching this structure:
{
  "headline_summary": "One sentence summary",
  "key_announcements": ["announcement1", "announcement2"],
  "executive_quotes": [
    {"speaker": "Name", "title": "Title", "quote": "The quote"}
  ],
  "strategic_implications": ["implication1", "implication2"],
  "outreach_relevance": 85
}

Return ONLY the JSON object, nothing else.

URL: %[2]s`
