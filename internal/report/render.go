// Package report renders assembled research bundles as plain-text reports or
// indented JSON, optionally writing them to disk.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

const rule = "======================================================================"

// SortStatements orders statements by relevance descending. Ties keep their
// original (insertion) order.
func SortStatements(statements []intel.StrategicStatement) []intel.StrategicStatement {
	sorted := make([]intel.StrategicStatement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})
	return sorted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// titleWords capitalizes each space-separated word, for enum values like
// "pe_investment" after underscore replacement.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RenderDiscovery formats a discovery bundle as a readable text report.
func RenderDiscovery(b *intel.DiscoveryBundle) string {
	var sb strings.Builder
	header(&sb, "COMPANY INTELLIGENCE REPORT", b.CompanyName, b.Domain, b.Metadata)

	if b.CompanyContext != "" {
		section(&sb, "COMPANY OVERVIEW", 0)
		sb.WriteString(b.CompanyContext + "\n")
	}

	if len(b.KeyExecutives) > 0 {
		section(&sb, "KEY EXECUTIVES", len(b.KeyExecutives))
		for _, ex := range b.KeyExecutives {
			title := ex.Title
			if title == "" {
				title = "Unknown title"
			}
			fmt.Fprintf(&sb, "  - %s -- %s\n", ex.Name, title)
			for _, q := range ex.NotableQuotes {
				fmt.Fprintf(&sb, "    %q\n", truncate(q, 100))
			}
		}
	}

	if len(b.CompanyPriorities) > 0 {
		section(&sb, "STRATEGIC PRIORITIES", len(b.CompanyPriorities))
		for i, p := range b.CompanyPriorities {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, p)
		}
	}

	if len(b.OwnershipChanges) > 0 {
		section(&sb, "OWNERSHIP CHANGES", len(b.OwnershipChanges))
		for _, ch := range b.OwnershipChanges {
			date := ch.Date
			if date == "" {
				date = "Unknown date"
			}
			event := titleWords(strings.ReplaceAll(string(ch.Type), "_", " "))
			fmt.Fprintf(&sb, "  - [%s] %s: %s\n", date, event, ch.CounterpartyName)
			if ch.Details != "" {
				fmt.Fprintf(&sb, "    %s\n", truncate(ch.Details, 100))
			}
		}
	}

	if acq := b.AcquirerIntel; acq != nil {
		sb.WriteString(fmt.Sprintf("\n## ACQUIRER INTELLIGENCE: %s\n\n", acq.AcquirerName))
		if acq.Philosophy != "" {
			fmt.Fprintf(&sb, "  Philosophy: %s\n", truncate(acq.Philosophy, 150))
		}
		if len(acq.OtherAcquisitions) > 0 {
			fmt.Fprintf(&sb, "\n  Other acquisitions by this company (%d):\n", len(acq.OtherAcquisitions))
			for i, oa := range acq.OtherAcquisitions {
				if i >= 5 {
					break
				}
				date := oa.Date
				if date == "" {
					date = "Unknown"
				}
				fmt.Fprintf(&sb, "    - %s (%s)\n", oa.Name, date)
			}
		}
		if len(acq.Executives) > 0 {
			sb.WriteString("\n  Acquirer executives:\n")
			for i, ex := range acq.Executives {
				if i >= 3 {
					break
				}
				fmt.Fprintf(&sb, "    - %s -- %s\n", ex.Name, ex.Title)
			}
		}
		if acq.OutreachImplications != "" {
			fmt.Fprintf(&sb, "\n  Outreach implications: %s\n", truncate(acq.OutreachImplications, 200))
		}
	}

	if len(b.StrategicStatements) > 0 {
		section(&sb, "STRATEGIC STATEMENTS", len(b.StrategicStatements))
		for i, st := range SortStatements(b.StrategicStatements) {
			if i >= 10 {
				break
			}
			source := st.SourceName
			if source == "" {
				source = "Unknown source"
			}
			fmt.Fprintf(&sb, "  [%d] Relevance: %d/100 | Source: %s (%s)\n",
				i+1, st.RelevanceScore, source, st.SourceType)
			if st.Speaker != "" {
				fmt.Fprintf(&sb, "      Speaker: %s, %s\n", st.Speaker, st.SpeakerTitle)
			}
			fmt.Fprintf(&sb, "      %q\n", truncate(st.Quote, 200))
			if st.OutreachAngle != "" {
				fmt.Fprintf(&sb, "      Outreach angle: %s\n", truncate(st.OutreachAngle, 100))
			}
			sb.WriteString("\n")
		}
	}

	footer(&sb, b.Metadata)
	return sb.String()
}

// RenderRevenue formats a revenue bundle as a readable text report.
func RenderRevenue(b *intel.RevenueBundle) string {
	var sb strings.Builder
	header(&sb, "REVENUE ESTIMATE REPORT", b.CompanyName, b.Domain, b.Metadata)

	if b.CompanyContext != "" {
		section(&sb, "COMPANY OVERVIEW", 0)
		sb.WriteString(b.CompanyContext + "\n")
	}

	if own := b.Ownership; own != nil {
		section(&sb, "OWNERSHIP", 0)
		ownType := own.Type
		if ownType == "" {
			ownType = "unknown"
		}
		fmt.Fprintf(&sb, "  Type: %s\n", titleWords(strings.ReplaceAll(ownType, "_", " ")))
		if own.ParentCompanyName != "" {
			fmt.Fprintf(&sb, "  Parent: %s\n", own.ParentCompanyName)
			if own.ParentTicker != "" {
				fmt.Fprintf(&sb, "  Ticker: %s\n", own.ParentTicker)
			}
		}
	}

	if len(b.RevenueEstimates) > 0 {
		sb.WriteString(fmt.Sprintf("\n## REVENUE ESTIMATES (%d sources)\n\n", len(b.RevenueEstimates)))
		sorted := make([]intel.RevenueEstimate, len(b.RevenueEstimates))
		copy(sorted, b.RevenueEstimates)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CredibilityScore > sorted[j].CredibilityScore
		})
		for i, e := range sorted {
			display := e.AmountDisplay
			if display == "" {
				display = fmt.Sprintf("$%.1fM", e.AmountMillions)
			}
			fmt.Fprintf(&sb, "  [%d] %s -- %s\n", i+1, display, e.SourceName)
			fmt.Fprintf(&sb, "      Credibility: %d/100 (Tier %d)\n", e.CredibilityScore, e.SourceTier)
			if e.Year > 0 {
				fmt.Fprintf(&sb, "      Year: %d\n", e.Year)
			}
			if e.SourceURL != "" {
				fmt.Fprintf(&sb, "      URL: %s\n", truncate(e.SourceURL, 60))
			}
			sb.WriteString("\n")
		}
	} else {
		section(&sb, "REVENUE ESTIMATES", 0)
		sb.WriteString("  No reliable revenue data found\n")
	}

	if emp := b.EmployeeCount; emp != nil && emp.Count > 0 {
		section(&sb, "EMPLOYEE COUNT", 0)
		fmt.Fprintf(&sb, "  %d employees (%s, %d)\n", emp.Count, emp.Source, emp.Year)
	}

	section(&sb, "RESEARCH QUALITY", 0)
	fmt.Fprintf(&sb, "  Sources found: %d\n", b.ResearchQuality.SourcesFound)
	if b.ResearchQuality.HighestTierFound > 0 {
		fmt.Fprintf(&sb, "  Highest tier: %d\n", b.ResearchQuality.HighestTierFound)
	}
	fmt.Fprintf(&sb, "  Confidence: %s\n", b.Confidence)
	if len(b.ResearchQuality.RedFlags) > 0 {
		fmt.Fprintf(&sb, "  Red flags: %s\n", strings.Join(b.ResearchQuality.RedFlags, ", "))
	}

	section(&sb, "RECOMMENDATION", 0)
	if best := b.BestEstimate(); best != nil {
		display := best.AmountDisplay
		if display == "" {
			display = fmt.Sprintf("$%.1fM", best.AmountMillions)
		}
		fmt.Fprintf(&sb, "  Use %s from %s\n", display, best.SourceName)
		fmt.Fprintf(&sb, "  Confidence: %s\n", b.Confidence)
	} else {
		sb.WriteString("  No reliable data available\n")
	}

	footer(&sb, b.Metadata)
	return sb.String()
}

// RenderDeepAnalysis formats a deep-analysis bundle as a readable report.
func RenderDeepAnalysis(b *intel.DeepAnalysisBundle) string {
	var sb strings.Builder
	header(&sb, "DEEP ANALYSIS REPORT", b.CompanyName, b.Domain, b.Metadata)

	if len(b.Executives) > 0 {
		section(&sb, "EXECUTIVES FOUND", len(b.Executives))
		for _, ex := range b.Executives {
			fmt.Fprintf(&sb, "  - %s -- %s\n", ex.Name, ex.Title)
			for i, q := range ex.NotableQuotes {
				if i >= 2 {
					break
				}
				fmt.Fprintf(&sb, "    %q\n", truncate(q, 100))
			}
		}
	} else {
		section(&sb, "EXECUTIVES FOUND", 0)
		sb.WriteString("  No executives identified\n")
	}

	if len(b.Insights) > 0 {
		section(&sb, "STRATEGIC INSIGHTS", len(b.Insights))
		for i, ins := range b.Insights {
			confidence := ins.Confidence
			if confidence == "" {
				confidence = "medium"
			}
			fmt.Fprintf(&sb, "  [%d] %s (%s)\n", i+1, strings.ToUpper(ins.Topic), confidence)
			fmt.Fprintf(&sb, "      %s\n\n", ins.Detail)
		}
	} else {
		section(&sb, "STRATEGIC INSIGHTS", 0)
		sb.WriteString("  No strategic insights extracted\n")
	}

	if len(b.PainPoints) > 0 {
		section(&sb, "PAIN POINTS IDENTIFIED", len(b.PainPoints))
		for _, pp := range b.PainPoints {
			fmt.Fprintf(&sb, "  - %s\n", pp)
		}
	} else {
		section(&sb, "PAIN POINTS IDENTIFIED", 0)
		sb.WriteString("  None identified\n")
	}

	if len(b.OutreachAngles) > 0 {
		section(&sb, "OUTREACH ANGLES", len(b.OutreachAngles))
		for i, angle := range b.OutreachAngles {
			fmt.Fprintf(&sb, "  [%d] %s\n", i+1, angle.Angle)
			if angle.Evidence != "" {
				fmt.Fprintf(&sb, "      Evidence: %s\n", truncate(angle.Evidence, 100))
			}
			sb.WriteString("\n")
		}
	} else {
		section(&sb, "OUTREACH ANGLES", 0)
		sb.WriteString("  No specific outreach angles identified\n")
	}

	if len(b.KeyQuotes) > 0 {
		section(&sb, "KEY EXECUTIVE QUOTES", len(b.KeyQuotes))
		for _, q := range b.KeyQuotes {
			fmt.Fprintf(&sb, "  %q\n", truncate(q.Quote, 150))
			attribution := q.Speaker
			if q.Title != "" {
				attribution += ", " + q.Title
			}
			fmt.Fprintf(&sb, "    -- %s\n\n", attribution)
		}
	}

	section(&sb, "SOURCES PROCESSED", 0)
	fmt.Fprintf(&sb, "  YouTube videos: %d\n", len(b.YouTubeIntel))
	fmt.Fprintf(&sb, "  Articles/News: %d\n", len(b.ArticleIntel))

	footer(&sb, b.Metadata)
	return sb.String()
}

func header(sb *strings.Builder, title, companyName, domain string, meta intel.Metadata) {
	sb.WriteString(rule + "\n")
	fmt.Fprintf(sb, "%s: %s\n", title, companyName)
	fmt.Fprintf(sb, "Domain: %s\n", domain)
	fmt.Fprintf(sb, "Collected: %s\n", meta.CollectedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString(rule + "\n")
}

func section(sb *strings.Builder, name string, count int) {
	if count > 0 {
		fmt.Fprintf(sb, "\n## %s (%d)\n\n", name, count)
	} else {
		fmt.Fprintf(sb, "\n## %s\n\n", name)
	}
}

func footer(sb *strings.Builder, meta intel.Metadata) {
	sb.WriteString("\n" + rule + "\n")
	fmt.Fprintf(sb, "Collection completed in %.1f seconds\n", meta.ElapsedSeconds)
	sb.WriteString(rule + "\n")
}
