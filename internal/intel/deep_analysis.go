package intel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
)

// DefaultRelevanceThreshold is the minimum relevance score a discovery
// statement needs before its source is deep-processed.
const DefaultRelevanceThreshold = 80

// maxArticles caps per-run article processing; articles past the first few
// rarely add intelligence worth the call cost.
const maxArticles = 5

// DeepAnalysisInput selects what a deep-analysis run processes: a direct
// YouTube or article URL, or the high-relevance sources of a prior
// discovery result.
//
// Threshold is the minimum relevance score for source selection. Zero admits
// every source; a negative value selects DefaultRelevanceThreshold.
type DeepAnalysisInput struct {
	CompanyName string
	Domain      string
	YouTubeURL  string
	ArticleURL  string
	Discovery   *DiscoveryBundle
	Threshold   int
}

// SourceRef is one discovery source selected for deep processing.
type SourceRef struct {
	URL        string
	Type       string
	Relevance  int
	SourceName string
}

// HighRelevanceSources extracts sources at or above threshold from a
// discovery result, in statement order.
func HighRelevanceSources(d *DiscoveryBundle, threshold int) []SourceRef {
	var sources []SourceRef
	for _, stmt := range d.StrategicStatements {
		if stmt.RelevanceScore >= threshold && stmt.SourceURL != "" {
			sources = append(sources, SourceRef{
				URL:        stmt.SourceURL,
				Type:       stmt.SourceType,
				Relevance:  stmt.RelevanceScore,
				SourceName: stmt.SourceName,
			})
		}
	}
	return sources
}

func isArticleType(sourceType string) bool {
	switch sourceType {
	case "news", "press_release", "interview", "article":
		return true
	}
	return false
}

// RunDeepAnalysis executes the deep-analysis pipeline. Direct targets are
// processed as the primary call (failure is fatal); sources drawn from a
// discovery result are best-effort: a failed source is skipped with a
// warning and the run continues.
func (o *Orchestrator) RunDeepAnalysis(ctx context.Context, in DeepAnalysisInput) (*DeepAnalysisBundle, error) {
	start := time.Now()
	o.state = StateStart

	req := Request{Domain: in.Domain, CompanyName: in.CompanyName, Mode: ModeDeepAnalysis}
	if req.CompanyName == "" {
		req.CompanyName = "Unknown"
	}
	if req.Domain == "" {
		req.Domain = "unknown.com"
	}

	var youtube, articles []SourceIntel
	var groundingSources []string

	switch {
	case in.YouTubeURL != "":
		o.printf("[1/2] Processing YouTube video...")
		o.transition(StatePrimarySent)
		result, err := o.processYouTube(ctx, in.YouTubeURL)
		if err != nil {
			return nil, o.fail(fmt.Errorf("youtube analysis failed: %w", err))
		}
		o.transition(StatePrimaryValidated)
		youtube = append(youtube, *result)
		o.printf("[2/2] Complete: %d executives, %d insights",
			len(result.Executives), len(result.Insights))

	case in.ArticleURL != "":
		o.printf("[1/2] Processing article...")
		o.transition(StatePrimarySent)
		result, sources, err := o.processArticle(ctx, in.ArticleURL, req.CompanyName)
		if err != nil {
			return nil, o.fail(fmt.Errorf("article analysis failed: %w", err))
		}
		o.transition(StatePrimaryValidated)
		articles = append(articles, *result)
		groundingSources = append(groundingSources, sources...)
		o.printf("[2/2] Complete")

	case in.Discovery != nil:
		threshold := in.Threshold
		if threshold < 0 {
			threshold = DefaultRelevanceThreshold
		}
		sources := HighRelevanceSources(in.Discovery, threshold)
		if len(sources) == 0 {
			o.printf("No sources found above %d%% relevance", threshold)
			break
		}

		var ytSources, artSources []SourceRef
		for _, src := range sources {
			if src.Type == "youtube" {
				ytSources = append(ytSources, src)
			} else if isArticleType(src.Type) {
				artSources = append(artSources, src)
			}
		}
		if len(artSources) > maxArticles {
			artSources = artSources[:maxArticles]
		}
		o.printf("[1/3] Found %d sources above %d%% relevance (YouTube: %d, articles: %d)",
			len(sources), threshold, len(ytSources), len(artSources))

		o.transition(StatePrimarySent)
		if len(ytSources) > 0 {
			o.printf("[2/3] Deep processing %d YouTube sources...", len(ytSources))
		} else {
			o.printf("[2/3] No YouTube sources to process")
		}
		for _, src := range ytSources {
			result, err := o.processYouTube(ctx, src.URL)
			if err != nil {
				o.log.Warn("skipping youtube source", zap.String("url", src.URL), zap.Error(err))
				o.printf("    Warning: skipped %s (%v)", src.URL, err)
				continue
			}
			result.OriginalRelevance = src.Relevance
			result.SourceName = src.SourceName
			youtube = append(youtube, *result)
		}

		if len(artSources) > 0 {
			o.printf("[3/3] Deep processing %d articles...", len(artSources))
		} else {
			o.printf("[3/3] No articles to process")
		}
		for _, src := range artSources {
			result, grounding, err := o.processArticle(ctx, src.URL, req.CompanyName)
			if err != nil {
				o.log.Warn("skipping article source", zap.String("url", src.URL), zap.Error(err))
				o.printf("    Warning: skipped %s (%v)", src.URL, err)
				continue
			}
			result.OriginalRelevance = src.Relevance
			articles = append(articles, *result)
			groundingSources = append(groundingSources, grounding...)
		}
		o.transition(StatePrimaryValidated)

	default:
		return nil, o.fail(fmt.Errorf("deep analysis requires a youtube URL, article URL, or discovery input"))
	}

	bundle := mergeDeepIntel(req, youtube, articles)
	bundle.Metadata = o.newMetadata(req, start, groundingSources)
	o.transition(StateAssembled)
	o.transition(StateDone)
	return bundle, nil
}

func (o *Orchestrator) processYouTube(ctx context.Context, url string) (*SourceIntel, error) {
	query := BuildYouTubeQuery(url)
	result, err := o.caller.Generate(ctx, gemini.Request{
		Prompt:          query.Prompt,
		VideoURL:        query.VideoURL,
		Spec:            query.Spec,
		MaxOutputTokens: 4000,
	})
	if err != nil {
		return nil, err
	}
	return DecodeYouTube(result.Payload, url)
}

func (o *Orchestrator) processArticle(ctx context.Context, url, companyName string) (*SourceIntel, []string, error) {
	query := BuildArticleQuery(url, companyName)
	result, err := o.caller.Generate(ctx, gemini.Request{
		Prompt:          query.Prompt,
		Grounding:       query.Grounding,
		Spec:            query.Spec,
		MaxOutputTokens: 2000,
	})
	if err != nil {
		return nil, nil, err
	}
	intel, err := DecodeArticle(result.Payload, url)
	if err != nil {
		return nil, result.GroundingSources, err
	}
	return intel, result.GroundingSources, nil
}

// mergeDeepIntel flattens per-source results into the bundle aggregates,
// deduplicating pain points while preserving first-seen order.
func mergeDeepIntel(req Request, youtube, articles []SourceIntel) *DeepAnalysisBundle {
	bundle := &DeepAnalysisBundle{
		CompanyName:    req.CompanyName,
		Domain:         req.Domain,
		YouTubeIntel:   youtube,
		ArticleIntel:   articles,
		Executives:     []Executive{},
		Insights:       []StrategicInsight{},
		OutreachAngles: []OutreachAngle{},
		KeyQuotes:      []AttributedQuote{},
		PainPoints:     []string{},
	}
	if bundle.YouTubeIntel == nil {
		bundle.YouTubeIntel = []SourceIntel{}
	}
	if bundle.ArticleIntel == nil {
		bundle.ArticleIntel = []SourceIntel{}
	}

	seen := make(map[string]bool)
	for _, yt := range youtube {
		bundle.Executives = append(bundle.Executives, yt.Executives...)
		bundle.Insights = append(bundle.Insights, yt.Insights...)
		bundle.OutreachAngles = append(bundle.OutreachAngles, yt.OutreachAngles...)
		for _, pp := range yt.PainPoints {
			if !seen[pp] {
				seen[pp] = true
				bundle.PainPoints = append(bundle.PainPoints, pp)
			}
		}
	}
	for _, art := range articles {
		bundle.KeyQuotes = append(bundle.KeyQuotes, art.Quotes...)
	}
	return bundle
}
