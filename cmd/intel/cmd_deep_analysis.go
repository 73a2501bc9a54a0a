package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

var (
	deepYouTubeURL string
	deepArticleURL string
	deepInputPath  string
	deepThreshold  int
	deepCompany    string
	deepDomain     string
	deepOutput     string
	deepFormat     string
)

var deepAnalysisCmd = &cobra.Command{
	Use:   "deep-analysis",
	Short: "Deep-process YouTube videos and articles for outreach intelligence",
	Long: `Runs the deep-analysis pipeline against one of three inputs:

  --youtube-url  analyze a single YouTube video directly
  --article-url  analyze a single article directly
  --input        process the high-relevance sources of a saved discovery
                 result (JSON produced by the discovery command)

Direct-URL failures abort the run; per-source failures in --input mode are
skipped with a warning.

Examples:
  intel deep-analysis --youtube-url https://youtube.com/watch?v=xyz --company-name "Acme"
  intel deep-analysis --input acme.json --threshold 80`,
	RunE: runDeepAnalysis,
}

func init() {
	deepAnalysisCmd.Flags().StringVar(&deepYouTubeURL, "youtube-url", "", "YouTube video URL to analyze")
	deepAnalysisCmd.Flags().StringVar(&deepArticleURL, "article-url", "", "article URL to analyze")
	deepAnalysisCmd.Flags().StringVarP(&deepInputPath, "input", "i", "", "discovery result JSON to deep-process")
	deepAnalysisCmd.Flags().IntVar(&deepThreshold, "threshold", intel.DefaultRelevanceThreshold, "minimum relevance score for source selection (0-100)")
	deepAnalysisCmd.Flags().StringVar(&deepCompany, "company-name", "", "company name for context")
	deepAnalysisCmd.Flags().StringVar(&deepDomain, "domain", "", "company domain for context")
	deepAnalysisCmd.Flags().StringVarP(&deepOutput, "output", "o", "", "output file base path (stdout JSON if omitted)")
	deepAnalysisCmd.Flags().StringVar(&deepFormat, "format", "both", "output format: json, txt, or both")
}

// resolveThreshold prefers an explicit --threshold over the configured
// default, so relevance_threshold from the config file takes effect when the
// flag is left unset.
func resolveThreshold(flagSet bool, flagValue, configured int) int {
	if flagSet {
		return flagValue
	}
	return configured
}

func runDeepAnalysis(cmd *cobra.Command, args []string) error {
	in := intel.DeepAnalysisInput{
		CompanyName: deepCompany,
		Domain:      deepDomain,
		YouTubeURL:  deepYouTubeURL,
		ArticleURL:  deepArticleURL,
		Threshold:   resolveThreshold(cmd.Flags().Changed("threshold"), deepThreshold, cfg.Research.RelevanceThreshold),
	}

	if deepInputPath != "" {
		discovery, err := loadDiscoveryResult(deepInputPath)
		if err != nil {
			return err
		}
		in.Discovery = discovery
		if in.CompanyName == "" {
			in.CompanyName = discovery.CompanyName
		}
		if in.Domain == "" {
			in.Domain = discovery.Domain
		}
	}

	if in.YouTubeURL == "" && in.ArticleURL == "" && in.Discovery == nil {
		return fmt.Errorf("one of --youtube-url, --article-url, or --input is required")
	}

	orch, err := newOrchestrator()
	if err != nil {
		return err
	}

	bundle, err := orch.RunDeepAnalysis(context.Background(), in)
	if err != nil {
		return err
	}
	return emit(bundle, strings.TrimSuffix(deepOutput, ".json"), deepFormat)
}

// loadDiscoveryResult reads a saved discovery bundle from disk.
func loadDiscoveryResult(path string) (*intel.DiscoveryBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read discovery input: %w", err)
	}
	var bundle intel.DiscoveryBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse discovery input %s: %w", path, err)
	}
	return &bundle, nil
}
