package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

var (
	discoveryDomain  string
	discoveryCompany string
	discoveryOutput  string
	discoveryFormat  string
	discoveryNoAcq   bool
)

var discoveryCmd = &cobra.Command{
	Use:   "discovery",
	Short: "Collect strategic intelligence on a company",
	Long: `Runs the discovery pipeline: one grounded Gemini query collecting
strategic statements, executives, company priorities, and ownership changes.

When an acquisition with a named acquirer is detected, a second query
researches the acquirer. That follow-up is best-effort: if it fails, the
report simply omits acquirer intelligence.

Example:
  intel discovery --domain acme.com --company-name "Acme Corp" --output acme`,
	RunE: runDiscovery,
}

func init() {
	discoveryCmd.Flags().StringVar(&discoveryDomain, "domain", "", "company domain to research (required)")
	discoveryCmd.Flags().StringVar(&discoveryCompany, "company-name", "", "company name (derived from domain if omitted)")
	discoveryCmd.Flags().StringVarP(&discoveryOutput, "output", "o", "", "output file base path (stdout JSON if omitted)")
	discoveryCmd.Flags().StringVar(&discoveryFormat, "format", "both", "output format: json, txt, or both")
	discoveryCmd.Flags().BoolVar(&discoveryNoAcq, "no-acquirer", false, "skip the acquirer follow-up query")
	_ = discoveryCmd.MarkFlagRequired("domain")
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	req := intel.NewRequest(discoveryDomain, discoveryCompany, intel.ModeDiscovery)

	orch, err := newOrchestrator()
	if err != nil {
		return err
	}

	includeAcquirer := cfg.Research.IncludeAcquirer && !discoveryNoAcq
	bundle, err := orch.RunDiscovery(context.Background(), req, includeAcquirer)
	if err != nil {
		return err
	}

	return emit(bundle, strings.TrimSuffix(discoveryOutput, ".json"), discoveryFormat)
}
