package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

var (
	revenueDomain  string
	revenueCompany string
	revenueOutput  string
	revenueFormat  string
)

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Research company revenue with source credibility scoring",
	Long: `Runs the revenue pipeline: one grounded Gemini query collecting revenue
estimates, each classified into a source credibility tier (SEC filings down
to data aggregators). A confidence level is derived from source agreement.

Example:
  intel revenue --domain acme.com --output acme_revenue`,
	RunE: runRevenue,
}

func init() {
	revenueCmd.Flags().StringVar(&revenueDomain, "domain", "", "company domain to research (required)")
	revenueCmd.Flags().StringVar(&revenueCompany, "company-name", "", "company name (derived from domain if omitted)")
	revenueCmd.Flags().StringVarP(&revenueOutput, "output", "o", "", "output file base path (stdout JSON if omitted)")
	revenueCmd.Flags().StringVar(&revenueFormat, "format", "both", "output format: json, txt, or both")
	_ = revenueCmd.MarkFlagRequired("domain")
}

func runRevenue(cmd *cobra.Command, args []string) error {
	req := intel.NewRequest(revenueDomain, revenueCompany, intel.ModeRevenue)

	orch, err := newOrchestrator()
	if err != nil {
		return err
	}

	bundle, err := orch.RunRevenue(context.Background(), req)
	if err != nil {
		return err
	}
	return emit(bundle, strings.TrimSuffix(revenueOutput, ".json"), revenueFormat)
}
