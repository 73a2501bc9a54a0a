package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/michaeljboscia/gemini-company-intel/internal/config"
	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
	"github.com/michaeljboscia/gemini-company-intel/internal/report"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string

	// Shared per-run state built in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "intel",
	Short: "Company intelligence research via Gemini with Google Search grounding",
	Long: `intel researches companies for sales outreach using the Gemini API.

Each subcommand runs one research pipeline:
  discovery      strategic statements, executives, ownership changes
  revenue        revenue estimates with source credibility scoring
  deep-analysis  deep processing of YouTube videos and articles

All pipelines issue grounded Gemini queries and emit structured JSON plus
a readable text report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		if verbose || cfg.Logging.Level == "debug" {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if cfg.Logging.File != "" {
			zapCfg.OutputPaths = []string{cfg.Logging.File}
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// initCmd writes a starter config file for editing.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Writes the default configuration to the --config path so it can be
edited. The API key is still read from GEMINI_API_KEY (or a .env file),
never stored in the config file by default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", configPath)
		return nil
	},
}

// newOrchestrator wires a Gemini client and orchestrator from the loaded
// config. Progress output goes to stdout unless --quiet.
func newOrchestrator() (*intel.Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := gemini.NewClientWithConfig(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Timeout:         cfg.GeminiTimeout(),
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Temperature:     cfg.Gemini.Temperature,
	}, logger)

	var progress io.Writer
	if !quiet {
		progress = os.Stdout
	}
	return intel.NewOrchestrator(client, logger, progress), nil
}

// emit writes the result bundle per the shared --output/--format flags.
func emit(bundle interface{}, output, formatFlag string) error {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	return report.Emit(os.Stdout, bundle, output, format)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "company-intel.yaml", "path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(discoveryCmd)
	rootCmd.AddCommand(revenueCmd)
	rootCmd.AddCommand(deepAnalysisCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
