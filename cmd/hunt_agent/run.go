package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martin/listing-hunter/internal/config"
	"github.com/martin/listing-hunter/internal/hunt"
	"github.com/martin/listing-hunter/internal/observability"
	"github.com/martin/listing-hunter/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the property hunt pipeline end-to-end",
	Long: `Searches property listings, filters them against your criteria, scores the
survivors and delivers the top matches: search -> filter -> score -> notify.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runHuntCmd,
}

var (
	runConfigPath   string
	runCriteriaPath string
	runQuery        string
	runMaxBudget    float64
	runMinBedrooms  int
	runLocations    []string
	runAmenities    []string
	runLimit        int
	runToolboxURL   string
	runScrapeURL    string
	runWebhookURL   string
	runDatabaseURL  string
	runFallback     bool
	runUseBrowser   bool
	runVerbose      bool
)

// registerHuntFlags adds the flag set shared by the run, jobs and both
// commands. The commands share the backing variables, so only one of
// them runs per invocation.
func registerHuntFlags(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&runCriteriaPath, "criteria", "c", "", "Path to criteria JSON file")
	cmd.Flags().StringVarP(&runQuery, "query", "q", "", "Free-text search query")
	cmd.Flags().Float64Var(&runMaxBudget, "max-budget", 0, "Maximum monthly rent in CZK")
	cmd.Flags().IntVar(&runMinBedrooms, "min-bedrooms", 0, "Minimum number of bedrooms")
	cmd.Flags().StringSliceVar(&runLocations, "locations", nil, "Preferred locations (comma-separated)")
	cmd.Flags().StringSliceVar(&runAmenities, "amenities", nil, "Must-have amenities (comma-separated)")
	cmd.Flags().IntVarP(&runLimit, "limit", "l", 0, "Number of top listings to deliver")
	cmd.Flags().StringVar(&runToolboxURL, "toolbox-url", "", "MCP Toolbox base URL (optional, defaults to TOOLBOX_URL env var)")
	cmd.Flags().StringVar(&runScrapeURL, "scrape-url", "", "Listings index URL for the scraping backend")
	cmd.Flags().StringVar(&runWebhookURL, "webhook-url", "", "Notification webhook endpoint")
	cmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().BoolVar(&runFallback, "fallback-to-mock", false, "Fall back to mock data when the search backend is down")
	cmd.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA listing sites (requires Chrome)")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
}

func init() {
	registerHuntFlags(runCommand)
	rootCmd.AddCommand(runCommand)
}

func runHuntCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	criteria, err := criteriaFromConfig(cmd, cfg)
	if err != nil {
		return err
	}

	opts, err := huntOptions(cfg, criteria)
	if err != nil {
		return err
	}

	result, err := hunt.Properties(context.Background(), opts)
	if err != nil {
		return err
	}

	printOutcome(cfg, result)
	if !result.Success {
		return fmt.Errorf("hunt failed at stage %q: %s", result.FailedStage, result.Error)
	}
	return nil
}

// mergedConfig loads the optional config file and applies CLI overrides.
func mergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if runVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Command-line args take priority; only override when the flag was
	// explicitly set.
	if cmd.Flags().Changed("criteria") {
		cfg.Criteria = runCriteriaPath
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = runQuery
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = runLimit
	}
	if cmd.Flags().Changed("toolbox-url") {
		cfg.ToolboxURL = runToolboxURL
	}
	if cmd.Flags().Changed("scrape-url") {
		cfg.ScrapeURL = runScrapeURL
	}
	if cmd.Flags().Changed("webhook-url") {
		cfg.WebhookURL = runWebhookURL
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("fallback-to-mock") {
		cfg.FallbackToMock = runFallback
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Environment fallbacks for backend settings
	if cfg.ToolboxURL == "" {
		cfg.ToolboxURL = os.Getenv("TOOLBOX_URL")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TOOLBOX_AUTH_TOKEN")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return cfg, nil
}

// criteriaFromConfig builds the search criteria from the criteria file
// and the criteria-shaped CLI flags.
func criteriaFromConfig(cmd *cobra.Command, cfg config.Config) (types.Criteria, error) {
	var criteria types.Criteria
	if cfg.Criteria != "" {
		loaded, err := loadCriteria(cfg.Criteria)
		if err != nil {
			return criteria, err
		}
		criteria = loaded
	}

	if cfg.Query != "" {
		criteria.Query = cfg.Query
	}
	if cmd.Flags().Changed("max-budget") {
		criteria.MaxBudget = &runMaxBudget
	}
	if cmd.Flags().Changed("min-bedrooms") {
		criteria.MinBedrooms = &runMinBedrooms
	}
	if cmd.Flags().Changed("locations") {
		criteria.PreferredLocations = runLocations
	}
	if cmd.Flags().Changed("amenities") {
		criteria.MustHaveAmenities = runAmenities
	}

	return criteria, nil
}

// huntOptions assembles run options with the configured backends.
func huntOptions(cfg config.Config, criteria types.Criteria) (hunt.Options, error) {
	searcher, err := buildSearcher(cfg)
	if err != nil {
		return hunt.Options{}, err
	}
	notifier, err := buildNotifier(cfg)
	if err != nil {
		return hunt.Options{}, err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCriteria(&criteria)
	}

	return hunt.Options{
		Criteria:       criteria,
		Limit:          cfg.Limit,
		Searcher:       searcher,
		Notifier:       notifier,
		FallbackToMock: cfg.FallbackToMock,
		DatabaseURL:    cfg.DatabaseURL,
		Verbose:        cfg.Verbose,
	}, nil
}

// printOutcome renders the run result to stdout, in full when verbose.
func printOutcome(cfg config.Config, result *types.RunResult) {
	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintResult(result)
	}
	printer.PrintListings(result.TopListings)

	if !result.Success && !cfg.Verbose {
		statuses := make([]string, 0, len(result.StageStatuses))
		for _, s := range result.StageStatuses {
			statuses = append(statuses, fmt.Sprintf("%s=%s", s.Name, s.Status))
		}
		fmt.Fprintf(os.Stderr, "Stages: %s\n", strings.Join(statuses, " "))
	}
}
