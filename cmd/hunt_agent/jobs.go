package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martin/listing-hunter/internal/hunt"
)

var jobsCommand = &cobra.Command{
	Use:   "jobs",
	Short: "Run the job hunt pipeline",
	Long: `Searches job listings for the given query and delivers them: search -> notify.
Job listings are not scored; the backend's ordering is kept.`,
	RunE: runJobsCmd,
}

func init() {
	registerHuntFlags(jobsCommand)
	rootCmd.AddCommand(jobsCommand)
}

func runJobsCmd(cmd *cobra.Command, _ []string) error {
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

	result, err := hunt.Jobs(context.Background(), opts)
	if err != nil {
		return err
	}

	printOutcome(cfg, result)
	if !result.Success {
		return fmt.Errorf("hunt failed at stage %q: %s", result.FailedStage, result.Error)
	}
	return nil
}
