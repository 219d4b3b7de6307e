package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martin/listing-hunter/internal/hunt"
)

var bothCommand = &cobra.Command{
	Use:   "both",
	Short: "Run the property and job hunts concurrently",
	Long: `Runs the property pipeline and the job pipeline at the same time over
independent sessions. A failure in one does not abort the other.`,
	RunE: runBothCmd,
}

var bothJobQuery string

func init() {
	registerHuntFlags(bothCommand)
	bothCommand.Flags().StringVar(&bothJobQuery, "job-query", "", "Free-text query for the job hunt (defaults to --query)")
	rootCmd.AddCommand(bothCommand)
}

func runBothCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	criteria, err := criteriaFromConfig(cmd, cfg)
	if err != nil {
		return err
	}

	propertyOpts, err := huntOptions(cfg, criteria)
	if err != nil {
		return err
	}

	jobCriteria := criteria
	if bothJobQuery != "" {
		jobCriteria.Query = bothJobQuery
	}
	jobOpts, err := huntOptions(cfg, jobCriteria)
	if err != nil {
		return err
	}

	propertyResult, jobResult, err := hunt.Both(context.Background(), propertyOpts, jobOpts)
	if err != nil {
		return err
	}

	fmt.Println("Properties:")
	printOutcome(cfg, propertyResult)
	fmt.Println("Jobs:")
	printOutcome(cfg, jobResult)

	if !propertyResult.Success || !jobResult.Success {
		return fmt.Errorf("one or more hunts failed")
	}
	return nil
}
