// Package main provides the entry point for the listing hunter CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hunt_agent",
	Short: "Prague listing hunter",
	Long:  "Hunt Agent searches Prague property and job listings, filters and scores them against your criteria, and delivers the best matches via CLI, webhook or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
