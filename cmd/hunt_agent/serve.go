package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/listing-hunter/internal/config"
	"github.com/martin/listing-hunter/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running hunts, browsing past runs and chatting with the assistant.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	if cfg.ToolboxURL == "" {
		cfg.ToolboxURL = os.Getenv("TOOLBOX_URL")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TOOLBOX_AUTH_TOKEN")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	searcher, err := buildSearcher(cfg)
	if err != nil {
		return err
	}
	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           servePort,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		Searcher:       searcher,
		Notifier:       notifier,
		FallbackToMock: cfg.FallbackToMock,
		Verbose:        cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
