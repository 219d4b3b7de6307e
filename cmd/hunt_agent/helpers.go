package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/martin/listing-hunter/internal/config"
	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/gateway/mock"
	"github.com/martin/listing-hunter/internal/gateway/notify"
	"github.com/martin/listing-hunter/internal/gateway/scrape"
	"github.com/martin/listing-hunter/internal/gateway/toolbox"
	"github.com/martin/listing-hunter/internal/types"
)

// loadCriteria reads a criteria JSON file.
func loadCriteria(path string) (types.Criteria, error) {
	var criteria types.Criteria
	data, err := os.ReadFile(path)
	if err != nil {
		return criteria, fmt.Errorf("failed to read criteria file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &criteria); err != nil {
		return criteria, fmt.Errorf("failed to parse criteria JSON: %w", err)
	}
	return criteria, nil
}

// buildSearcher picks the search backend from configuration: the
// toolbox server when configured, a scraper when a listings index URL
// is given, mock fixtures otherwise.
func buildSearcher(cfg config.Config) (gateway.Searcher, error) {
	switch {
	case cfg.ToolboxURL != "":
		return toolbox.NewClient(toolbox.Config{
			BaseURL:   cfg.ToolboxURL,
			AuthToken: cfg.AuthToken,
		})
	case cfg.ScrapeURL != "":
		return scrape.New(scrape.Config{
			IndexURL:   cfg.ScrapeURL,
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
	default:
		log.Println("No search backend configured, using mock data")
		return mock.NewSearcher(), nil
	}
}

// buildNotifier picks the notification backend: a webhook when
// configured, stdout otherwise.
func buildNotifier(cfg config.Config) (gateway.Notifier, error) {
	if cfg.WebhookURL != "" {
		return notify.NewWebhookNotifier(cfg.WebhookURL, "", 0)
	}
	return notify.NewLogNotifier(log.New(os.Stdout, "", log.LstdFlags)), nil
}
