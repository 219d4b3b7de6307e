// Package scrape provides a search gateway that scrapes a listings
// index page directly, for sources that expose no API. Selectors are
// configurable per portal; JavaScript-rendered portals can be rendered
// through a headless browser first.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/martin/listing-hunter/internal/fetch"
	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/types"
)

// Selectors maps listing fields to CSS selectors within a card.
type Selectors struct {
	Card         string
	Title        string
	Price        string
	Location     string
	Link         string
	PropertyType string
	Size         string
	Description  string
}

// DefaultSelectors matches the markup of common Czech rental portals.
func DefaultSelectors() Selectors {
	return Selectors{
		Card:         ".listing, .property-card, article[data-listing]",
		Title:        ".title, h2, h3",
		Price:        ".price, [data-price]",
		Location:     ".location, .address, .locality",
		Link:         "a",
		PropertyType: ".type, .disposition",
		Size:         ".size, .area",
		Description:  ".description, .perex",
	}
}

// Config holds the scraper configuration.
type Config struct {
	// IndexURL is the listings index page. A "{query}" placeholder, if
	// present, is replaced with the URL-escaped search query.
	IndexURL  string
	Selectors Selectors
	// UseBrowser renders the page with a headless browser before
	// parsing, for client-side rendered portals.
	UseBrowser bool
	Timeout    time.Duration
	Verbose    bool
}

// Scraper fetches and parses a listings index page.
type Scraper struct {
	cfg Config
}

var _ gateway.Searcher = (*Scraper)(nil)

// New creates a scraper.
func New(cfg Config) (*Scraper, error) {
	if cfg.IndexURL == "" {
		return nil, fmt.Errorf("scrape index URL is required")
	}
	if cfg.Selectors.Card == "" {
		cfg.Selectors = DefaultSelectors()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = fetch.DefaultTimeout
	}
	return &Scraper{cfg: cfg}, nil
}

// Search fetches the index page and extracts listing cards. Returns an
// empty slice when the page has no cards; that is a valid outcome.
func (s *Scraper) Search(ctx context.Context, criteria types.Criteria) ([]types.Listing, error) {
	pageURL := strings.ReplaceAll(s.cfg.IndexURL, "{query}", queryEscape(criteria.Query))

	html, err := s.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listings page: %w", err)
	}

	sel := s.cfg.Selectors
	var listings []types.Listing
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		listing := s.extractCard(card, pageURL)
		if listing.Title == "" && listing.Link == "" {
			return // empty card, skip
		}
		listings = append(listings, listing)
	})

	return listings, nil
}

// fetchHTML retrieves the page, falling back to browser rendering when
// configured and the static fetch looks client-side rendered.
func (s *Scraper) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	result, err := fetch.URL(ctx, pageURL, &fetch.Options{
		Timeout:   s.cfg.Timeout,
		UserAgent: fetch.DefaultUserAgent,
	})
	if err != nil {
		if !s.cfg.UseBrowser {
			return "", err
		}
		return fetch.WithBrowser(ctx, pageURL, s.cfg.Timeout, s.cfg.Verbose)
	}

	if s.cfg.UseBrowser && fetch.ShouldUseBrowser(result.HTML) {
		return fetch.WithBrowser(ctx, pageURL, s.cfg.Timeout, s.cfg.Verbose)
	}
	return result.HTML, nil
}

func (s *Scraper) extractCard(card *goquery.Selection, pageURL string) types.Listing {
	sel := s.cfg.Selectors

	priceRaw := text(card, sel.Price)
	propertyType := text(card, sel.PropertyType)

	link, _ := card.Find(sel.Link).First().Attr("href")
	if strings.HasPrefix(link, "/") {
		link = baseURL(pageURL) + link
	}

	return types.Listing{
		Kind:         types.KindProperty,
		Title:        text(card, sel.Title),
		Location:     text(card, sel.Location),
		Link:         link,
		Price:        gateway.ParsePrice(priceRaw),
		PriceRaw:     priceRaw,
		PropertyType: propertyType,
		SizeM2:       gateway.ParseSizeM2(text(card, sel.Size)),
		Bedrooms:     gateway.ParseBedrooms(propertyType),
		Description:  text(card, sel.Description),
	}
}

func text(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

func baseURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func queryEscape(q string) string {
	return url.QueryEscape(strings.TrimSpace(q))
}
