// Package toolbox provides a search gateway backed by an MCP toolbox
// server fronting BigQuery. The toolbox owns all query semantics; this
// client only invokes a named tool and maps the returned rows to
// listings.
package toolbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/types"
)

// DefaultTimeout bounds a single toolbox invocation. A timed-out call
// surfaces to the runner as a dependency failure for that run.
const DefaultTimeout = 30 * time.Second

// Tool names served by the toolbox deployment.
const (
	PropertyTool = "search-properties"
	JobTool      = "search-jobs"
)

// Config holds the client configuration.
type Config struct {
	BaseURL string
	// AuthToken is sent as a Bearer token; the deployed toolbox expects
	// a Google ID token.
	AuthToken string
	Timeout   time.Duration
}

// Client invokes toolbox tools over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ gateway.Searcher = (*Client)(nil)

// NewClient creates a toolbox client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("toolbox base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// invokeRequest is the toolbox tool invocation payload.
type invokeRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// invokeResponse wraps the tool result. The toolbox returns rows either
// as a JSON array or as a JSON-encoded string, depending on the tool
// definition; both are handled.
type invokeResponse struct {
	Result json.RawMessage `json:"result"`
}

// propertyRow matches the BigQuery property schema exposed by the
// toolbox. Numeric fields arrive as strings.
type propertyRow struct {
	Price        string `json:"price"`
	Location     string `json:"location"`
	Link         string `json:"link"`
	PropertyType string `json:"property_type"`
	Size         string `json:"size"`
	Description  string `json:"description"`
}

type jobRow struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Search invokes the tool matching the criteria kind and maps the rows
// to listings. An empty row set is a valid outcome.
func (c *Client) Search(ctx context.Context, criteria types.Criteria) ([]types.Listing, error) {
	tool := PropertyTool
	if criteria.Kind == types.KindJob {
		tool = JobTool
	}

	raw, err := c.invoke(ctx, tool, invokeRequest{Query: criteria.Query})
	if err != nil {
		return nil, err
	}

	if criteria.Kind == types.KindJob {
		return mapJobRows(raw)
	}
	return mapPropertyRows(raw)
}

// invoke POSTs to the toolbox invoke endpoint and returns the raw rows.
func (c *Client) invoke(ctx context.Context, tool string, params invokeRequest) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode toolbox request: %w", err)
	}

	url := fmt.Sprintf("%s/api/tool/%s/invoke", c.cfg.BaseURL, tool)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build toolbox request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toolbox call failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("toolbox returned %d: %s", res.StatusCode, string(b))
	}

	var resp invokeResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode toolbox response: %w", err)
	}
	return unwrapResult(resp.Result)
}

// unwrapResult normalizes the result to a JSON array. Tool results may
// be double-encoded (a JSON string containing JSON).
func unwrapResult(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return json.RawMessage("[]"), nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("failed to unwrap toolbox result: %w", err)
		}
		return json.RawMessage(inner), nil
	}
	return raw, nil
}

func mapPropertyRows(raw json.RawMessage) ([]types.Listing, error) {
	var rows []propertyRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse property rows: %w", err)
	}

	listings := make([]types.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, types.Listing{
			Kind:         types.KindProperty,
			Title:        fmt.Sprintf("%s, %s", row.PropertyType, row.Location),
			Location:     row.Location,
			Link:         row.Link,
			Price:        gateway.ParsePrice(row.Price),
			PriceRaw:     row.Price,
			PropertyType: row.PropertyType,
			SizeM2:       gateway.ParseSizeM2(row.Size),
			Bedrooms:     gateway.ParseBedrooms(row.PropertyType),
			Description:  row.Description,
		})
	}
	return listings, nil
}

func mapJobRows(raw json.RawMessage) ([]types.Listing, error) {
	var rows []jobRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse job rows: %w", err)
	}

	listings := make([]types.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, types.Listing{
			Kind:        types.KindJob,
			Title:       row.Title,
			Company:     row.Company,
			Location:    row.Location,
			Link:        row.Link,
			Salary:      row.Salary,
			Price:       gateway.ParsePrice(row.Salary),
			PriceRaw:    row.Salary,
			Description: row.Description,
		})
	}
	return listings, nil
}
