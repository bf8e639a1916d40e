package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lakewatch/internal/domain"
)

// APIError is a non-2xx response from the dashboard API. Message is the
// server's error body, surfaced as-is.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client is a thin HTTP client for the dashboard API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Status fetches GET /api/securitylake/status.
func (c *Client) Status(ctx context.Context) (*domain.LakeStatus, error) {
	var out domain.LakeStatus
	if err := c.get(ctx, "/api/securitylake/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sources fetches GET /api/securitylake/sources.
func (c *Client) Sources(ctx context.Context) ([]domain.LogSource, error) {
	var out struct {
		Sources []domain.LogSource `json:"sources"`
	}
	if err := c.get(ctx, "/api/securitylake/sources", &out); err != nil {
		return nil, err
	}
	return out.Sources, nil
}

// Tables fetches GET /api/securitylake/tables.
func (c *Client) Tables(ctx context.Context) (*domain.TableListing, error) {
	var out domain.TableListing
	if err := c.get(ctx, "/api/securitylake/tables", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Queries fetches GET /api/securitylake/queries.
func (c *Client) Queries(ctx context.Context) ([]domain.QueryDefinition, error) {
	var out struct {
		Queries []domain.QueryDefinition `json:"queries"`
	}
	if err := c.get(ctx, "/api/securitylake/queries", &out); err != nil {
		return nil, err
	}
	return out.Queries, nil
}

// Run posts POST /api/securitylake/query for the given query id and blocks
// until the server answers.
func (c *Client) Run(ctx context.Context, queryID string) (*domain.QueryResult, error) {
	body, err := json.Marshal(map[string]string{"queryId": queryID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/securitylake/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out domain.QueryResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
			return &APIError{HTTPStatus: resp.StatusCode, Message: body.Error}
		}
		return &APIError{HTTPStatus: resp.StatusCode, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
