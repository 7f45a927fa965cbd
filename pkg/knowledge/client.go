package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	knowledgeopts "github.com/kart-io/graphlens/pkg/options/knowledge"
)

// Client talks to the knowledge toolkit sidecar over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	opts       *knowledgeopts.Options
}

var _ Store = (*Client)(nil)

// New creates a new toolkit client.
func New(opts *knowledgeopts.Options) *Client {
	return &Client{
		baseURL: opts.Endpoint,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		opts: opts,
	}
}

type indexRequest struct {
	TenantID string `json:"tenant_id"`
	DocID    string `json:"doc_id"`
	Text     string `json:"text"`
}

type indexResponse struct {
	ChunksCreated int `json:"chunks_created"`
}

// Index implements Store.
func (c *Client) Index(ctx context.Context, tenantID, docID, text string) (int, error) {
	reqBody := indexRequest{
		TenantID: TenantHash(tenantID),
		DocID:    docID,
		Text:     text,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal index request: %w", err)
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/index", body)
	if err != nil {
		return 0, fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("index request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var idxResp indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&idxResp); err != nil {
		return 0, fmt.Errorf("failed to decode index response: %w", err)
	}

	return idxResp.ChunksCreated, nil
}

type searchRequest struct {
	TenantID string `json:"tenant_id"`
	Query    string `json:"query"`
	TopK     int    `json:"top_k,omitempty"`
}

// VectorSearch implements Store.
func (c *Client) VectorSearch(ctx context.Context, tenantID, query string, topK int) (*VectorResult, error) {
	if topK <= 0 {
		topK = c.opts.TopK
	}
	reqBody := searchRequest{
		TenantID: TenantHash(tenantID),
		Query:    query,
		TopK:     topK,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vector search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/search/vector", body)
	if err != nil {
		return nil, fmt.Errorf("vector search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vector search failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result VectorResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode vector search response: %w", err)
	}

	return &result, nil
}

// GraphSearch implements Store.
func (c *Client) GraphSearch(ctx context.Context, tenantID, query string) (*GraphResult, error) {
	reqBody := searchRequest{
		TenantID: TenantHash(tenantID),
		Query:    query,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/search/graph", body)
	if err != nil {
		return nil, fmt.Errorf("graph search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("graph search failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result GraphResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode graph search response: %w", err)
	}

	return &result, nil
}

type resetRequest struct {
	TenantID string `json:"tenant_id"`
}

// ResetTenant implements Store.
func (c *Client) ResetTenant(ctx context.Context, tenantID string) error {
	reqBody := resetRequest{
		TenantID: TenantHash(tenantID),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal reset request: %w", err)
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/api/v1/reset", body)
	if err != nil {
		return fmt.Errorf("reset request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reset failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// Ping checks if the toolkit is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping failed with status %d", resp.StatusCode)
	}

	return nil
}

// doRequestWithRetry executes the request with retry logic, rebuilding the
// request body on each attempt.
func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i <= c.opts.MaxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < c.opts.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			}
		}
	}
	return nil, lastErr
}
