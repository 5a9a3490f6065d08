package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/armtrack/armtrack/internal/models"
	"github.com/armtrack/armtrack/internal/storage"
)

// HTTPClient implements DataSource by calling the ArmTrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func limitParams(limit int) url.Values {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (c *HTTPClient) GetUserProgress(ctx context.Context, userID uuid.UUID) (*storage.UserProgress, error) {
	body, err := c.get(ctx, "/api/v1/users/"+userID.String()+"/progress", nil)
	if err != nil {
		return nil, err
	}

	var progress storage.UserProgress
	if err := json.Unmarshal(body, &progress); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return &progress, nil
}

func (c *HTTPClient) Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	body, err := c.get(ctx, "/api/v1/leaderboard", limitParams(limit))
	if err != nil {
		return nil, err
	}

	var entries []storage.LeaderboardEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("httpclient: decode leaderboard: %w", err)
	}
	return entries, nil
}

func (c *HTTPClient) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	body, err := c.get(ctx, "/api/v1/analyses/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var rec models.AnalysisRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("httpclient: decode analysis: %w", err)
	}
	return &rec, nil
}

func (c *HTTPClient) ListUserAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]*models.AnalysisRecord, error) {
	body, err := c.get(ctx, "/api/v1/users/"+userID.String()+"/analyses", limitParams(limit))
	if err != nil {
		return nil, err
	}

	var list []*models.AnalysisRecord
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("httpclient: decode analyses: %w", err)
	}
	return list, nil
}

func (c *HTTPClient) GetGlobalStats(ctx context.Context) (*storage.GlobalStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.GlobalStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
