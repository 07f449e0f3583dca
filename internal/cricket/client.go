// Package cricket implements the upstream match API client and its
// record types.
package cricket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// maxPages bounds pagination against a runaway totalRows claim.
	maxPages = 40

	// maxBodySize caps a single response body.
	maxBodySize = 4 * 1024 * 1024
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a rejection reported by the upstream in an otherwise
// well-formed response (bad key, quota exhausted, unknown id).
type APIError struct {
	Status string
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("upstream status %q: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("upstream status %q", e.Status)
}

// Client fetches match data from a cricAPI-style REST service. All
// operations are reads and idempotent; error recovery policy belongs
// to the caller (the scheduler swallows, command handlers surface).
type Client struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// New creates a Client with the given HTTP client.
func New(client HTTPClient, baseURL, apiKey string) *Client {
	return &Client{client: client, baseURL: baseURL, apiKey: apiKey}
}

type envelope struct {
	Status string          `json:"status"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
	Info   pageInfo        `json:"info"`
}

type pageInfo struct {
	TotalRows int `json:"totalRows"`
	Offset    int `json:"offset"`
}

// CurrentMatches returns every match the upstream considers current
// (live or recently started), following pagination to the end.
func (c *Client) CurrentMatches(ctx context.Context) ([]Match, error) {
	return c.paginate(ctx, "/v1/currentMatches")
}

// MatchesOnDate returns all scheduled matches whose UTC start date
// equals date ("2006-01-02"). Matches with unparseable start
// timestamps are excluded here; they can still surface through
// CurrentMatches.
func (c *Client) MatchesOnDate(ctx context.Context, date string) ([]Match, error) {
	all, err := c.paginate(ctx, "/v1/matches")
	if err != nil {
		return nil, err
	}
	var out []Match
	for _, m := range all {
		if d, ok := m.StartDate(); ok && d == date {
			out = append(out, m)
		}
	}
	return out, nil
}

// Scorecard returns detailed per-innings data for one match.
func (c *Client) Scorecard(ctx context.Context, matchID string) (*MatchDetail, error) {
	params := url.Values{}
	params.Set("id", matchID)
	env, err := c.get(ctx, "/v1/match_scorecard", params)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, &APIError{Status: env.Status, Reason: env.Reason}
	}
	var detail MatchDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		return nil, fmt.Errorf("decode scorecard: %w", err)
	}
	return &detail, nil
}

// paginate walks an offset-paginated collection endpoint. Pagination
// stops when the reported total is exhausted, a page comes back short,
// or the upstream signals non-success mid-way (the pages already
// fetched are kept). A non-success first page is an error.
func (c *Client) paginate(ctx context.Context, path string) ([]Match, error) {
	var matches []Match
	offset := 0
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("offset", strconv.Itoa(offset))
		env, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		if env.Status != "success" {
			if page == 0 {
				return nil, &APIError{Status: env.Status, Reason: env.Reason}
			}
			break
		}

		var chunk []Match
		if err := json.Unmarshal(env.Data, &chunk); err != nil {
			return nil, fmt.Errorf("decode %s page at offset %d: %w", path, offset, err)
		}
		matches = append(matches, chunk...)

		if len(chunk) == 0 {
			break
		}
		offset += len(chunk)
		if env.Info.TotalRows > 0 && offset >= env.Info.TotalRows {
			break
		}
	}
	return matches, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*envelope, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}
