package cricket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mockTransport serves a queue of canned responses in order and records
// every request it sees.
type mockTransport struct {
	mu        sync.Mutex
	responses []mockResponse
	requests  []*http.Request
	err       error
}

type mockResponse struct {
	status int
	body   string
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return nil, errors.New("mock transport: no responses left")
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	status := next.status
	if status == 0 {
		status = 200
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(next.body)),
	}, nil
}

func (m *mockTransport) offsets(t *testing.T) []string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.requests))
	for _, req := range m.requests {
		out = append(out, req.URL.Query().Get("offset"))
	}
	return out
}

// pageBody builds one success envelope page carrying matches with the
// given ids.
func pageBody(t *testing.T, totalRows, offset int, ids ...string) string {
	t.Helper()
	matches := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, map[string]string{"id": id, "name": "Match " + id})
	}
	data, err := json.Marshal(map[string]any{
		"status": "success",
		"data":   matches,
		"info":   map[string]int{"totalRows": totalRows, "offset": offset},
	})
	if err != nil {
		t.Fatalf("marshal page: %v", err)
	}
	return string(data)
}

func matchIDs(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestCurrentMatchesPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("follows offsets until the total is exhausted", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{body: pageBody(t, 5, 0, "m1", "m2")},
			{body: pageBody(t, 5, 2, "m3", "m4")},
			{body: pageBody(t, 5, 4, "m5")},
		}}
		c := New(transport, "https://api.example.com", "test-key")

		got, err := c.CurrentMatches(ctx)
		if err != nil {
			t.Fatalf("CurrentMatches: %v", err)
		}
		if diff := cmp.Diff([]string{"m1", "m2", "m3", "m4", "m5"}, matchIDs(got)); diff != "" {
			t.Errorf("match ids (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"0", "2", "4"}, transport.offsets(t)); diff != "" {
			t.Errorf("requested offsets (-want +got):\n%s", diff)
		}
	})

	t.Run("stops on an empty page", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{body: pageBody(t, 10, 0, "m1", "m2")},
			{body: pageBody(t, 10, 2)},
		}}
		c := New(transport, "https://api.example.com", "test-key")

		got, err := c.CurrentMatches(ctx)
		if err != nil {
			t.Fatalf("CurrentMatches: %v", err)
		}
		if diff := cmp.Diff([]string{"m1", "m2"}, matchIDs(got)); diff != "" {
			t.Errorf("match ids (-want +got):\n%s", diff)
		}
	})

	t.Run("failure on the first page is an error", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{body: `{"status":"failure","reason":"Invalid API key"}`},
		}}
		c := New(transport, "https://api.example.com", "bad-key")

		_, err := c.CurrentMatches(ctx)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("want APIError, got %v", err)
		}
		if !strings.Contains(apiErr.Error(), "Invalid API key") {
			t.Errorf("error does not carry the upstream reason: %v", apiErr)
		}
	})

	t.Run("failure mid-way keeps the pages already fetched", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{body: pageBody(t, 10, 0, "m1", "m2")},
			{body: `{"status":"failure","reason":"quota exceeded"}`},
		}}
		c := New(transport, "https://api.example.com", "test-key")

		got, err := c.CurrentMatches(ctx)
		if err != nil {
			t.Fatalf("CurrentMatches: %v", err)
		}
		if diff := cmp.Diff([]string{"m1", "m2"}, matchIDs(got)); diff != "" {
			t.Errorf("match ids (-want +got):\n%s", diff)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{status: 503, body: "upstream down"},
		}}
		c := New(transport, "https://api.example.com", "test-key")

		_, err := c.CurrentMatches(ctx)
		if err == nil || !strings.Contains(err.Error(), "unexpected status 503") {
			t.Errorf("want status error, got %v", err)
		}
	})

	t.Run("network error", func(t *testing.T) {
		transport := &mockTransport{err: io.ErrUnexpectedEOF}
		c := New(transport, "https://api.example.com", "test-key")

		_, err := c.CurrentMatches(ctx)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("want wrapped transport error, got %v", err)
		}
	})
}

func TestCurrentMatchesSendsAPIKey(t *testing.T) {
	transport := &mockTransport{responses: []mockResponse{
		{body: pageBody(t, 0, 0)},
	}}
	c := New(transport, "https://api.example.com", "secret-key")

	if _, err := c.CurrentMatches(context.Background()); err != nil {
		t.Fatalf("CurrentMatches: %v", err)
	}
	req := transport.requests[0]
	if diff := cmp.Diff("secret-key", req.URL.Query().Get("apikey")); diff != "" {
		t.Errorf("apikey param (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("/v1/currentMatches", req.URL.Path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestMatchesOnDate(t *testing.T) {
	body, err := json.Marshal(map[string]any{
		"status": "success",
		"data": []map[string]string{
			{"id": "m1", "name": "On the day", "dateTimeGMT": "2026-08-24T09:00:00"},
			{"id": "m2", "name": "Day after", "dateTimeGMT": "2026-08-25T09:00:00"},
			{"id": "m3", "name": "Date only", "date": "2026-08-24"},
			{"id": "m4", "name": "Broken timestamp", "dateTimeGMT": "soon"},
		},
		"info": map[string]int{"totalRows": 4, "offset": 0},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	transport := &mockTransport{responses: []mockResponse{{body: string(body)}}}
	c := New(transport, "https://api.example.com", "test-key")

	got, err := c.MatchesOnDate(context.Background(), "2026-08-24")
	if err != nil {
		t.Fatalf("MatchesOnDate: %v", err)
	}
	// m2 is on another day and m4 has no usable timestamp.
	if diff := cmp.Diff([]string{"m1", "m3"}, matchIDs(got)); diff != "" {
		t.Errorf("match ids (-want +got):\n%s", diff)
	}
}

func TestScorecard(t *testing.T) {
	t.Run("decodes innings detail", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{{body: `{
		  "status": "success",
		  "data": {
		    "id": "m1",
		    "name": "India vs Australia, 3rd T20I",
		    "status": "India won by 6 wickets",
		    "scorecard": [
		      {"inning": "Australia Inning 1",
		       "batting": [{"batsman": {"id": "b1", "name": "Marsh"}, "r": 71, "b": 44, "4s": 6, "6s": 3}],
		       "bowling": [{"bowler": {"id": "bw1", "name": "Bumrah"}, "o": 4, "m": 0, "r": 21, "w": 3}]}
		    ]
		  }
		}`}}}
		c := New(transport, "https://api.example.com", "test-key")

		got, err := c.Scorecard(context.Background(), "m1")
		if err != nil {
			t.Fatalf("Scorecard: %v", err)
		}
		if diff := cmp.Diff("m1", got.ID); diff != "" {
			t.Errorf("id (-want +got):\n%s", diff)
		}
		if len(got.Innings) != 1 {
			t.Fatalf("want 1 innings, got %d", len(got.Innings))
		}
		inn := got.Innings[0]
		if diff := cmp.Diff("Marsh", inn.Batting[0].Batsman.Name); diff != "" {
			t.Errorf("batter (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(3, inn.Bowling[0].Wickets); diff != "" {
			t.Errorf("wickets (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("m1", transport.requests[0].URL.Query().Get("id")); diff != "" {
			t.Errorf("id param (-want +got):\n%s", diff)
		}
	})

	t.Run("surfaces upstream rejection", func(t *testing.T) {
		transport := &mockTransport{responses: []mockResponse{
			{body: `{"status":"failure","reason":"Match not found"}`},
		}}
		c := New(transport, "https://api.example.com", "test-key")

		_, err := c.Scorecard(context.Background(), "zzz")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("want APIError, got %v", err)
		}
	})
}
