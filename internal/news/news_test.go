package news

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
}

func (m *mockTransport) Do(_ *http.Request) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test-only fixture loading
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func TestHeadlines(t *testing.T) {
	xml := loadFixture(t, "../../testdata/news.xml")

	tests := []struct {
		name      string
		transport *mockTransport
		wantFirst Item
		wantItems int
		wantErr   bool
	}{
		{
			name:      "successful fetch caps at five items",
			transport: &mockTransport{body: xml, statusCode: 200},
			wantFirst: Item{
				Title:     "India seal series with five-wicket win",
				Link:      "https://example.com/cricket/india-seal-series",
				Published: "2026-08-24 08:30 UTC",
			},
			wantItems: 5,
		},
		{
			name:      "http error status",
			transport: &mockTransport{body: "not found", statusCode: 404},
			wantErr:   true,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			wantErr:   true,
		},
		{
			name:      "invalid xml",
			transport: &mockTransport{body: "not xml at all", statusCode: 200},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.transport, "https://example.com/rss")
			items, err := f.Headlines(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.wantItems, len(items)); diff != "" {
				t.Errorf("item count mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantFirst, items[0]); diff != "" {
				t.Errorf("first item mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeadlinesMissingDate(t *testing.T) {
	xml := loadFixture(t, "../../testdata/news.xml")
	f := New(&mockTransport{body: xml, statusCode: 200}, "https://example.com/rss")

	items, err := f.Headlines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The fifth item in the fixture has no pubDate.
	if diff := cmp.Diff("", items[4].Published); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}
}
