package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-1.5-flash-8b",
	}, nil)
	return srv, c
}

func TestGenerateReturnsFirstCandidateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "{\"Revision\": \"B\"}"}]}}
			]
		}`))
	})

	res, err := c.Generate(context.Background(), "extract things")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Blocked {
		t.Fatal("should not be blocked")
	}
	if res.Text != `{"Revision": "B"}` {
		t.Fatalf("text = %q", res.Text)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash-8b:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("key = %q", gotKey)
	}
	contents, ok := gotBody["contents"].([]any)
	if !ok || len(contents) != 1 {
		t.Fatalf("contents = %v", gotBody["contents"])
	}
}

func TestGenerateBlockedPrompt(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
	})

	res, err := c.Generate(context.Background(), "something")
	if err != nil {
		t.Fatalf("block is not a transport error, got %v", err)
	}
	if !res.Blocked || res.BlockReason != "SAFETY" {
		t.Fatalf("res = %+v", res)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	res, err := c.Generate(context.Background(), "something")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Blocked || res.Text != "" {
		t.Fatalf("res = %+v, want empty text", res)
	}
}

func TestGenerateHTTPErrorStatus(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "something")
	if err == nil {
		t.Fatal("non-2xx must surface as an error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error = %v, want status in message", err)
	}
}

func TestGenerateMalformedResponseBody(t *testing.T) {
	_, c := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	if _, err := c.Generate(context.Background(), "something"); err == nil {
		t.Fatal("undecodable body must surface as an error")
	}
}
