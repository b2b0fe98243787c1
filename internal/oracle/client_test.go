package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func scoreServer(t *testing.T, statuses []int, results []Result) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sentiment/batch" {
			http.NotFound(w, r)
			return
		}
		i := int(atomic.AddInt32(&calls, 1)) - 1
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		st := statuses[i]
		if st >= 200 && st < 300 {
			var req scoreRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			out := results
			if out == nil {
				out = make([]Result, len(req.Texts))
			}
			w.WriteHeader(st)
			_ = json.NewEncoder(w).Encode(scoreResponse{Results: out})
			return
		}
		w.WriteHeader(st)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "boom"}})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(url string, cache *Cache) *Client {
	return NewClient(url, "test-key", 5*time.Second, 3, time.Millisecond, 5*time.Millisecond, cache)
}

func TestScoreBatchSuccess(t *testing.T) {
	want := []Result{{Score: 0.8, Language: "en"}, {Score: -0.4, Language: "fr"}}
	srv, _ := scoreServer(t, []int{200}, want)
	c := newTestClient(srv.URL, nil)
	got, err := c.ScoreBatch(context.Background(), []string{"great", "horrible"})
	if err != nil {
		t.Fatalf("score batch: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestScoreBatchRetriesServerErrors(t *testing.T) {
	want := []Result{{Score: 0.5, Language: "en"}}
	srv, calls := scoreServer(t, []int{500, 500, 200}, want)
	c := newTestClient(srv.URL, nil)
	got, err := c.ScoreBatch(context.Background(), []string{"fine"})
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if got[0] != want[0] {
		t.Fatalf("unexpected result: %+v", got)
	}
	if *calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", *calls)
	}
}

func TestScoreBatchAuthErrorNotRetried(t *testing.T) {
	srv, calls := scoreServer(t, []int{401}, nil)
	c := newTestClient(srv.URL, nil)
	_, err := c.ScoreBatch(context.Background(), []string{"x"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if *calls != 1 {
		t.Fatalf("auth errors must not retry, got %d attempts", *calls)
	}
	if c.Failures() != 1 {
		t.Fatalf("failure counter should record the error, got %d", c.Failures())
	}
}

func TestScoreBatchRateLimitTyped(t *testing.T) {
	srv, _ := scoreServer(t, []int{429, 429, 429}, nil)
	c := newTestClient(srv.URL, nil)
	_, err := c.ScoreBatch(context.Background(), []string{"x"})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError after exhausted retries, got %v", err)
	}
}

func TestScoreBatchResultCountMismatch(t *testing.T) {
	srv, _ := scoreServer(t, []int{200}, []Result{{Score: 0.1}})
	c := newTestClient(srv.URL, nil)
	if _, err := c.ScoreBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error on result count mismatch")
	}
}

func TestScoreBatchUnreachable(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", nil)
	_, err := c.ScoreBatch(context.Background(), []string{"x"})
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestScoreBatchServesFromCache(t *testing.T) {
	want := []Result{{Score: 0.9, Language: "en"}}
	srv, calls := scoreServer(t, []int{200}, want)
	cache := NewCache()
	c := newTestClient(srv.URL, cache)
	if _, err := c.ScoreBatch(context.Background(), []string{"lovely"}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	got, err := c.ScoreBatch(context.Background(), []string{"lovely"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got[0] != want[0] {
		t.Fatalf("cached result mismatch: %+v", got)
	}
	if *calls != 1 {
		t.Fatalf("second call should be served from cache, got %d requests", *calls)
	}
	if hits, _ := cache.Stats(); hits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", hits)
	}
}

func TestLexiconScorerFallbackShape(t *testing.T) {
	got, err := LexiconScorer{}.ScoreBatch(context.Background(), []string{"great place", ""})
	if err != nil {
		t.Fatalf("lexicon scorer must not fail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected one result per text, got %d", len(got))
	}
	if got[0].Score <= 0 || got[1].Score != 0 {
		t.Fatalf("unexpected lexicon scores: %+v", got)
	}
}

func TestScorerRegistry(t *testing.T) {
	if _, ok := GetScorer(ProviderLexicon, ScorerConfig{}); !ok {
		t.Fatal("lexicon scorer should be registered")
	}
	if _, ok := GetScorer(ProviderRemote, ScorerConfig{BaseURL: "http://example.invalid"}); !ok {
		t.Fatal("remote scorer should be registered")
	}
	if _, ok := GetScorer("nope", ScorerConfig{}); ok {
		t.Fatal("unknown provider must not resolve")
	}
}
