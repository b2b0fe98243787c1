package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Client calls the remote sentiment service over HTTP with bounded
// retries and exponential backoff. All mutable state (the response
// cache, the error counter) is instance-local and injected, so tests
// can build isolated clients with no cross-test leakage.
type Client struct {
	httpClient       *http.Client
	apiKey           string
	baseURL          string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration

	cache    *Cache
	failures int
}

type scoreRequest struct {
	Texts []string `json:"texts"`
}

type scoreResponse struct {
	Results []Result `json:"results"`
}

// NewClient builds a Client with explicit timeout and retry behavior.
// A nil cache disables caching.
func NewClient(baseURL, apiKey string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration, cache *Cache) *Client {
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	return &Client{
		httpClient:       &http.Client{Timeout: httpTimeout},
		apiKey:           apiKey,
		baseURL:          baseURL,
		retryMaxAttempts: retryMax,
		retryBaseDelay:   baseDelay,
		retryMaxDelay:    maxDelay,
		cache:            cache,
	}
}

// NewClientFromConfig adapts the registry config shape.
func NewClientFromConfig(c ScorerConfig) *Client {
	return NewClient(
		c.BaseURL, c.APIKey,
		time.Duration(c.HTTPTimeoutSec)*time.Second,
		c.RetryMaxAttempts,
		time.Duration(c.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(c.RetryMaxDelayMs)*time.Millisecond,
		c.Cache,
	)
}

// Failures reports how many batch calls ended in an error since the
// client was built. Surfaced in debug output.
func (c *Client) Failures() int { return c.failures }

// ScoreBatch scores texts remotely, serving cached entries without a
// network call and retrying 429/5xx and transient network errors with
// jittered exponential backoff. On success the response must carry one
// result per input text.
func (c *Client) ScoreBatch(ctx context.Context, texts []string) ([]Result, error) {
	if c.baseURL == "" {
		c.failures++
		return nil, errors.New("oracle base URL is not configured")
	}
	out := make([]Result, len(texts))
	misses := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))
	for i, t := range texts {
		if r, ok := c.cache.Get(t); ok {
			out[i] = r
			continue
		}
		misses = append(misses, i)
		missTexts = append(missTexts, t)
	}
	if len(misses) == 0 {
		return out, nil
	}

	results, err := c.post(ctx, missTexts)
	if err != nil {
		c.failures++
		return nil, err
	}
	if len(results) != len(missTexts) {
		c.failures++
		return nil, fmt.Errorf("oracle returned %d results for %d texts", len(results), len(missTexts))
	}
	for j, idx := range misses {
		out[idx] = results[j]
		c.cache.Put(missTexts[j], results[j])
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, texts []string) ([]Result, error) {
	payload, err := json.Marshal(scoreRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/v1/sentiment/batch"
	backoff := c.retryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		if c.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if isRetryableNetErr(err) && attempt < c.retryMaxAttempts {
				lastErr = err
				time.Sleep(backoff)
				backoff *= 2
				continue
			}
			return nil, &UnreachableError{Host: c.baseURL, Err: err}
		}
		results, retry, err := c.handleResponse(resp)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !retry || attempt >= c.retryMaxAttempts {
			break
		}
		sleep := withJitter(backoff)
		if c.retryMaxDelay > 0 && sleep > c.retryMaxDelay {
			sleep = c.retryMaxDelay
		}
		time.Sleep(sleep)
		backoff *= 2
	}
	return nil, lastErr
}

// handleResponse decodes one HTTP response; retry reports whether the
// error class is worth another attempt.
func (c *Client) handleResponse(resp *http.Response) (results []Result, retry bool, err error) {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		var raw map[string]any
		_ = json.Unmarshal(body, &raw)
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw}
		if v, ok := raw["error"].(map[string]any); ok {
			if msg, ok := v["message"].(string); ok {
				apiErr.Message = msg
			}
			if code, ok := v["code"].(string); ok {
				apiErr.Code = code
			}
		} else if msg, ok := raw["message"].(string); ok {
			apiErr.Message = msg
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, false, &AuthError{APIError: apiErr}
		case resp.StatusCode == http.StatusTooManyRequests:
			var ra time.Duration
			if v := resp.Header.Get("Retry-After"); v != "" {
				if secs, err := parseRetryAfterSeconds(v); err == nil && secs > 0 {
					ra = time.Duration(secs) * time.Second
				}
			}
			return nil, true, &RateLimitError{APIError: apiErr, RetryAfter: ra}
		case resp.StatusCode >= 500 && resp.StatusCode <= 599:
			return nil, true, &ServerError{APIError: apiErr}
		default:
			return nil, false, apiErr
		}
	}
	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	return out.Results, false, nil
}

func isRetryableNetErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, io.EOF)
}

// parseRetryAfterSeconds interprets a Retry-After value as seconds or
// an HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

// withJitter spreads retries by up to 25% of the delay.
func withJitter(d time.Duration) time.Duration {
	quarter := int64(d) / 4
	if quarter <= 0 {
		return d
	}
	jitter := time.Duration(rand.Int63n(quarter))
	return d + jitter
}
