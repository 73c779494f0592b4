package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/util"
)

const (
	maxRetries       = 3
	maxResponseBytes = 32 << 20 // Large transcripts produce large parse trees
)

// sleepFunc is the sleep function used between retries (injectable for tests)
var sleepFunc = time.Sleep

// HTTPClient talks to a parser service over HTTP. The service exposes
// POST /parse taking {"text": ...} and returning parsed sentences.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(c *HTTPClient) {
		if t, ok := c.httpClient.Transport.(*http.Transport); ok {
			t.Proxy = util.NewProxyFunc(proxyURL, proxyURL, "")
		}
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewHTTPClient creates a parser client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: "lexiscan/0.1 (+https://github.com/lexiscan/lexiscan)",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// parseRequest is the wire request to the parser service.
type parseRequest struct {
	Text string `json:"text"`
}

// parseResponse is the wire response from the parser service.
type parseResponse struct {
	Sentences []model.Sentence `json:"sentences"`
}

// Parse sends text to the parser service, retrying transient failures
// with exponential backoff.
func (c *HTTPClient) Parse(ctx context.Context, text string) ([]model.Sentence, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("encode request: %w", err)}
	}

	var lastErr *ParseError
	for attempt := 0; attempt < maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &ParseError{Cause: err}
			}
		}

		sentences, perr := c.parseOnce(ctx, body)
		if perr == nil {
			return sentences, nil
		}
		lastErr = perr

		if !isRetryable(perr) || attempt == maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &ParseError{Cause: ctx.Err()}
		default:
		}
		sleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
	}
	return nil, lastErr
}

func (c *HTTPClient) parseOnce(ctx context.Context, body []byte) ([]model.Sentence, *ParseError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &ParseError{
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("read body: %w", err)}
	}

	var parsed parseResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	return parsed.Sentences, nil
}

// Ping checks the parser service health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("parser unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("parser unhealthy: %s", resp.Status)
	}
	return nil
}

// isRetryable reports whether a parse failure is worth retrying.
func isRetryable(err *ParseError) bool {
	if err.StatusCode >= 500 && err.StatusCode < 600 {
		return true
	}
	if err.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if err.StatusCode != 0 {
		return false
	}
	s := strings.ToLower(err.Cause.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
