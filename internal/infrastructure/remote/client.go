// Package remote talks to the LRU cache service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

const (
	pathGetAll = "/cache/getall"
	pathGet    = "/cache/get/"
	pathSet    = "/cache/set"
	pathDelete = "/cache/delete/"

	// Error bodies are truncated to this many bytes.
	maxErrorBody = 512

	defaultMaxAttempts = 3
)

// ErrInvalidBaseURL is returned by NewClient for unusable base URLs.
var ErrInvalidBaseURL = errors.New("invalid cache service base URL")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration // 0 leaves the transport default
	UserAgent string
	// MaxAttempts bounds tries for idempotent reads. Writes are never retried.
	MaxAttempts int
	HTTPClient  *http.Client
}

// Client implements port.CacheService.
type Client struct {
	base        string
	client      *http.Client
	userAgent   string
	maxAttempts int
	randInt63   func(n int64) int64
	sleep       func(ctx context.Context, d time.Duration) error
}

var _ port.CacheService = (*Client)(nil)

// NewClient validates the base URL and builds a client.
func NewClient(opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	return &Client{
		base:        strings.TrimRight(parsed.String(), "/"),
		client:      client,
		userAgent:   opts.UserAgent,
		maxAttempts: attempts,
		randInt63:   rand.Int63n,
		sleep:       waitForBackoff,
	}, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.base
}

type wireEntry struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Expiration string `json:"expiration"`
}

// GetAll fetches every entry. A JSON null body means the cache is empty.
func (c *Client) GetAll(ctx context.Context) ([]entity.CacheEntry, error) {
	log := logging.FromContext(ctx)

	var wire []wireEntry
	if err := c.getJSON(ctx, pathGetAll, &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}

	entries := make([]entity.CacheEntry, 0, len(wire))
	for _, w := range wire {
		exp, err := parseExpiration(w.Expiration)
		if err != nil {
			log.Debug().Err(err).Str("key", w.Key).Msg("unparseable expiration, leaving zero")
		}
		entries = append(entries, entity.CacheEntry{Key: w.Key, Value: w.Value, Expiration: exp})
	}
	return entries, nil
}

// Get looks up a single key.
func (c *Client) Get(ctx context.Context, key string) (port.LookupResponse, error) {
	var resp port.LookupResponse
	if err := c.getJSON(ctx, pathGet+url.PathEscape(key), &resp); err != nil {
		return port.LookupResponse{}, err
	}
	return resp, nil
}

// Set upserts an entry.
func (c *Client) Set(ctx context.Context, req port.SetRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode set request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, pathSet, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("POST %s: %w", pathSet, err)
	}
	defer drainAndClose(resp)

	return checkStatus(resp, http.MethodPost, pathSet)
}

// Delete removes a key.
func (c *Client) Delete(ctx context.Context, key string) error {
	path := pathDelete + url.PathEscape(key)

	req, err := c.newRequest(ctx, http.MethodDelete, path, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("DELETE %s: %w", path, err)
	}
	defer drainAndClose(resp)

	return checkStatus(resp, http.MethodDelete, path)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer drainAndClose(resp)

	if err := checkStatus(resp, http.MethodGet, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func checkStatus(resp *http.Response, method, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

var expirationLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseExpiration accepts RFC 3339 and its zone-less variants (read as UTC).
func parseExpiration(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range expirationLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse expiration %q: %w", s, lastErr)
}
