// Package jikan is a read-only client for the Jikan v4 REST API
// (MyAnimeList data). It rate-limits outgoing requests, caches responses for
// a short time and maps error responses to sentinel errors.
package jikan

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
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tinytelemetry/aetheris/internal/model"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

// Options configures a Client. Zero fields take the defaults from the model
// package.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // requests per second
	Burst      int
	CacheSize  int // 0 disables the cache
	CacheTTL   time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client implements model.Catalog over HTTP.
type Client struct {
	base    string
	ua      string
	http    *http.Client
	limiter *rate.Limiter
	cache   *expirable.LRU[string, []byte]
	log     *zap.Logger
}

var _ model.Catalog = (*Client)(nil)

// NewClient builds a client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = model.DefaultAPIBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = model.DefaultRequestTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = model.DefaultRateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = model.DefaultRateBurst
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = model.DefaultCacheTTL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = model.DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		ua:      opts.UserAgent,
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		log:     opts.Logger.Named("jikan"),
	}
	if opts.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, []byte](opts.CacheSize, nil, opts.CacheTTL)
	}
	return c
}

// envelope is the shape of every Jikan response.
type envelope struct {
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

// get fetches path with query and decodes the data member into dest. The
// pagination member is returned when present.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) (*model.Pagination, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	body, err := c.fetch(ctx, path, u)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("jikan: decode %s: %w", path, err)
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return nil, fmt.Errorf("jikan: decode %s data: %w", path, err)
		}
	}
	return env.Pagination, nil
}

// fetch returns the raw body for u, from the cache when possible.
func (c *Client) fetch(ctx context.Context, path, u string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(u); ok {
			c.log.Debug("cache hit", zap.String("url", u))
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("jikan: wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jikan: build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("request_id", reqID), zap.String("url", u), zap.Error(err))
		return nil, fmt.Errorf("jikan: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("jikan: read %s: %w", path, err)
	}

	c.log.Debug("request",
		zap.String("request_id", reqID),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Path: path}
		// Jikan reports errors as JSON; keep the status if the body is not.
		_ = json.Unmarshal(body, apiErr)
		apiErr.Status = resp.StatusCode
		return nil, apiErr
	}

	if c.cache != nil {
		c.cache.Add(u, body)
	}
	return body, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}
