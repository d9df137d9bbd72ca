package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rokucommunity/release-dashboard/pkg/cache"
	"github.com/rokucommunity/release-dashboard/pkg/observability"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests with optional caching, cache-busting and retries.
// See the package documentation for the request lifecycle.
type Client struct {
	http    Doer
	store   cache.Store
	headers map[string]string
	logger  *log.Logger
	jitter  func() time.Duration
	sleep   func(context.Context, time.Duration) error
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. The default is a plain *http.Client
// without a timeout.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithHeaders sets headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) { c.headers = headers }
}

// WithLogger sets the logger used for retry warnings and cache diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithJitter sets the source of retry delays. The default is [Jitter].
func WithJitter(f func() time.Duration) Option {
	return func(c *Client) { c.jitter = f }
}

// WithSleep sets how the client waits between retries. The default is [Sleep].
func WithSleep(f func(context.Context, time.Duration) error) Option {
	return func(c *Client) { c.sleep = f }
}

// WithClock sets the time source used for cache-busting.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client backed by store. A nil store disables caching.
func NewClient(store cache.Store, opts ...Option) *Client {
	if store == nil {
		store = cache.NewNullStore()
	}
	c := &Client{
		http:   &http.Client{},
		store:  store,
		logger: log.Default(),
		jitter: Jitter,
		sleep:  Sleep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs opts as a GET request and returns the body as text.
func (c *Client) Get(ctx context.Context, opts RequestOptions) (string, error) {
	opts.Method = http.MethodGet
	return c.Request(ctx, opts)
}

// GetJSON performs opts as a GET request and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, opts RequestOptions, v any) error {
	text, err := c.Get(ctx, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode %s: %w", opts.URL, err)
	}
	return nil
}

// Request performs opts and returns the response body as text.
//
// A failed attempt is retried up to opts.RetryCount times after a random
// delay, each time starting again from the cache lookup. The error of the
// final attempt is returned unmodified.
func (c *Client) Request(ctx context.Context, opts RequestOptions) (string, error) {
	if opts.URL == "" {
		return "", ErrMissingURL
	}

	var text string
	err := Retry(ctx, RetryPolicy{
		Retries: opts.RetryCount,
		Backoff: c.jitter,
		Sleep:   c.sleep,
		OnRetry: func(err error, remaining int, delay time.Duration) {
			c.logger.Warn("request failed, retrying", "url", opts.URL, "delay", delay, "remaining", remaining, "err", err)
			method, host, path := describe(opts.Method, opts.URL)
			observability.HTTP().OnRetry(ctx, method, host, path, remaining, delay)
		},
	}, func() error {
		var err error
		text, err = c.attempt(ctx, opts)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// attempt runs a single pass of the request lifecycle.
func (c *Client) attempt(ctx context.Context, opts RequestOptions) (string, error) {
	// The key is taken from the URL before cache-busting.
	key := CacheKey(opts.URL)

	if opts.CacheInLocalStorage {
		cached, ok, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Debug("cache lookup failed", "key", key, "err", err)
		}
		if ok && cached != "" {
			observability.Cache().OnCacheHit(ctx, key)
			return cached, nil
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	target := opts.URL
	if opts.CacheBusting {
		busted, err := BustURL(target, c.now())
		if err != nil {
			return "", fmt.Errorf("cache-bust %s: %w", target, err)
		}
		target = busted
	}

	text, err := c.send(ctx, opts.Method, target, opts.Header, opts.Body)
	if err != nil {
		return "", err
	}

	if opts.CacheInLocalStorage {
		if err := c.store.Set(ctx, key, text); err != nil {
			c.logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(text))
		}
	}
	return text, nil
}

func (c *Client) send(ctx context.Context, method, target string, header http.Header, body []byte) (string, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return "", &TransportError{Method: method, URL: target, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return "", &TransportError{Method: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body = io.NopCloser(bytes.NewReader(data))
		return "", &StatusError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       data,
			Response:   resp,
		}
	}
	if readErr != nil {
		return "", &TransportError{Method: req.Method, URL: target, Err: readErr}
	}
	return string(data), nil
}

// describe splits a URL for hook reporting. Unparseable URLs report the raw
// string as the path.
func describe(method, rawURL string) (string, string, string) {
	if method == "" {
		method = http.MethodGet
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return method, "", rawURL
	}
	return method, u.Host, u.Path
}
