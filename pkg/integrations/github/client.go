package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rokucommunity/release-dashboard/pkg/cache"
	"github.com/rokucommunity/release-dashboard/pkg/httputil"
)

const (
	// DefaultAPIURL is the GitHub REST API root.
	DefaultAPIURL = "https://api.github.com"

	// DefaultRawURL serves raw repository files.
	DefaultRawURL = "https://raw.githubusercontent.com"

	defaultUserAgent = "release-dashboard"
)

// Config configures a [Client]. Zero values select the defaults.
type Config struct {
	UserAgent string
	Retries   int // extra attempts per request
	APIURL    string
	RawURL    string
}

// Client reads package and release data from GitHub.
type Client struct {
	http    *httputil.Client
	apiURL  string
	rawURL  string
	retries int
}

// NewClient creates a GitHub client backed by store. The httputil options
// are applied after the GitHub default headers.
func NewClient(store cache.Store, cfg Config, opts ...httputil.Option) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": defaultUserAgent,
	}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.RawURL == "" {
		cfg.RawURL = DefaultRawURL
	}

	return &Client{
		http:    httputil.NewClient(store, append([]httputil.Option{httputil.WithHeaders(headers)}, opts...)...),
		apiURL:  cfg.APIURL,
		rawURL:  cfg.RawURL,
		retries: max(cfg.Retries, 0),
	}
}

// PackageJSON fetches package.json at ref. Set immutable for tags and
// commit SHAs: their contents are cached, while branch refs are always
// fetched fresh.
func (c *Client) PackageJSON(ctx context.Context, owner, repo, ref string, immutable bool) (*PackageJSON, error) {
	var pkg PackageJSON
	err := c.http.GetJSON(ctx, httputil.RequestOptions{
		URL:                 fmt.Sprintf("%s/%s/%s/%s/package.json", c.rawURL, owner, repo, ref),
		CacheBusting:        !immutable,
		CacheInLocalStorage: immutable,
		RetryCount:          c.retries,
	}, &pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// LatestRelease returns the most recent published release, or nil when the
// repository has none.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	var rel Release
	err := c.http.GetJSON(ctx, httputil.RequestOptions{
		URL:          fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiURL, owner, repo),
		CacheBusting: true,
		RetryCount:   c.retries,
	}, &rel)
	if httputil.IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Compare lists the commits on head that are not on base.
func (c *Client) Compare(ctx context.Context, owner, repo, base, head string) (*Comparison, error) {
	var cmp Comparison
	err := c.http.GetJSON(ctx, httputil.RequestOptions{
		URL: fmt.Sprintf("%s/repos/%s/%s/compare/%s...%s",
			c.apiURL, owner, repo, url.PathEscape(base), url.PathEscape(head)),
		CacheBusting: true,
		RetryCount:   c.retries,
	}, &cmp)
	if err != nil {
		return nil, err
	}
	return &cmp, nil
}
