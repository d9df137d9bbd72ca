package httputil

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// CacheKeyPrefix is prepended to the request URL to form the store key.
	CacheKeyPrefix = "http-request: "

	// CacheBustParam is the query parameter overwritten by cache-busting.
	CacheBustParam = "nocache"
)

// RequestOptions describes one logical request, including its retries.
type RequestOptions struct {
	// URL is the absolute request URL. Required.
	URL string

	// Method is the HTTP method. Empty means GET. [Client.Get] always uses GET.
	Method string

	// CacheBusting sets the nocache query parameter to the current time in
	// milliseconds before sending.
	CacheBusting bool

	// CacheInLocalStorage serves the response from the store when present
	// and stores successful responses.
	CacheInLocalStorage bool

	// RetryCount is the number of retries after the first attempt.
	// Zero or negative disables retries.
	RetryCount int

	// Header and Body are passed to the transport unmodified. Header values
	// replace the client's default headers of the same name.
	Header http.Header
	Body   []byte
}

// CacheKey returns the store key for rawURL.
func CacheKey(rawURL string) string {
	return CacheKeyPrefix + rawURL
}

// BustURL returns rawURL with the nocache query parameter set to the Unix
// time of now in milliseconds. The first existing nocache pair is replaced in
// place and any others dropped; all other pairs keep their order and encoding.
func BustURL(rawURL string, now time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	bust := CacheBustParam + "=" + strconv.FormatInt(now.UnixMilli(), 10)

	var pairs []string
	replaced := false
	if u.RawQuery != "" {
		for _, pair := range strings.Split(u.RawQuery, "&") {
			name, _, _ := strings.Cut(pair, "=")
			if key, err := url.QueryUnescape(name); err == nil && key == CacheBustParam {
				if !replaced {
					pairs = append(pairs, bust)
					replaced = true
				}
				continue
			}
			pairs = append(pairs, pair)
		}
	}
	if !replaced {
		pairs = append(pairs, bust)
	}
	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	return u.String(), nil
}
