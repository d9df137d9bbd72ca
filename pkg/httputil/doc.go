// Package httputil provides the HTTP request layer used by every hosting API
// call the dashboard makes.
//
// # Overview
//
// [Client] issues requests described by [RequestOptions] and returns the
// response body as text. Each option is independent:
//
//   - CacheInLocalStorage: read-through / write-through caching in a
//     [cache.Store], keyed by "http-request: " + URL
//   - CacheBusting: sets a "nocache" query parameter to the current time in
//     milliseconds so that browsers, CDNs and proxies see a unique URL
//   - RetryCount: how many times a failed request is issued again, with a
//     uniformly random delay in [0, 100ms) before each retry
//
// The cache lookup always uses the URL as given, before cache-busting, so
// cache-busted requests still share one cache entry.
//
// # Request lifecycle
//
//	START → CACHE_CHECK ─hit──────────────────────────────→ DONE
//	                   └miss→ URL_REWRITE → SEND ─ok→ CACHE_WRITE → DONE
//	                                             └fail→ retries left? ─yes→ START
//	                                                                 └no──→ FAILED
//
// Every retry starts over from the original options: the cache is consulted
// again and a fresh cache-busting value is computed.
//
// # Errors
//
// Transport failures are reported as [*TransportError] and non-2xx responses
// as [*StatusError]. Both are retried the same way. When retries are
// exhausted the last error is returned as-is. The cache is never written for
// a failed request.
//
// # Concurrency
//
// A Client keeps no per-request state and may be shared between goroutines.
// Concurrent requests for the same URL are not deduplicated; whichever
// finishes last owns the cache entry.
//
// [cache.Store]: github.com/rokucommunity/release-dashboard/pkg/cache.Store
package httputil
