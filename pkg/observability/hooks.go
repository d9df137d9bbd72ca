// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults are
// no-ops. Consumers register their own implementations once at startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.HTTP().OnRequest(ctx, method, host, path)
//	// ... send request ...
//	observability.HTTP().OnResponse(ctx, method, host, path, status, duration)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Dashboard Hooks
// =============================================================================

// DashboardHooks receives events from release status collection.
type DashboardHooks interface {
	OnCollectStart(ctx context.Context, projects int)
	OnProjectComplete(ctx context.Context, project string, duration time.Duration, err error)
	OnCollectComplete(ctx context.Context, projects int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from response cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure.
	OnError(ctx context.Context, method, host, path string, err error)

	// OnRetry records a scheduled retry and the delay before it.
	OnRetry(ctx context.Context, method, host, path string, remaining int, delay time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDashboardHooks is a no-op implementation of DashboardHooks.
type NoopDashboardHooks struct{}

func (NoopDashboardHooks) OnCollectStart(context.Context, int)                             {}
func (NoopDashboardHooks) OnProjectComplete(context.Context, string, time.Duration, error) {}
func (NoopDashboardHooks) OnCollectComplete(context.Context, int, time.Duration)           {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}
func (NoopHTTPHooks) OnRetry(context.Context, string, string, string, int, time.Duration)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry is swapped as a whole so readers never see a partial update.
type registry struct {
	dashboard DashboardHooks
	cache     CacheHooks
	http      HTTPHooks
}

var (
	current atomic.Pointer[registry]
	setMu   sync.Mutex
)

func init() { Reset() }

// update copies the current registry, applies fn and publishes the copy.
func update(fn func(r *registry)) {
	setMu.Lock()
	defer setMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetDashboardHooks registers dashboard hooks. Nil is ignored.
func SetDashboardHooks(h DashboardHooks) {
	if h != nil {
		update(func(r *registry) { r.dashboard = h })
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Dashboard returns the registered dashboard hooks, or no-ops.
func Dashboard() DashboardHooks { return current.Load().dashboard }

// Cache returns the registered cache hooks, or no-ops.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks, or no-ops.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	current.Store(&registry{
		dashboard: NoopDashboardHooks{},
		cache:     NoopCacheHooks{},
		http:      NoopHTTPHooks{},
	})
}
