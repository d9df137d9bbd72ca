package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// Failed projects are logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that write to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

// Register installs h for HTTP, cache and dashboard events.
func (h *LogHooks) Register() {
	SetHTTPHooks(h)
	SetCacheHooks(h)
	SetDashboardHooks(h)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", statusCode, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnRetry(_ context.Context, method, host, path string, remaining int, delay time.Duration) {
	h.logger.Debug("http retry", "method", method, "host", host, "path", path,
		"remaining", remaining, "delay", delay)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnCollectStart(_ context.Context, projects int) {
	h.logger.Debug("collecting release status", "projects", projects)
}

func (h *LogHooks) OnProjectComplete(_ context.Context, project string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("project status failed", "project", project, "err", err)
		return
	}
	h.logger.Debug("project status", "project", project, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCollectComplete(_ context.Context, projects int, d time.Duration) {
	h.logger.Debug("collected release status", "projects", projects, "took", d.Round(time.Millisecond))
}

var (
	_ HTTPHooks      = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ DashboardHooks = (*LogHooks)(nil)
)
