package httputil

import (
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	if got := CacheKey("https://example.com/a"); got != "http-request: https://example.com/a" {
		t.Errorf("CacheKey() = %q", got)
	}
}

func TestBustURL(t *testing.T) {
	now := time.UnixMilli(1_712_345_678_901)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no query", "https://example.com/a", "https://example.com/a?nocache=1712345678901"},
		{"keeps query", "https://example.com/a?ref=master", "https://example.com/a?ref=master&nocache=1712345678901"},
		{"keeps order and raw pairs", "https://h/p?z=1&a=2&flag", "https://h/p?z=1&a=2&flag&nocache=1712345678901"},
		{"keeps encoding", "https://h/p?q=a%20b&x=%2F", "https://h/p?q=a%20b&x=%2F&nocache=1712345678901"},
		{"overwrites", "https://example.com/a?nocache=1", "https://example.com/a?nocache=1712345678901"},
		{"overwrites in place", "https://h/p?a=1&nocache=5&b=2&nocache=6", "https://h/p?a=1&nocache=1712345678901&b=2"},
		{"empty query", "https://h/p?", "https://h/p?nocache=1712345678901"},
		{"keeps fragment", "https://example.com/a#x", "https://example.com/a?nocache=1712345678901#x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BustURL(tt.in, now)
			if err != nil {
				t.Fatalf("BustURL() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BustURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBustURLInvalid(t *testing.T) {
	if _, err := BustURL("://bad", time.Now()); err == nil {
		t.Error("BustURL() should fail for an unparseable URL")
	}
}
