//go:build integration

package github

import (
	"context"
	"testing"
	"time"

	"github.com/rokucommunity/release-dashboard/pkg/cache"
)

func TestLatestRelease_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := NewClient(cache.NewMemoryStore(), Config{Retries: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rel, err := client.LatestRelease(ctx, "rokucommunity", "roku-deploy")
	if err != nil {
		t.Fatalf("LatestRelease() error: %v", err)
	}
	if rel == nil || rel.TagName == "" {
		t.Fatalf("LatestRelease() = %+v, want a tagged release", rel)
	}

	pkg, err := client.PackageJSON(ctx, "rokucommunity", "roku-deploy", rel.TagName, true)
	if err != nil {
		t.Fatalf("PackageJSON(%s) error: %v", rel.TagName, err)
	}
	if pkg.Name != "roku-deploy" {
		t.Errorf("Name = %q, want roku-deploy", pkg.Name)
	}

	if _, err := client.Compare(ctx, "rokucommunity", "roku-deploy", rel.TagName, "master"); err != nil {
		t.Errorf("Compare() error: %v", err)
	}
}
