// Package pkg provides the libraries behind release-dashboard.
//
// # Overview
//
// release-dashboard answers one question for the RokuCommunity organization:
// which projects need a new release, and in what order should they be cut?
// The pkg directory is organized into four areas:
//
//  1. [projects] - The registry of projects and the dependency edges between them
//  2. [httputil] and [cache] - Cached, retrying HTTP requests
//  3. [integrations/github] - The GitHub REST and raw content endpoints
//  4. [status] and [render] - Release state and its visualization
//
// # Architecture
//
// The typical data flow:
//
//	Registry (projects.toml)
//	         ↓
//	    [status] collector (phase 1: fetch, phase 2: compare)
//	         ↓
//	    [integrations/github] → [httputil] → [cache] store
//	         ↓
//	    table / dashboard / DOT / SVG / JSON
//
// # Quick Start
//
//	store := cache.NewMemoryStore()
//	gh := github.NewClient(store, github.Config{Retries: 3})
//	collector := status.NewCollector(projects.Default(), gh)
//
//	statuses, err := collector.Collect(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	for _, s := range statuses {
//	    fmt.Println(s.Key(), s.State)
//	}
//
// # Main Packages
//
// [httputil] - Request wrapper that checks and populates a [cache.Store],
// appends a cache-busting parameter to mutable URLs and retries failures with
// jitter.
//
// [cache] - Key/value stores for response bodies: file (CLI default), memory,
// Redis and MongoDB.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors mapped to HTTP status codes for the API server.
//
// [observability] - Hook points for collection, cache and HTTP events.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include tests against api.github.com
//
// [projects]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/projects
// [httputil]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/httputil
// [cache]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/cache
// [cache.Store]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/cache#Store
// [config]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/observability
// [integrations/github]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/integrations/github
// [status]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/status
// [render]: https://pkg.go.dev/github.com/rokucommunity/release-dashboard/pkg/render
package pkg
