// Package github reads release data for a repository from GitHub.
//
// # Overview
//
// The dashboard needs three things per project: the package.json on a ref,
// the latest published release, and the commits between that release and
// the tracked branch. All requests go through an [httputil.Client], so they
// share its cache and retry behavior.
//
// # Usage
//
//	store, _ := cache.NewFileStore("")
//	client := github.NewClient(store, github.Config{Retries: 3})
//
//	rel, err := client.LatestRelease(ctx, "rokucommunity", "brighterscript")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pkg, err := client.PackageJSON(ctx, "rokucommunity", "brighterscript", rel.TagName, true)
//
// # Caching
//
// Branch contents and API responses change over time, so they are always
// fetched with cache busting. Files at a tag never change and are written
// through to the store; pass immutable=true for tag refs.
//
// # Rate limits
//
// Requests are anonymous, so GitHub allows 60 API calls per hour per
// address. A 403 or 429 surfaces as an [httputil.StatusError]; nothing
// waits for the limit to reset.
//
// [httputil.Client]: github.com/rokucommunity/release-dashboard/pkg/httputil.Client
package github
