// Package buildinfo holds the version stamped into release-dashboard builds.
//
//	go build -ldflags "-X github.com/rokucommunity/release-dashboard/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/rokucommunity/release-dashboard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/rokucommunity/release-dashboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set by ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template is the cobra version template. {{.Name}} is filled by cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies this build to GitHub, e.g. "release-dashboard/v1.4.0".
func UserAgent(app string) string {
	return app + "/" + Version
}
