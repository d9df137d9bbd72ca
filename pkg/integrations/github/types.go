package github

import (
	"strings"
	"time"
)

// PackageJSON is the subset of an npm package.json the dashboard reads.
type PackageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// DependencyRange returns the version range declared for name, looking at
// dependencies, devDependencies and peerDependencies in that order.
func (p *PackageJSON) DependencyRange(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, m := range []map[string]string{p.Dependencies, p.DevDependencies, p.PeerDependencies} {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Release is a published GitHub release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// Comparison is the result of comparing two refs.
type Comparison struct {
	Status       string   `json:"status"` // ahead, behind, diverged or identical
	AheadBy      int      `json:"ahead_by"`
	BehindBy     int      `json:"behind_by"`
	TotalCommits int      `json:"total_commits"`
	HTMLURL      string   `json:"html_url"`
	Commits      []Commit `json:"commits"`
}

// Commit is one commit of a [Comparison].
type Commit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	msg, _, _ := strings.Cut(c.Commit.Message, "\n")
	return strings.TrimSpace(msg)
}
