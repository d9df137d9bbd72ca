package status

import (
	"strings"
	"time"

	"github.com/rokucommunity/release-dashboard/pkg/integrations/github"
	"github.com/rokucommunity/release-dashboard/pkg/projects"
)

// State summarizes a [ProjectStatus].
type State string

const (
	StateUnknown        State = "unknown"
	StateUpToDate       State = "up-to-date"
	StateUpdateRequired State = "update-required"
	StateError          State = "error"
)

// ProjectStatus is the release state of one project.
type ProjectStatus struct {
	Project        projects.Project   `json:"project"`
	CurrentVersion string             `json:"currentVersion,omitempty"`
	LatestRelease  *github.Release    `json:"latestRelease,omitempty"`
	AheadBy        int                `json:"aheadBy"`
	Changes        []Change           `json:"changes,omitempty"`
	Dependencies   []DependencyStatus `json:"dependencies,omitempty"`
	UpdateRequired bool               `json:"updateRequired"`
	State          State              `json:"state"`
	Duration       time.Duration      `json:"-"`
	Err            error              `json:"-"`
	Error          string             `json:"error,omitempty"`
}

// Key returns the project key.
func (s *ProjectStatus) Key() string { return s.Project.Key() }

// Change is an unreleased commit.
type Change struct {
	SHA     string `json:"sha"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// DependencyStatus compares the version of a dependency a project was
// released with to the dependency's current version.
type DependencyStatus struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	ReleasedWith string `json:"releasedWith,omitempty"`
	Latest       string `json:"latest,omitempty"`
	Outdated     bool   `json:"outdated"`
}

// NormalizeVersion strips range operators and a leading "v" so that a range
// such as "^1.2.3" compares equal to the version "1.2.3".
func NormalizeVersion(v string) string {
	return strings.TrimLeft(strings.TrimSpace(v), "^~=v")
}

// Outdated reports whether a project released with releasedWith should be
// rebuilt against latest. Unknown versions are never outdated.
func Outdated(releasedWith, latest string) bool {
	if releasedWith == "" || latest == "" {
		return false
	}
	return NormalizeVersion(releasedWith) != NormalizeVersion(latest)
}

func (s *ProjectStatus) finish() {
	switch {
	case s.Err != nil:
		s.Error = s.Err.Error()
		s.UpdateRequired = false
		s.State = StateError
		return
	case s.LatestRelease == nil || s.AheadBy > 0:
		s.UpdateRequired = true
	default:
		for _, d := range s.Dependencies {
			if d.Outdated {
				s.UpdateRequired = true
				break
			}
		}
	}
	if s.UpdateRequired {
		s.State = StateUpdateRequired
	} else {
		s.State = StateUpToDate
	}
}
