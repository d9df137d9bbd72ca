package projects

import "fmt"

// DefaultReleaseLine is used for projects and dependencies that do not name
// a release line.
const DefaultReleaseLine = "master"

// Project is one package on one release line.
type Project struct {
	Name         string       `toml:"name" json:"name"`
	Owner        string       `toml:"owner" json:"owner"`
	Repository   string       `toml:"repository" json:"repository"`
	ReleaseLine  string       `toml:"release_line" json:"releaseLine"`
	Branch       string       `toml:"branch" json:"branch"`
	Dependencies []Dependency `toml:"dependencies" json:"dependencies"`
}

// Dependency names another registry project. An empty ReleaseLine is
// resolved by [Registry.Resolve].
type Dependency struct {
	Name        string `toml:"name" json:"name"`
	ReleaseLine string `toml:"release_line" json:"releaseLine,omitempty"`
}

// Key identifies the project within a registry.
func (p Project) Key() string { return Key(p.Name, p.ReleaseLine) }

// RepoURL returns the GitHub URL of the project's repository.
func (p Project) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", p.Owner, p.Repository)
}

// Key builds a project key from a package name and release line.
func Key(name, line string) string {
	if line == "" {
		line = DefaultReleaseLine
	}
	return name + "@" + line
}

// normalize fills the release line and branch defaults.
func (p Project) normalize() Project {
	if p.ReleaseLine == "" {
		p.ReleaseLine = DefaultReleaseLine
	}
	if p.Branch == "" {
		p.Branch = p.ReleaseLine
	}
	return p
}
