package projects

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidProject is returned when a project lacks a name, owner or
	// repository.
	ErrInvalidProject = errors.New("invalid project")

	// ErrDuplicateProject is returned when two projects share a key.
	ErrDuplicateProject = errors.New("duplicate project")

	// ErrUnknownDependency is returned when a dependency does not resolve to
	// a registry project.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrCycle is returned when the dependency graph contains a cycle.
	ErrCycle = errors.New("dependency cycle")
)

//go:embed registry.toml
var defaultRegistry []byte

// Registry is a validated, read-only set of projects.
type Registry struct {
	projects []Project
	index    map[string]int
	deps     map[string][]string // key -> resolved dependency keys
}

type registryFile struct {
	Projects []Project `toml:"project"`
}

// Default returns the built-in RokuCommunity registry.
func Default() *Registry {
	r, err := Parse(defaultRegistry)
	if err != nil {
		panic(fmt.Sprintf("projects: embedded registry: %v", err))
	}
	return r
}

// Load reads a TOML registry from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a TOML registry.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return New(f.Projects)
}

// New validates projects and builds a registry. Project order is kept.
func New(projects []Project) (*Registry, error) {
	r := &Registry{
		projects: make([]Project, 0, len(projects)),
		index:    make(map[string]int, len(projects)),
		deps:     make(map[string][]string, len(projects)),
	}

	for _, p := range projects {
		p = p.normalize()
		if strings.TrimSpace(p.Name) == "" || p.Owner == "" || p.Repository == "" {
			return nil, fmt.Errorf("%w: %q needs name, owner and repository", ErrInvalidProject, p.Name)
		}
		if _, dup := r.index[p.Key()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, p.Key())
		}
		r.index[p.Key()] = len(r.projects)
		r.projects = append(r.projects, p)
	}

	for _, p := range r.projects {
		keys := make([]string, 0, len(p.Dependencies))
		for _, d := range p.Dependencies {
			dep, ok := r.Resolve(p, d)
			if !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, p.Key(), Key(d.Name, d.ReleaseLine))
			}
			keys = append(keys, dep.Key())
		}
		r.deps[p.Key()] = keys
	}

	if err := r.checkCycles(); err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of projects.
func (r *Registry) Len() int { return len(r.projects) }

// Projects returns a copy of the projects in registry order.
func (r *Registry) Projects() []Project {
	return slices.Clone(r.projects)
}

// Get returns the project with the given key.
func (r *Registry) Get(key string) (Project, bool) {
	i, ok := r.index[key]
	if !ok {
		return Project{}, false
	}
	return r.projects[i], true
}

// Lookup returns the project with the given name on the given release line.
// An empty line means [DefaultReleaseLine].
func (r *Registry) Lookup(name, line string) (Project, bool) {
	return r.Get(Key(name, line))
}

// Resolve finds the project a dependency of p refers to. A dependency with a
// release line must match it exactly; otherwise p's own line is tried first,
// then [DefaultReleaseLine].
func (r *Registry) Resolve(p Project, d Dependency) (Project, bool) {
	if d.ReleaseLine != "" {
		return r.Lookup(d.Name, d.ReleaseLine)
	}
	if dep, ok := r.Lookup(d.Name, p.ReleaseLine); ok {
		return dep, true
	}
	return r.Lookup(d.Name, DefaultReleaseLine)
}

// DependencyKeys returns the resolved keys of the project's dependencies in
// declaration order.
func (r *Registry) DependencyKeys(key string) []string {
	return slices.Clone(r.deps[key])
}

// Dependents returns the keys of projects that depend on key, sorted.
func (r *Registry) Dependents(key string) []string {
	var out []string
	for _, p := range r.projects {
		if slices.Contains(r.deps[p.Key()], key) {
			out = append(out, p.Key())
		}
	}
	slices.Sort(out)
	return out
}

// Edge is a dependency relation between two project keys.
type Edge struct {
	From string // dependent
	To   string // dependency
}

// Edges returns every dependency edge in registry order.
func (r *Registry) Edges() []Edge {
	var out []Edge
	for _, p := range r.projects {
		for _, to := range r.deps[p.Key()] {
			out = append(out, Edge{From: p.Key(), To: to})
		}
	}
	return out
}

// ReleaseOrder groups project keys into tiers. Tier 0 has no dependencies
// and every project in tier n depends on at least one project in tier n-1.
// Keys are sorted within a tier.
func (r *Registry) ReleaseOrder() [][]string {
	depth := make(map[string]int, len(r.projects))
	var visit func(key string) int
	visit = func(key string) int {
		if d, ok := depth[key]; ok {
			return d
		}
		d := 0
		for _, dep := range r.deps[key] {
			d = max(d, visit(dep)+1)
		}
		depth[key] = d
		return d
	}

	var tiers [][]string
	for _, p := range r.projects {
		d := visit(p.Key())
		for len(tiers) <= d {
			tiers = append(tiers, nil)
		}
		tiers[d] = append(tiers[d], p.Key())
	}
	for _, t := range tiers {
		slices.Sort(t)
	}
	return tiers
}

// checkCycles runs a depth-first search with white/gray/black colouring.
func (r *Registry) checkCycles() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(r.projects))
	var path []string

	var visit func(key string) error
	visit = func(key string) error {
		color[key] = gray
		path = append(path, key)
		for _, dep := range r.deps[key] {
			switch color[dep] {
			case gray:
				start := slices.Index(path, dep)
				cycle := append(slices.Clone(path[start:]), dep)
				return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[key] = black
		return nil
	}

	for _, p := range r.projects {
		if color[p.Key()] == white {
			if err := visit(p.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}
