package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/rokucommunity/release-dashboard/pkg/integrations/github"
	"github.com/rokucommunity/release-dashboard/pkg/observability"
	"github.com/rokucommunity/release-dashboard/pkg/projects"
)

// DefaultConcurrency is the number of projects fetched at once.
const DefaultConcurrency = 4

// Source provides repository data. [github.Client] implements it.
type Source interface {
	PackageJSON(ctx context.Context, owner, repo, ref string, immutable bool) (*github.PackageJSON, error)
	LatestRelease(ctx context.Context, owner, repo string) (*github.Release, error)
	Compare(ctx context.Context, owner, repo, base, head string) (*github.Comparison, error)
}

// ProgressFunc is called after each project is fetched.
type ProgressFunc func(done, total int, s *ProjectStatus)

// Collector gathers release state for every project in a registry.
type Collector struct {
	reg         *projects.Registry
	src         Source
	concurrency int
	logger      *log.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithConcurrency limits how many projects are fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-project failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollector creates a Collector for reg reading from src.
func NewCollector(reg *projects.Registry, src Source, opts ...Option) *Collector {
	c := &Collector{
		reg:         reg,
		src:         src,
		concurrency: DefaultConcurrency,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry being collected.
func (c *Collector) Registry() *projects.Registry { return c.reg }

// Collect fetches every project and returns their statuses in release
// order. A failing project is reported through its Err field; Collect
// itself fails only when ctx ends.
func (c *Collector) Collect(ctx context.Context, onProgress ProgressFunc) ([]*ProjectStatus, error) {
	start := time.Now()
	all := c.reg.Projects()
	hooks := observability.Dashboard()
	hooks.OnCollectStart(ctx, len(all))

	byKey := make(map[string]*ProjectStatus, len(all))
	released := make(map[string]*github.PackageJSON, len(all))
	for _, p := range all {
		byKey[p.Key()] = &ProjectStatus{Project: p}
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, p := range all {
		s := byKey[p.Key()]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			pkg, err := c.fetch(gctx, s)
			s.Duration = time.Since(t)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.Err = err
				c.logger.Warn("project fetch failed", "project", s.Key(), "err", err)
			}
			hooks.OnProjectComplete(gctx, s.Key(), s.Duration, s.Err)

			mu.Lock()
			released[s.Key()] = pkg
			done++
			n := done
			mu.Unlock()
			if onProgress != nil {
				onProgress(n, len(all), s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range all {
		s := byKey[p.Key()]
		if s.Err == nil {
			s.Dependencies = c.dependencies(p, released[p.Key()], byKey)
		}
		s.finish()
	}

	out := make([]*ProjectStatus, 0, len(all))
	for _, tier := range c.reg.ReleaseOrder() {
		for _, key := range tier {
			out = append(out, byKey[key])
		}
	}
	hooks.OnCollectComplete(ctx, len(out), time.Since(start))
	return out, nil
}

// fetch fills the repository data of s and returns the package.json
// shipped with the latest release, if any.
func (c *Collector) fetch(ctx context.Context, s *ProjectStatus) (*github.PackageJSON, error) {
	p := s.Project

	head, err := c.src.PackageJSON(ctx, p.Owner, p.Repository, p.Branch, false)
	if err != nil {
		return nil, fmt.Errorf("%s package.json: %w", p.Branch, err)
	}
	s.CurrentVersion = head.Version

	rel, err := c.src.LatestRelease(ctx, p.Owner, p.Repository)
	if err != nil {
		return nil, fmt.Errorf("latest release: %w", err)
	}
	if rel == nil {
		return nil, nil
	}
	s.LatestRelease = rel

	pkg, err := c.src.PackageJSON(ctx, p.Owner, p.Repository, rel.TagName, true)
	if err != nil {
		return nil, fmt.Errorf("%s package.json: %w", rel.TagName, err)
	}

	cmp, err := c.src.Compare(ctx, p.Owner, p.Repository, rel.TagName, p.Branch)
	if err != nil {
		return nil, fmt.Errorf("compare %s...%s: %w", rel.TagName, p.Branch, err)
	}
	s.AheadBy = cmp.AheadBy
	for _, commit := range cmp.Commits {
		s.Changes = append(s.Changes, Change{SHA: commit.SHA, Summary: commit.Summary(), URL: commit.HTMLURL})
	}
	return pkg, nil
}

func (c *Collector) dependencies(p projects.Project, released *github.PackageJSON, byKey map[string]*ProjectStatus) []DependencyStatus {
	keys := c.reg.DependencyKeys(p.Key())
	out := make([]DependencyStatus, 0, len(keys))
	for i, key := range keys {
		d := DependencyStatus{Name: p.Dependencies[i].Name, Key: key}
		d.ReleasedWith, _ = released.DependencyRange(d.Name)
		if dep := byKey[key]; dep != nil {
			d.Latest = dep.CurrentVersion
		}
		d.Outdated = Outdated(d.ReleasedWith, d.Latest)
		out = append(out, d)
	}
	return out
}
