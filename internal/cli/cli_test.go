package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rokucommunity/release-dashboard/pkg/config"
	"github.com/rokucommunity/release-dashboard/pkg/integrations/github"
	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

func testStatus(name string, state status.State) *status.ProjectStatus {
	return &status.ProjectStatus{
		Project: projects.Project{
			Name:        name,
			Owner:       "rokucommunity",
			Repository:  name,
			ReleaseLine: projects.DefaultReleaseLine,
		},
		State:          state,
		UpdateRequired: state == status.StateUpdateRequired,
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"status", "dashboard", "graph", "projects", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"config", "no-cache", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestLoadConfigNoCache(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(&bytes.Buffer{}, LogInfo)
	c.noCache = true
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != config.BackendNone {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, config.BackendNone)
	}
}

func TestLoadRegistryDefault(t *testing.T) {
	reg, err := loadRegistry(config.Default())
	if err != nil {
		t.Fatalf("loadRegistry: %v", err)
	}
	if reg.Len() != projects.Default().Len() {
		t.Errorf("Len() = %d, want %d", reg.Len(), projects.Default().Len())
	}
}

func TestFilterStatuses(t *testing.T) {
	statuses := []*status.ProjectStatus{
		testStatus("roku-deploy", status.StateUpToDate),
		testStatus("brighterscript", status.StateUpdateRequired),
		testStatus("bslint", status.StateUpdateRequired),
	}

	tests := []struct {
		name         string
		key          string
		onlyOutdated bool
		want         []string
	}{
		{"all", "", false, []string{"roku-deploy@master", "brighterscript@master", "bslint@master"}},
		{"outdated", "", true, []string{"brighterscript@master", "bslint@master"}},
		{"by key", "bslint@master", false, []string{"bslint@master"}},
		{"key up to date", "roku-deploy@master", true, nil},
		{"unknown key", "nope@master", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterStatuses(statuses, tt.key, tt.onlyOutdated)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d statuses, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Key() != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, s.Key(), tt.want[i])
				}
			}
		})
	}
}

func TestStatusRow(t *testing.T) {
	s := testStatus("brighterscript", status.StateUpdateRequired)
	s.CurrentVersion = "0.65.0"
	s.LatestRelease = &github.Release{TagName: "v0.65.0"}
	s.AheadBy = 3
	s.Dependencies = []status.DependencyStatus{
		{Name: "roku-deploy", ReleasedWith: "^3.10.0", Latest: "3.11.0", Outdated: true},
		{Name: "@rokucommunity/logger", ReleasedWith: "^0.3.3", Latest: "0.3.3"},
	}

	row := statusRow(s)
	if len(row) != 6 {
		t.Fatalf("row has %d columns, want 6", len(row))
	}
	if row[1] != "brighterscript@master" || row[2] != "0.65.0" || row[3] != "v0.65.0" || row[4] != "3" {
		t.Errorf("row = %q", row)
	}
	if !strings.Contains(row[5], "roku-deploy") || strings.Contains(row[5], "logger") {
		t.Errorf("note = %q, want only the outdated dependency", row[5])
	}
}

func TestStatusRowUnreleased(t *testing.T) {
	s := testStatus("bslib", status.StateUpdateRequired)
	row := statusRow(s)
	if row[2] != "—" || row[3] != "—" || row[4] != "—" {
		t.Errorf("row = %q, want placeholders", row)
	}
}

func TestStatusRowError(t *testing.T) {
	s := testStatus("bslint", status.StateError)
	s.Err = errors.New("boom")
	s.Error = "boom"
	s.LatestRelease = &github.Release{TagName: "v1.0.0"}

	row := statusRow(s)
	if row[4] != "—" {
		t.Errorf("unreleased = %q, want placeholder on error", row[4])
	}
	if row[5] != "boom" {
		t.Errorf("note = %q, want error message", row[5])
	}
}

func TestSummary(t *testing.T) {
	statuses := []*status.ProjectStatus{
		testStatus("a", status.StateUpToDate),
		testStatus("b", status.StateUpdateRequired),
		testStatus("c", status.StateUpdateRequired),
		testStatus("d", status.StateError),
		testStatus("e", status.StateUnknown),
	}
	up, updates, failed := summary(statuses)
	if up != 1 || updates != 2 || failed != 1 {
		t.Errorf("summary = (%d, %d, %d), want (1, 2, 1)", up, updates, failed)
	}
}

func TestStatusTable(t *testing.T) {
	out := statusTable([]*status.ProjectStatus{testStatus("roku-deploy", status.StateUpToDate)})
	for _, want := range []string{"roku-deploy@master", "Project"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestDescribeCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name string
		cfg  config.Cache
		want string
	}{
		{"file", config.Cache{Backend: config.BackendFile}, "/tmp/xdg-cache/release-dashboard"},
		{"redis", config.Cache{Backend: config.BackendRedis, Redis: config.Redis{Addr: "localhost:6379", DB: 2, Prefix: "rd:"}}, `redis://localhost:6379/2 (prefix "rd:")`},
		{"mongo", config.Cache{Backend: config.BackendMongo, Mongo: config.Mongo{Database: "db", Collection: "c"}}, "mongo db.c"},
		{"memory", config.Cache{Backend: config.BackendMemory}, "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeCache(tt.cfg); got != tt.want {
				t.Errorf("describeCache() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if redact("") != "" {
		t.Error("empty secret should stay empty")
	}
	if got := redact("ghp_secret"); strings.Contains(got, "secret") {
		t.Errorf("redact leaked secret: %q", got)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

// releasedSource reports every project as released at v1.0.0 with no changes.
type releasedSource struct{}

func (releasedSource) PackageJSON(ctx context.Context, owner, repo, ref string, immutable bool) (*github.PackageJSON, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &github.PackageJSON{Name: repo, Version: "1.0.0"}, nil
}

func (releasedSource) LatestRelease(ctx context.Context, owner, repo string) (*github.Release, error) {
	return &github.Release{TagName: "v1.0.0"}, ctx.Err()
}

func (releasedSource) Compare(ctx context.Context, owner, repo, base, head string) (*github.Comparison, error) {
	return &github.Comparison{}, ctx.Err()
}

func TestCollect(t *testing.T) {
	reg := projects.Default()
	collector := status.NewCollector(reg, releasedSource{})

	for _, interactive := range []bool{false, true} {
		statuses, err := collect(context.Background(), collector, interactive)
		if err != nil {
			t.Fatalf("collect(interactive=%v): %v", interactive, err)
		}
		if len(statuses) != reg.Len() {
			t.Errorf("collect(interactive=%v) = %d statuses, want %d", interactive, len(statuses), reg.Len())
		}
	}
}

func TestCollectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := status.NewCollector(projects.Default(), releasedSource{})
	for _, interactive := range []bool{false, true} {
		if _, err := collect(ctx, collector, interactive); !errors.Is(err, context.Canceled) {
			t.Errorf("collect(interactive=%v) error = %v, want context.Canceled", interactive, err)
		}
	}
}
