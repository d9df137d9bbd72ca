package render

import (
	"strings"
	"testing"

	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

func testRegistry(t *testing.T) *projects.Registry {
	t.Helper()
	r, err := projects.New([]projects.Project{
		{Name: "lib", Owner: "o", Repository: "lib"},
		{Name: "lib", Owner: "o", Repository: "lib", ReleaseLine: "v1"},
		{Name: "app", Owner: "o", Repository: "app", Dependencies: []projects.Dependency{{Name: "lib"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testRegistry(t), nil, Options{})

	for _, want := range []string{
		"digraph G {",
		`"lib@master" [label="lib", URL="https://github.com/o/lib"];`,
		`"lib@v1" [label="lib (v1)", URL="https://github.com/o/lib"];`,
		`"app@master" -> "lib@master";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "fillcolor=\"#") {
		t.Error("nodes without status should not be filled")
	}
}

func TestToDOTStatuses(t *testing.T) {
	reg := testRegistry(t)
	lib, _ := reg.Lookup("lib", "")
	app, _ := reg.Lookup("app", "")
	statuses := []*status.ProjectStatus{
		{Project: lib, CurrentVersion: "1.2.0", State: status.StateUpToDate},
		{Project: app, CurrentVersion: "0.3.0", AheadBy: 4, State: status.StateUpdateRequired},
	}

	dot := ToDOT(reg, statuses, Options{Detailed: true})

	for _, want := range []string{
		`label="lib\nversion: 1.2.0\nup-to-date"`,
		`fillcolor="#c8e6c9"`,
		`label="app\nversion: 0.3.0\nunreleased: 4\nupdate-required"`,
		`fillcolor="#ffe0b2"`,
		`"lib@v1" [label="lib (v1)", URL="https://github.com/o/lib"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestFillColor(t *testing.T) {
	tests := []struct {
		state status.State
		want  string
	}{
		{status.StateUpToDate, "#c8e6c9"},
		{status.StateUpdateRequired, "#ffe0b2"},
		{status.StateError, "#ffcdd2"},
		{status.StateUnknown, "white"},
		{"", "white"},
	}
	for _, tt := range tests {
		if got := FillColor(tt.state); got != tt.want {
			t.Errorf("FillColor(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
