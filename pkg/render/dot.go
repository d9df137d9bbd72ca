package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the current version and release state to node labels.
	Detailed bool
}

var fillColors = map[status.State]string{
	status.StateUpToDate:       "#c8e6c9",
	status.StateUpdateRequired: "#ffe0b2",
	status.StateError:          "#ffcdd2",
}

// FillColor returns the node fill color for a release state.
func FillColor(s status.State) string {
	if c, ok := fillColors[s]; ok {
		return c
	}
	return "white"
}

// ToDOT converts the registry to Graphviz DOT. statuses may be nil or
// partial; projects without a status are drawn unfilled.
func ToDOT(reg *projects.Registry, statuses []*status.ProjectStatus, opts Options) string {
	byKey := make(map[string]*status.ProjectStatus, len(statuses))
	for _, s := range statuses {
		byKey[s.Key()] = s
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, p := range reg.Projects() {
		s := byKey[p.Key()]
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, s, opts.Detailed)),
			fmt.Sprintf("URL=%q", p.RepoURL()),
		}
		if s != nil {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", FillColor(s.State)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.Key(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range reg.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p projects.Project, s *status.ProjectStatus, detailed bool) string {
	label := p.Name
	if p.ReleaseLine != projects.DefaultReleaseLine {
		label += " (" + p.ReleaseLine + ")"
	}
	if !detailed || s == nil {
		return label
	}

	var parts []string
	if s.CurrentVersion != "" {
		parts = append(parts, "version: "+s.CurrentVersion)
	}
	if s.AheadBy > 0 {
		parts = append(parts, fmt.Sprintf("unreleased: %d", s.AheadBy))
	}
	parts = append(parts, string(s.State))
	return label + "\n" + strings.Join(parts, "\n")
}
