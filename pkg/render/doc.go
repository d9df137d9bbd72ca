// Package render draws the project dependency graph.
//
// # Overview
//
// [ToDOT] turns a [projects.Registry] into Graphviz DOT source, one box per
// project and an arrow from each project to the projects it depends on.
// When statuses are supplied each box is filled by its release state:
//
//   - green: released and up to date
//   - amber: a release is required
//   - red: the project could not be fetched
//   - white: no status known
//
// [RenderSVG] lays the graph out in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
//
//	dot := render.ToDOT(reg, statuses, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [projects.Registry]: github.com/rokucommunity/release-dashboard/pkg/projects.Registry
package render
