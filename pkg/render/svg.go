package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/goccy/go-graphviz"
)

// SVGRenderer lays out DOT graphs with a single Graphviz instance. Creating
// the instance dominates the cost of a small graph, so long-running callers
// such as the API server keep one around. Safe for concurrent use; renders
// are serialized.
type SVGRenderer struct {
	mu sync.Mutex
	gv *graphviz.Graphviz
}

// NewSVGRenderer starts a Graphviz instance. Call Close when done.
func NewSVGRenderer(ctx context.Context) (*SVGRenderer, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	return &SVGRenderer{gv: gv}, nil
}

// Render lays out dot and returns a dashboard-ready SVG: the root element
// scales with its container and project links open in a new tab.
func (r *SVGRenderer) Render(ctx context.Context, dot string) ([]byte, error) {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	r.mu.Lock()
	err = r.gv.Render(ctx, g, graphviz.SVG, &buf)
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return externalLinks(responsiveRoot(buf.Bytes())), nil
}

func (r *SVGRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gv.Close()
}

// RenderSVG renders a single graph with a throwaway renderer.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	r, err := NewSVGRenderer(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Render(ctx, dot)
}

var (
	svgRootRe   = regexp.MustCompile(`<svg\b[^>]*>`)
	sizeAttrRe  = regexp.MustCompile(`\s(?:width|height)="[^"]*"`)
	anchorOpen  = []byte(`<a xlink:href=`)
	anchorBlank = []byte(`<a target="_blank" rel="noopener" xlink:href=`)
)

// responsiveRoot drops the fixed point-based width and height from the root
// element, leaving the viewBox to size the drawing, and tags it for styling.
func responsiveRoot(svg []byte) []byte {
	loc := svgRootRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	root := sizeAttrRe.ReplaceAll(svg[loc[0]:loc[1]], nil)
	root = bytes.Replace(root, []byte("<svg"), []byte(`<svg class="release-graph"`), 1)

	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}

// externalLinks makes the repository links on project nodes open in a new tab.
func externalLinks(svg []byte) []byte {
	return bytes.ReplaceAll(svg, anchorOpen, anchorBlank)
}
