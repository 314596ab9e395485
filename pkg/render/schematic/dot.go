package schematic

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/plantforge/plantforge/pkg/scene"
)

// Options configures schematic generation.
type Options struct {
	// Detailed adds tank dimensions to node labels.
	Detailed bool
}

// ToDOT converts a scene's pipe network to Graphviz DOT format.
func ToDOT(s scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plant {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=cylinder, style=filled, fontcolor=white, fontsize=14, fillcolor=%q];\n",
		scene.TankColor(s.Params.LayoutType))
	fmt.Fprintf(&buf, "  edge [color=%q, fontsize=11, arrowsize=0.6];\n", scene.ColorPipe)
	buf.WriteString("\n")

	for _, t := range s.Tanks {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID(t.Index), fmtLabel(t, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, p := range s.Pipes {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, penwidth=%.2f];\n",
			nodeID(p.From), nodeID(p.To), fmt.Sprintf("Ø %.2f", 2*p.Radius), penWidth(p.Radius))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "tank" + strconv.Itoa(i) }

func fmtLabel(t scene.Tank, detailed bool) string {
	label := fmt.Sprintf("T%d", t.Index+1)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nr %.2f\nh %.2f", label, t.Radius, t.Height)
}

// penWidth maps a world pipe radius onto a readable stroke width.
func penWidth(radius float64) float64 {
	return 1 + radius*12
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel viewBox so the output scales like the plan renderer's.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
