package plan

import (
	"bytes"
	"fmt"

	"github.com/plantforge/plantforge/pkg/scene"
)

// DefaultScale is the number of SVG pixels per world unit.
const DefaultScale = 24.0

const planCSS = `
    .tank { stroke: #f8fafc; stroke-width: 1.5; }
    .pipe { stroke-linecap: round; opacity: 0.9; }
    .label { font-family: ui-sans-serif, system-ui, sans-serif; fill: #f8fafc; text-anchor: middle; dominant-baseline: central; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
}

// WithScale sets pixels per world unit. Non-positive values are ignored.
func WithScale(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithLabels toggles tank index labels.
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// RenderSVG draws the scene in plan view.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	half := s.Platform.HalfSize
	if half <= 0 {
		half = scene.MinPlatformHalf
	}
	size := 2 * half * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		size, size, size, size)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", planCSS)

	platform := s.Platform.Color
	if platform == "" {
		platform = scene.ColorPlatform
	}
	fmt.Fprintf(&buf, `  <rect class="platform" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", size, size, platform)

	// World origin sits in the centre of the platform.
	px := func(v float64) float64 { return (v + half) * r.scale }

	buf.WriteString("  <g class=\"pipes\">\n")
	for _, p := range s.Pipes {
		fmt.Fprintf(&buf, `    <line class="pipe" id="pipe-%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			p.From, px(p.Start[0]), px(p.Start[2]), px(p.End[0]), px(p.End[2]), colorOr(p.Color, scene.ColorPipe), 2*p.Radius*r.scale)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"tanks\">\n")
	for _, t := range s.Tanks {
		fmt.Fprintf(&buf, `    <circle class="tank" id="tank-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"><title>tank %d: r=%.2f h=%.2f</title></circle>`+"\n",
			t.Index, px(t.Position[0]), px(t.Position[2]), t.Radius*r.scale,
			colorOr(t.Color, scene.TankColor(s.Params.LayoutType)), t.Index+1, t.Radius, t.Height)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		buf.WriteString("  <g class=\"labels\">\n")
		for _, t := range s.Tanks {
			fmt.Fprintf(&buf, `    <text class="label" x="%.2f" y="%.2f" font-size="%.1f">%d</text>`+"\n",
				px(t.Position[0]), px(t.Position[2]), t.Radius*r.scale, t.Index+1)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}
