// Package render provides visual outputs for plant scenes.
//
// # Overview
//
// The renderers consume a [scene.Scene] and never the core layout directly,
// so anything that can be serialized can be rendered:
//
//   - Plan view: a top-down SVG of the platform, tanks and pipes (in [plan])
//   - Schematic: the pipe network as a Graphviz diagram (in [schematic])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := plan.RenderSVG(s, plan.WithLabels(true))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [scene.Scene]: github.com/plantforge/plantforge/pkg/scene
// [plan]: github.com/plantforge/plantforge/pkg/render/plan
// [schematic]: github.com/plantforge/plantforge/pkg/render/schematic
package render
