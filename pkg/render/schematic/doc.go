// Package schematic renders the pipe network of a plant scene as a
// Graphviz diagram.
//
// # Usage
//
// Convert a scene to DOT, then render to SVG:
//
//	dot := schematic.ToDOT(s, schematic.Options{})
//	svg, err := schematic.RenderSVG(ctx, dot)
//
// The generated DOT lays the tanks out left to right in pipe order. Each
// node is a cylinder labelled with its index and, when [Options.Detailed] is
// set, its radius and height. Each edge carries the pipe diameter.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package schematic
