package pipeline

import (
	"context"
	"fmt"

	"github.com/plantforge/plantforge/pkg/render"
	"github.com/plantforge/plantforge/pkg/render/plan"
	"github.com/plantforge/plantforge/pkg/render/schematic"
	"github.com/plantforge/plantforge/pkg/scene"
)

// Render generates output artifacts for a scene in the requested formats.
func Render(ctx context.Context, s scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// Plan SVG and the DOT source are shared by several formats.
	var planSVG []byte
	planView := func() []byte {
		if planSVG == nil {
			planSVG = plan.RenderSVG(s, plan.WithScale(opts.Scale), plan.WithLabels(opts.Labels))
		}
		return planSVG
	}
	dot := func() string {
		return schematic.ToDOT(s, schematic.Options{Detailed: opts.Detailed})
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = scene.MarshalScene(s)
		case FormatMsgpack:
			data, err = scene.MarshalMsgpack(s)
		case FormatSVG:
			data = planView()
		case FormatDOT:
			data = []byte(dot())
		case FormatSchematic:
			data, err = schematic.RenderSVG(ctx, dot())
		case FormatPNG:
			data, err = render.ToPNG(ctx, planView(), DefaultPNGZoom)
		case FormatPDF:
			data, err = render.ToPDF(ctx, planView())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
