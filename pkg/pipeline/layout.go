package pipeline

import (
	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/scene"
)

// GenerateLayout normalizes the raw parameters and computes the layout and
// its scene. The only error is an unknown style under the "reject" policy.
func GenerateLayout(opts Options) (plant.Layout, scene.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return plant.Layout{}, scene.Scene{}, err
	}
	l, err := plant.Compute(opts.Params, opts.LayoutOptions()...)
	if err != nil {
		return plant.Layout{}, scene.Scene{}, err
	}
	return l, scene.Export(l), nil
}
