package plant_test

import (
	"fmt"

	"github.com/plantforge/plantforge/pkg/core/plant"
)

func ExampleBuild() {
	l := plant.Build(plant.Params{
		FlowRate:      100,
		NumberOfTanks: 4,
		PipeDiameter:  50,
		Style:         plant.StyleCompact,
	})

	fmt.Printf("grid %dx%d, spacing %.1f\n", l.Grid.Rows, l.Grid.Cols, l.Spacing)
	for _, t := range l.Tanks {
		fmt.Printf("tank at (%.1f, %.2f, %.1f) r=%.2f\n", t.Position.X, t.Position.Y, t.Position.Z, t.Radius)
	}
	fmt.Printf("%d pipes, radius %.2f\n", len(l.Pipes), l.Pipes[0].Radius)
	// Output:
	// grid 2x3, spacing 2.0
	// tank at (-2.0, 0.77, -1.0) r=0.80
	// tank at (0.0, 0.77, -1.0) r=0.80
	// tank at (2.0, 0.77, -1.0) r=0.80
	// tank at (-2.0, 0.77, 1.0) r=0.80
	// 3 pipes, radius 0.25
}

func ExampleCompute() {
	l, err := plant.Compute(plant.RawParams{
		FlowRate:      600,
		NumberOfTanks: 30,
		PipeDiameter:  5,
		LayoutType:    "industrial",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(l.Tanks), l.Grid.Rows, l.Grid.Cols)
	fmt.Printf("%.2f %.2f %.2f\n", l.Tanks[0].Radius, l.Tanks[0].Height, l.Pipes[0].Radius)
	// Output:
	// 20 5 4
	// 1.20 2.40 0.08
}
