package plant

// Place positions n tanks of the given size on grid, row-major, centered on
// the origin. It stops as soon as n tanks are placed, leaving trailing cells
// of the last row empty.
func Place(grid Grid, n int, spacing float64, size TankSize) []Tank {
	n = min(n, grid.Cells())
	if n <= 0 {
		return nil
	}

	startX := -float64(grid.Cols-1) * spacing / 2
	startZ := -float64(grid.Rows-1) * spacing / 2
	y := size.Height / 2

	tanks := make([]Tank, 0, n)
	for r := 0; r < grid.Rows && len(tanks) < n; r++ {
		for c := 0; c < grid.Cols && len(tanks) < n; c++ {
			tanks = append(tanks, Tank{
				Position: Vec3{
					X: startX + float64(c)*spacing,
					Y: y,
					Z: startZ + float64(r)*spacing,
				},
				Radius: size.Radius,
				Height: size.Height,
			})
		}
	}
	return tanks
}
