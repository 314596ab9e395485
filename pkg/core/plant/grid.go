package plant

import "math"

// compactMaxCols caps the width of compact grids.
const compactMaxCols = 3

// Grid is the row/column shape a layout is placed on. Rows*Cols is at least
// the tank count; trailing cells of the last row may stay empty.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the number of grid cells.
func (g Grid) Cells() int { return g.Rows * g.Cols }

// PlanGrid chooses the grid for n tanks. Industrial layouts are near-square
// (rows = ⌈√n⌉); compact layouts are at most three columns wide. n is
// clamped into [MinTanks, MaxTanks].
func PlanGrid(n int, style Style) Grid {
	n = min(max(n, MinTanks), MaxTanks)

	if style == StyleIndustrial {
		rows := int(math.Ceil(math.Sqrt(float64(n))))
		return Grid{Rows: rows, Cols: ceilDiv(n, rows)}
	}

	cols := min(compactMaxCols, n)
	return Grid{Rows: ceilDiv(n, cols), Cols: cols}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
