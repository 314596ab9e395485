package scene

import (
	"github.com/plantforge/plantforge/pkg/core/plant"
)

// =============================================================================
// Constants
// =============================================================================

// Renderer colours.
const (
	ColorTankCompact    = "#0369a1"
	ColorTankIndustrial = "#0f172a"
	ColorPipe           = "#0ea5e9"
	ColorPlatform       = "#e2e8f0"
)

// Platform sizing: a square slab centred on the origin, at least
// MinPlatformHalf wide in each direction and grown to keep PlatformMargin of
// clearance around the tanks.
const (
	MinPlatformHalf = 12.0
	PlatformMargin  = 1.0
)

// =============================================================================
// Scene - Serialized Plant Layout
// =============================================================================

// Scene is the canonical serialization format for plant layouts.
type Scene struct {
	Params   Params   `json:"params" bson:"params" msgpack:"params"`
	Grid     Grid     `json:"grid" bson:"grid" msgpack:"grid"`
	Spacing  float64  `json:"spacing" bson:"spacing" msgpack:"spacing"`
	Platform Platform `json:"platform" bson:"platform" msgpack:"platform"`
	Tanks    []Tank   `json:"tanks" bson:"tanks" msgpack:"tanks"`
	Pipes    []Pipe   `json:"pipes" bson:"pipes" msgpack:"pipes"`
	Stats    Stats    `json:"stats" bson:"stats" msgpack:"stats"`
}

// Params echoes the normalized parameters the scene was built from.
type Params struct {
	FlowRate      float64 `json:"flowRate" bson:"flow_rate" msgpack:"flowRate"`
	NumberOfTanks int     `json:"numberOfTanks" bson:"number_of_tanks" msgpack:"numberOfTanks"`
	PipeDiameter  float64 `json:"pipeDiameter" bson:"pipe_diameter" msgpack:"pipeDiameter"`
	LayoutType    string  `json:"layoutType" bson:"layout_type" msgpack:"layoutType"`
}

// Grid is the row/column shape tanks were placed on.
type Grid struct {
	Rows int `json:"rows" bson:"rows" msgpack:"rows"`
	Cols int `json:"cols" bson:"cols" msgpack:"cols"`
}

// Platform is the ground slab under the plant.
type Platform struct {
	HalfSize float64 `json:"halfSize" bson:"half_size" msgpack:"halfSize"`
	Color    string  `json:"color" bson:"color" msgpack:"color"`
}

// Size returns the full edge length of the platform.
func (p Platform) Size() float64 { return 2 * p.HalfSize }

// Tank is a positioned tank. Position is the centroid as [x, y, z].
type Tank struct {
	Index    int        `json:"index" bson:"index" msgpack:"index"`
	Position [3]float64 `json:"position" bson:"position" msgpack:"position"`
	Radius   float64    `json:"radius" bson:"radius" msgpack:"radius"`
	Height   float64    `json:"height" bson:"height" msgpack:"height"`
	Color    string     `json:"color" bson:"color" msgpack:"color"`
}

// Pipe joins tank From to tank To.
type Pipe struct {
	From   int        `json:"from" bson:"from" msgpack:"from"`
	To     int        `json:"to" bson:"to" msgpack:"to"`
	Start  [3]float64 `json:"start" bson:"start" msgpack:"start"`
	End    [3]float64 `json:"end" bson:"end" msgpack:"end"`
	Radius float64    `json:"radius" bson:"radius" msgpack:"radius"`
	Length float64    `json:"length" bson:"length" msgpack:"length"`
	Color  string     `json:"color" bson:"color" msgpack:"color"`
}

// Stats summarizes a scene.
type Stats struct {
	TankCount  int     `json:"tankCount" bson:"tank_count" msgpack:"tankCount"`
	PipeCount  int     `json:"pipeCount" bson:"pipe_count" msgpack:"pipeCount"`
	PipeLength float64 `json:"pipeLength" bson:"pipe_length" msgpack:"pipeLength"`
	// FootprintX and FootprintZ are the full extents of the tank set
	// including radii.
	FootprintX float64 `json:"footprintX" bson:"footprint_x" msgpack:"footprintX"`
	FootprintZ float64 `json:"footprintZ" bson:"footprint_z" msgpack:"footprintZ"`
}

// TankColor returns the tank colour for a layout style.
func TankColor(style string) string {
	if style == string(plant.StyleIndustrial) {
		return ColorTankIndustrial
	}
	return ColorTankCompact
}

// =============================================================================
// Layout → Scene Conversion
// =============================================================================

// Export converts a computed layout to its serialization format.
func Export(l plant.Layout) Scene {
	style := string(l.Params.Style)
	color := TankColor(style)

	s := Scene{
		Params: Params{
			FlowRate:      l.Params.FlowRate,
			NumberOfTanks: l.Params.NumberOfTanks,
			PipeDiameter:  l.Params.PipeDiameter,
			LayoutType:    style,
		},
		Grid:    Grid{Rows: l.Grid.Rows, Cols: l.Grid.Cols},
		Spacing: l.Spacing,
		Tanks:   make([]Tank, len(l.Tanks)),
		Pipes:   make([]Pipe, len(l.Pipes)),
	}

	for i, t := range l.Tanks {
		s.Tanks[i] = Tank{
			Index:    i,
			Position: vec(t.Position),
			Radius:   t.Radius,
			Height:   t.Height,
			Color:    color,
		}
	}
	for i, p := range l.Pipes {
		s.Pipes[i] = Pipe{
			From:   i,
			To:     i + 1,
			Start:  vec(p.Start),
			End:    vec(p.End),
			Radius: p.Radius,
			Length: p.Length(),
			Color:  ColorPipe,
		}
	}

	halfX, halfZ := l.Footprint()
	s.Platform = Platform{
		HalfSize: max(MinPlatformHalf, halfX+PlatformMargin, halfZ+PlatformMargin),
		Color:    ColorPlatform,
	}
	s.Stats = Stats{
		TankCount:  len(s.Tanks),
		PipeCount:  len(s.Pipes),
		PipeLength: l.PipeLength(),
		FootprintX: 2 * halfX,
		FootprintZ: 2 * halfZ,
	}
	return s
}

func vec(v plant.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
