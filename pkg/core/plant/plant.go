package plant

import "math"

// Vec3 is a point in the plant frame (Y up).
type Vec3 struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float64 {
	return math.Sqrt((v.X-w.X)*(v.X-w.X) + (v.Y-w.Y)*(v.Y-w.Y) + (v.Z-w.Z)*(v.Z-w.Z))
}

// Tank is a single cylindrical process tank. Position is the centroid.
type Tank struct {
	Position Vec3
	Radius   float64
	Height   float64
}

// Pipe is a straight segment between two tank centroids.
type Pipe struct {
	Start  Vec3
	End    Vec3
	Radius float64
}

// Length returns the straight-line length of the pipe.
func (p Pipe) Length() float64 { return p.Start.Distance(p.End) }

// Layout is the computed plant arrangement.
type Layout struct {
	// Params are the normalized parameters the layout was built from.
	Params Params
	// Grid is the row/column shape used for placement.
	Grid Grid
	// Spacing is the center-to-center cell distance.
	Spacing float64

	Tanks []Tank
	Pipes []Pipe
}

// PipeLength returns the total length of all pipe segments.
func (l Layout) PipeLength() float64 {
	var sum float64
	for _, p := range l.Pipes {
		sum += p.Length()
	}
	return sum
}

// Footprint returns the horizontal extent of the tank set including tank
// radii, as half-widths along x and z.
func (l Layout) Footprint() (halfX, halfZ float64) {
	for _, t := range l.Tanks {
		halfX = max(halfX, math.Abs(t.Position.X)+t.Radius)
		halfZ = max(halfZ, math.Abs(t.Position.Z)+t.Radius)
	}
	return halfX, halfZ
}

// Option configures Build and Compute.
type Option func(*config)

type config struct {
	tuning Tuning
	policy StylePolicy
}

// WithTuning replaces the default transform constants.
func WithTuning(t Tuning) Option {
	return func(c *config) { c.tuning = t }
}

// WithStylePolicy sets how Compute treats unknown layout styles.
func WithStylePolicy(p StylePolicy) Option {
	return func(c *config) { c.policy = p }
}

func newConfig(opts []Option) config {
	c := config{tuning: DefaultTuning(), policy: DefaultToCompact}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Build computes the layout for already-normalized parameters. Out-of-range
// tank counts and invalid styles are still coerced, so Build never fails.
func Build(p Params, opts ...Option) Layout {
	cfg := newConfig(opts)
	t := cfg.tuning

	p.NumberOfTanks = min(max(p.NumberOfTanks, MinTanks), MaxTanks)
	if !p.Style.Valid() {
		p.Style = DefaultStyle
	}

	grid := PlanGrid(p.NumberOfTanks, p.Style)
	spacing := t.Spacing(p.Style)
	size := SizeTank(p.FlowRate, t)
	tanks := Place(grid, p.NumberOfTanks, spacing, size)
	pipes := RoutePipes(tanks, PipeRadius(p.PipeDiameter, t))

	return Layout{
		Params:  p,
		Grid:    grid,
		Spacing: spacing,
		Tanks:   tanks,
		Pipes:   pipes,
	}
}

// Compute normalizes raw and builds its layout. The only possible error is
// an unknown layout style under WithStylePolicy(RejectUnknown).
func Compute(raw RawParams, opts ...Option) (Layout, error) {
	cfg := newConfig(opts)
	p, err := Normalize(raw, cfg.policy)
	if err != nil {
		return Layout{}, err
	}
	return Build(p, opts...), nil
}
