package plant

import "math"

// Tuning holds every constant of the saturating transforms and grid
// spacing. The zero value is not useful; start from DefaultTuning.
type Tuning struct {
	// Tank radius: BaseRadius + sat(flowRate/RadiusDivisor, RadiusCap).
	BaseRadius    float64 `toml:"base_radius" json:"baseRadius"`
	RadiusDivisor float64 `toml:"radius_divisor" json:"radiusDivisor"`
	RadiusCap     float64 `toml:"radius_cap" json:"radiusCap"`

	// Tank height: BaseHeight + sat(flowRate/HeightDivisor, HeightCap).
	BaseHeight    float64 `toml:"base_height" json:"baseHeight"`
	HeightDivisor float64 `toml:"height_divisor" json:"heightDivisor"`
	HeightCap     float64 `toml:"height_cap" json:"heightCap"`

	// Pipe radius: clamp(pipeDiameter/DiameterDivisor, MinPipeRadius, MaxPipeRadius).
	DiameterDivisor float64 `toml:"diameter_divisor" json:"diameterDivisor"`
	MinPipeRadius   float64 `toml:"min_pipe_radius" json:"minPipeRadius"`
	MaxPipeRadius   float64 `toml:"max_pipe_radius" json:"maxPipeRadius"`

	// Center-to-center distance between adjacent grid cells.
	CompactSpacing    float64 `toml:"compact_spacing" json:"compactSpacing"`
	IndustrialSpacing float64 `toml:"industrial_spacing" json:"industrialSpacing"`
}

// DefaultTuning returns the reference constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseRadius:        0.6,
		RadiusDivisor:     500,
		RadiusCap:         0.6,
		BaseHeight:        1.2,
		HeightDivisor:     300,
		HeightCap:         1.2,
		DiameterDivisor:   100,
		MinPipeRadius:     0.08,
		MaxPipeRadius:     0.25,
		CompactSpacing:    2.0,
		IndustrialSpacing: 3.2,
	}
}

// Merge returns t with every positive field of override applied on top.
// Non-positive override fields are ignored, so a partially filled config
// table only changes what it names.
func (t Tuning) Merge(override Tuning) Tuning {
	set := func(dst *float64, v float64) {
		if v > 0 && !math.IsInf(v, 0) {
			*dst = v
		}
	}
	set(&t.BaseRadius, override.BaseRadius)
	set(&t.RadiusDivisor, override.RadiusDivisor)
	set(&t.RadiusCap, override.RadiusCap)
	set(&t.BaseHeight, override.BaseHeight)
	set(&t.HeightDivisor, override.HeightDivisor)
	set(&t.HeightCap, override.HeightCap)
	set(&t.DiameterDivisor, override.DiameterDivisor)
	set(&t.MinPipeRadius, override.MinPipeRadius)
	set(&t.MaxPipeRadius, override.MaxPipeRadius)
	set(&t.CompactSpacing, override.CompactSpacing)
	set(&t.IndustrialSpacing, override.IndustrialSpacing)
	return t
}

// Spacing returns the grid spacing for style.
func (t Tuning) Spacing(style Style) float64 {
	if style == StyleIndustrial {
		return t.IndustrialSpacing
	}
	return t.CompactSpacing
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// saturate scales v linearly and caps the result to [0, limit].
func saturate(v, divisor, limit float64) float64 {
	return Clamp(v/divisor, 0, limit)
}
