package plant

// TankSize is the shared radius and height of every tank in a layout.
type TankSize struct {
	Radius float64
	Height float64
}

// SizeTank derives tank dimensions from the flow rate. Both dimensions grow
// linearly with flow up to a cap and never fall below the tuning's base
// values, so the result is always strictly positive.
func SizeTank(flowRate float64, t Tuning) TankSize {
	return TankSize{
		Radius: t.BaseRadius + saturate(flowRate, t.RadiusDivisor, t.RadiusCap),
		Height: t.BaseHeight + saturate(flowRate, t.HeightDivisor, t.HeightCap),
	}
}

// PipeRadius derives the pipe radius from the pipe diameter, saturating at
// both ends so tiny or huge diameters still give a visible, bounded pipe.
func PipeRadius(pipeDiameter float64, t Tuning) float64 {
	return Clamp(pipeDiameter/t.DiameterDivisor, t.MinPipeRadius, t.MaxPipeRadius)
}
