package difficulty

// NormalizedRadius is the circle radius (playfield pixels) that
// distance-based difficulty features are normalised against.
const NormalizedRadius = 52.0

// objectRadius is the on-screen circle radius for a given CS, before
// any normalisation.
func objectRadius(cs float64) float64 {
	return 32.0 * (1.0 - 0.7*(cs-5.0)/5.0)
}

// ScalingFactor derives the radius-normalisation factors used
// throughout difficulty-object feature derivation from CS.
type ScalingFactor struct {
	Radius                      float64
	Factor                      float64
	FactorWithSmallCircleBonus  float64
}

// NewScalingFactor builds a ScalingFactor for the given (already
// mod-adjusted) CS value.
func NewScalingFactor(cs float64) ScalingFactor {
	radius := objectRadius(cs)

	factor := NormalizedRadius / radius

	smallCircleBonus := 1.0
	if radius < 30 {
		smallCircleBonus = 1.0 + (30.0-radius)/50.0
	}

	return ScalingFactor{
		Radius:                     radius,
		Factor:                     factor,
		FactorWithSmallCircleBonus: factor * smallCircleBonus,
	}
}
