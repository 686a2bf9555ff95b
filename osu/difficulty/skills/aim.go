// Package skills implements the osu!standard strain accumulators: aim
// (in its combined/flow/jump/raw variants), speed, stamina, and the
// non-strain rhythm-complexity accumulator.
package skills

import (
	"math"

	"github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/mutils"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
	"github.com/wieku/danser-pp/vector"
)

const (
	aimSkillMultiplier = 1059.0
	aimStrainDecayBase = 0.15

	playfieldWidth  = 512.0
	playfieldHeight = 384.0
)

// AimVariant selects which of the four aim lenses an Aim instance
// evaluates: the combined skill used for star rating, or one of the
// three decomposed lenses (flow/jump/raw) used to break the aim value
// down for display and for the precision-rating diff in difficulty
// aggregation.
type AimVariant int

const (
	AimCombined AimVariant = iota
	AimFlow
	AimJump
	AimRaw
)

type preemptEntry struct {
	startTime float64
	baseFlow  float64
	jumpDist  float64
}

// Aim is the aim strain skill. Hidden/Flashlight/high-AR reading
// bonuses are folded in per object via the same preempt-window density
// model the upstream reference uses.
type Aim struct {
	variant AimVariant
	radius  float64
	mods    difficulty.Mods

	strain  Strain
	preempt []preemptEntry
}

func NewAim(radius float64, mods difficulty.Mods, variant AimVariant) *Aim {
	return &Aim{
		variant: variant,
		radius:  radius,
		mods:    mods,
		strain:  Strain{DecayBase: aimStrainDecayBase},
	}
}

func (a *Aim) Process(seq []*osudiff.Object, curr *osudiff.Object) {
	prevStart := 0.0
	if prev := osudiff.Previous(seq, curr, 0); prev != nil {
		prevStart = prev.StartTime
	}

	value := a.evaluate(seq, curr) * aimSkillMultiplier
	a.strain.Process(curr.Idx, curr.StartTime, prevStart, curr.DeltaTime, value)
}

func (a *Aim) Peaks() []float64        { return a.strain.Peaks() }
func (a *Aim) DifficultyValue() float64 { return DifficultyValue(a.strain.Peaks()) }

func (a *Aim) evaluate(seq []*osudiff.Object, curr *osudiff.Object) float64 {
	var prev2s []*osudiff.Object
	if p0 := osudiff.Previous(seq, curr, 0); p0 != nil {
		prev2s = append(prev2s, p0)
	}
	if p1 := osudiff.Previous(seq, curr, 1); p1 != nil {
		prev2s = append(prev2s, p1)
	}

	var prev0 *osudiff.Object
	if len(prev2s) > 0 {
		prev0 = prev2s[0]
	}

	var aim float64
	switch a.variant {
	case AimFlow:
		aim = calcFlowAimValue(curr, prev0) * calcSmallCircleBonus(a.radius)
	case AimJump:
		aim = calcJumpAimValue(curr, prev2s, false) * calcSmallCircleBonus(a.radius)
	case AimRaw:
		aim = calcFlowAimValue(curr, prev0) + calcJumpAimValue(curr, prev2s, true)
	default:
		aim = (calcFlowAimValue(curr, prev0) + calcJumpAimValue(curr, prev2s, false)) * calcSmallCircleBonus(a.radius)
	}

	readingMult := a.calcReadingMultiplier(curr)

	return aim * readingMult
}

func calcJumpAimValue(curr *osudiff.Object, prev2s []*osudiff.Object, raw bool) float64 {
	if math.Abs(curr.Flow-1.0) < 1e-9 {
		return 0
	}

	dist := curr.JumpDist
	if raw {
		dist = curr.RawJumpDist
	}
	distance := dist / osudiff.NormalizedRadius

	jumpAimBase := distance / curr.StrainTime

	patternWeight := calcJumpPatternWeight(curr, prev2s)

	var locationWeight, angleWeight float64
	if len(prev2s) > 0 {
		prev := prev2s[0]
		locationWeight = calcLocationWeight(curr.Base.Pos, prev.Base.Pos)
		angleWeight = calcJumpAngleWeight(curr.Angle, curr.StrainTime, prev.StrainTime, prev.JumpDist)
	} else {
		locationWeight = 1.0
		angleWeight = calcJumpAngleWeight(curr.Angle, curr.StrainTime, 0, 0)
	}

	jumpAim := jumpAimBase * angleWeight * patternWeight * locationWeight
	return jumpAim * (1.0 - curr.Flow)
}

func calcFlowAimValue(curr *osudiff.Object, prev *osudiff.Object) float64 {
	if curr.Flow == 0 {
		return 0
	}

	distance := curr.JumpDist / osudiff.NormalizedRadius

	// A tanh term centred at two normalised radii plus a linear d/5
	// term, both divided by strain time.
	flowAimBase := (1.0+math.Tanh(distance-2.0))*2.5/curr.StrainTime + (distance/5.0)/curr.StrainTime

	angleWeight := calcFlowAngleWeight(curr.Angle)
	patternWeight := calcFlowPatternWeight(curr, prev, distance)

	locationWeight := 1.0
	if prev != nil {
		locationWeight = calcLocationWeight(curr.Base.Pos, prev.Base.Pos)
	}

	flowAim := flowAimBase * angleWeight * patternWeight * (1.0 + (locationWeight-1.0)/2.0)
	return flowAim * curr.Flow
}

func (a *Aim) calcReadingMultiplier(curr *osudiff.Object) float64 {
	for len(a.preempt) > 0 && a.preempt[0].startTime < curr.StartTime-curr.Preempt {
		a.preempt = a.preempt[1:]
	}

	readingStrain := 0.0
	for _, prev := range a.preempt {
		readingStrain += calcReadingDensity(prev.baseFlow, prev.jumpDist)
	}

	// ~10-15% relative aim bonus at higher density values.
	densityBonus := math.Pow(readingStrain, 1.5) / 100.0

	readingMultiplier := 1.0 + densityBonus
	if a.mods.Hidden() {
		readingMultiplier = 1.05 + densityBonus*1.5
	}

	flashlightMultiplier := calcFlashlightMultiplier(a.mods.Flashlight(), curr.RawJumpDist, a.radius)
	highARMultiplier := calcHighARMultiplier(curr.Preempt)

	a.preempt = append(a.preempt, preemptEntry{startTime: curr.StartTime, baseFlow: curr.BaseFlow, jumpDist: curr.JumpDist})

	return readingMultiplier * flashlightMultiplier * highARMultiplier
}

func calcJumpPatternWeight(curr *osudiff.Object, prev2s []*osudiff.Object) float64 {
	jumpPatternWeight := 1.0

	for i, prevObj := range prev2s {
		velocityWeight := 1.05
		if prevObj.JumpDist > 0 {
			velocityRatio := (curr.JumpDist/curr.StrainTime)/(prevObj.JumpDist/prevObj.StrainTime) - 1.0
			switch {
			case velocityRatio <= 0:
				velocityWeight = 1.0 + velocityRatio*velocityRatio/2.0
			case velocityRatio < 1.0:
				velocityWeight = 1.0 + (-math.Cos(velocityRatio*math.Pi)+1.0)/40.0
			}
		}

		angleWeight := 1.0
		if mutils.IsRatioEqual(1.0, curr.StrainTime, prevObj.StrainTime) &&
			!mutils.IsNullOrNaN(curr.Angle) && !mutils.IsNullOrNaN(prevObj.Angle) {
			angleChange := math.Abs(math.Abs(*curr.Angle) - math.Abs(*prevObj.Angle))
			if angleChange >= math.Pi/1.5 {
				angleWeight = 1.05
			} else {
				angleWeight = 1.0 + (-math.Sin(math.Cos(angleChange*1.5)*math.Pi/2.0)+1.0)/40.0
			}
		}

		jumpPatternWeight *= math.Pow(velocityWeight*angleWeight, 2.0-float64(i))
	}

	distanceRequirement := 0.0
	if len(prev2s) > 0 {
		prev := prev2s[0]
		distanceRequirement = calcDistanceRequirement(curr.StrainTime, prev.StrainTime, prev.JumpDist)
	}

	return 1.0 + (jumpPatternWeight-1.0)*distanceRequirement
}

func calcFlowPatternWeight(curr *osudiff.Object, prev *osudiff.Object, distance float64) float64 {
	if prev == nil {
		return 1.0
	}

	distanceRate := 1.0
	if prev.JumpDist > 0 {
		distanceRate = curr.JumpDist/prev.JumpDist - 1.0
	}

	var distanceBonus float64
	switch {
	case distanceRate <= 0:
		distanceBonus = distanceRate * distanceRate
	case distanceRate < 1.0:
		distanceBonus = (-math.Cos(math.Pi*distanceRate) + 1.0) / 2.0
	default:
		distanceBonus = 1.0
	}

	angleBonus := 0.0
	if !mutils.IsNullOrNaN(curr.Angle) && !mutils.IsNullOrNaN(prev.Angle) {
		cangle, pangle := *curr.Angle, *prev.Angle

		switch {
		case (cangle > 0 && pangle < 0) || (cangle < 0 && pangle > 0):
			var angleChange float64
			if math.Abs(cangle) > (math.Pi-math.Abs(pangle))/2.0 {
				angleChange = math.Pi - math.Abs(cangle)
			} else {
				angleChange = math.Abs(pangle) - math.Abs(cangle)
			}
			angleBonus = (-math.Cos(math.Sin(angleChange/2.0)*math.Pi) + 1.0) / 2.0
		case math.Abs(cangle) < math.Abs(pangle):
			angleChange := cangle - pangle
			angleBonus = (-math.Cos(math.Sin(angleChange/2.0)*math.Pi) + 1.0) / 2.0
		}

		if angleBonus > 0 {
			angleChange := math.Abs(cangle) - math.Abs(pangle)
			capped := (-math.Cos(math.Sin(angleChange/2.0)*math.Pi) + 1.0) / 2.0
			angleBonus = math.Min(capped, angleBonus)
		}
	}

	streamJumpRate := mutils.TransitionToTrue(distanceRate, 0.0, 1.0)
	distanceWeight := (1.0 + distanceBonus) * calcStreamJumpWeight(curr.JumpDist, streamJumpRate, distance)
	angleWeight := 1.0 + angleBonus*(1.0-streamJumpRate)

	return 1.0 + (distanceWeight*angleWeight-1.0)*prev.Flow
}

func calcJumpAngleWeight(angle *float64, deltaTime, prevDeltaTime, prevDistance float64) float64 {
	if mutils.IsNullOrNaN(angle) {
		return 1.0
	}

	distanceRequirement := calcDistanceRequirement(deltaTime, prevDeltaTime, prevDistance)
	return 1.0 + (-math.Sin(math.Cos(*angle)*math.Pi/2.0)+1.0)/10.0*distanceRequirement
}

func calcFlowAngleWeight(angle *float64) float64 {
	if mutils.IsNullOrNaN(angle) {
		return 1.0
	}
	return 1.0 + (math.Cos(*angle)+1.0)/10.0
}

func calcStreamJumpWeight(jumpDist, streamJumpRate, distance float64) float64 {
	if jumpDist <= 0 {
		return 1.0
	}

	flowAimRevertFactor := 1.0 / ((math.Tanh(distance-2.0)+1.0)*2.5 + distance/5.0)
	return (1.0-streamJumpRate)*1.0 + streamJumpRate*flowAimRevertFactor*distance
}

func calcLocationWeight(pos, prevPos vector.Vector2f) float64 {
	x := float64(pos.X()+prevPos.X()) * 0.5
	y := float64(pos.Y()+prevPos.Y()) * 0.5

	x -= playfieldWidth / 2.0
	y -= playfieldHeight / 2.0

	angle := math.Pi / 3.0
	a := (x*math.Cos(angle) + y*math.Sin(angle)) / 750.0
	b := (x*math.Sin(angle) - y*math.Cos(angle)) / 1000.0

	locationBonus := a*a + b*b
	return 1.0 + locationBonus
}

func calcDistanceRequirement(deltaTime, prevDeltaTime, prevDistance float64) float64 {
	if mutils.IsRatioEqualGreater(1.0, deltaTime, prevDeltaTime) {
		overlapDistance := (prevDeltaTime / deltaTime) * osudiff.NormalizedRadius * 2.0
		return mutils.TransitionToTrue(prevDistance, 0.0, overlapDistance)
	}
	return 0.0
}

func calcReadingDensity(prevBaseFlow, prevJumpDist float64) float64 {
	return (1.0 - prevBaseFlow*0.75) * (1.0 + prevBaseFlow*0.5*prevJumpDist/osudiff.NormalizedRadius)
}

func calcFlashlightMultiplier(flashlightEnabled bool, rawJumpDistance, radius float64) float64 {
	if !flashlightEnabled {
		return 1.0
	}
	return 1.0 + mutils.TransitionToTrue(rawJumpDistance, playfieldHeight/4.0, radius)*0.3
}

func calcSmallCircleBonus(radius float64) float64 {
	return 1.0 + 120.0/math.Pow(radius, 2.0)
}

func calcHighARMultiplier(preempt float64) float64 {
	return 1.0 + (-math.Tanh((preempt-325.0)/30.0)+1.0)/15.0
}
