// Package diffobject builds the osu!standard DifficultyObject sequence
// consumed by every skill in osu/difficulty/skills, kept separate from
// the osu/difficulty package (which orchestrates the skills) to avoid
// an import cycle between the two.
package diffobject

import (
	"math"

	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/beatmap/objects"
	"github.com/wieku/danser-pp/mutils"
)

const (
	// NormalizedRadius mirrors beatmap/difficulty.NormalizedRadius,
	// re-exported here since every formula in this package reads it.
	NormalizedRadius = bdiff.NormalizedRadius

	minDeltaTime   = 50.0
	minLastTwoTime = 100.0
)

// Object is a DifficultyObject: a hit object paired with its
// predecessor(s) to derive the geometric and temporal features the
// skills consume.
type Object struct {
	Idx  int
	Base *objects.HitObject

	StartTime float64
	DeltaTime float64

	StrainTime        float64
	LastTwoStrainTime float64
	RawJumpDist       float64
	JumpDist          float64
	TravelDist        float64
	TravelTime        float64
	Angle             *float64
	BaseFlow          float64
	Flow              float64
	AngleLeniency     float64
	Preempt           float64
	StreamBPM         float64
}

// Build pairs every converted hit object (after the first) with its
// predecessor(s), producing the difficulty-object sequence the skills
// process in order.
func Build(hitObjects []*objects.HitObject, clockRate, timePreempt float64, scaling bdiff.ScalingFactor) []*Object {
	if len(hitObjects) < 2 {
		return nil
	}

	out := make([]*Object, 0, len(hitObjects)-1)

	var lastDiff, lastLastDiff *Object

	for i := 1; i < len(hitObjects); i++ {
		cur := hitObjects[i]
		last := hitObjects[i-1]

		var lastLast *objects.HitObject
		if i >= 2 {
			lastLast = hitObjects[i-2]
		}

		obj := newObject(cur, last, lastLast, lastDiff, lastLastDiff, clockRate, timePreempt, len(out), scaling)
		out = append(out, obj)

		lastLastDiff = lastDiff
		lastDiff = obj
	}

	return out
}

func newObject(cur, last, lastLast *objects.HitObject, lastDiff, lastLastDiff *Object, clockRate, timePreempt float64, idx int, scaling bdiff.ScalingFactor) *Object {
	deltaTime := (cur.StartTime - last.StartTime) / clockRate
	startTime := cur.StartTime / clockRate
	strainTime := math.Max(deltaTime, minDeltaTime)

	lastTwoStrainTime := minLastTwoTime
	if lastLast != nil {
		lastTwoStrainTime = math.Max((cur.StartTime-lastLast.StartTime)/clockRate, minLastTwoTime)
	}

	o := &Object{
		Idx:               idx,
		Base:              cur,
		StartTime:         startTime,
		DeltaTime:         deltaTime,
		StrainTime:        strainTime,
		LastTwoStrainTime: lastTwoStrainTime,
		StreamBPM:         15000.0 / strainTime,
		Preempt:           timePreempt / clockRate,
	}

	o.setDistances(cur, last, lastLast, clockRate, scaling)
	o.setFlowValues(lastDiff, lastLastDiff)

	return o
}

func (o *Object) setDistances(cur, last, lastLast *objects.HitObject, clockRate float64, scaling bdiff.ScalingFactor) {
	factor := scaling.FactorWithSmallCircleBonus

	switch {
	case last.IsCircle():
		o.TravelTime = o.StrainTime
	case last.IsSlider():
		o.TravelDist = last.LazyTravelDist * factor
		o.TravelTime = math.Max((cur.StartTime-last.EndTime())/clockRate, minDeltaTime)
	case last.IsSpinner():
		o.TravelTime = math.Max((cur.StartTime-last.EndTime())/clockRate, minDeltaTime)
	}

	lastCursor := last.EndCursorPos()

	if !cur.IsSpinner() {
		o.RawJumpDist = float64(cur.StackedPos().Dst(lastCursor))
		o.JumpDist = o.RawJumpDist * factor
	}

	if lastLast != nil {
		lastLastCursor := lastLast.EndCursorPos()

		v1 := last.StackedPos().Sub(lastLastCursor)
		v2 := cur.StackedPos().Sub(lastCursor)

		dot := float64(v1.Dot(v2))
		det := float64(v1.Cross(v2))

		angle := math.Abs(math.Atan2(det, dot))
		o.Angle = &angle
	}
}

func (o *Object) setFlowValues(lastDiff, lastLastDiff *Object) {
	var angleScalingFactor *float64
	irregularFlow := 0.0

	if lastDiff != nil {
		if mutils.IsRatioEqualLess(0.667, o.StrainTime, lastDiff.StrainTime) {
			f := 1.0
			angleScalingFactor = &f
		}

		if mutils.IsRoughlyEqual(o.StrainTime, lastDiff.StrainTime) {
			var f float64
			if mutils.IsNullOrNaN(o.Angle) {
				f = 0.5
			} else {
				base := (-math.Sin(math.Cos(*o.Angle)*math.Pi/2) + 3) / 4
				f = base + (1-base)*lastDiff.AngleLeniency
			}
			angleScalingFactor = &f

			distanceOffset := (math.Tanh((o.StreamBPM-140)/20)*1.75 + 2.75) * NormalizedRadius
			irregularFlow = mutils.TransitionToFalse(o.JumpDist, distanceOffset, distanceOffset)
			irregularFlow *= lastDiff.BaseFlow
		}
	} else {
		f := 1.0
		angleScalingFactor = &f
	}

	if lastLastDiff != nil && mutils.IsRoughlyEqual(o.StrainTime, lastLastDiff.StrainTime) {
		distanceOffset := (math.Tanh((o.StreamBPM-140)/20)*1.75 + 2.75) * NormalizedRadius
		irregularFlow = mutils.TransitionToFalse(o.JumpDist, distanceOffset, distanceOffset)
		irregularFlow *= lastLastDiff.BaseFlow
	}

	if angleScalingFactor != nil {
		speedFlow := mutils.TransitionToTrue(o.StreamBPM, 90, 30)
		distanceOffset := (math.Tanh((o.StreamBPM-140)/20) + 2) * NormalizedRadius
		o.BaseFlow = speedFlow * mutils.TransitionToFalse(o.JumpDist, distanceOffset*(*angleScalingFactor), distanceOffset)
	} else {
		o.BaseFlow = 0
	}

	if lastDiff != nil {
		o.AngleLeniency = (1 - o.BaseFlow) * irregularFlow
		o.Flow = math.Max(o.BaseFlow, irregularFlow)
	} else {
		o.Flow = o.BaseFlow
	}
}

// Previous returns the difficulty object n steps before cur in seq
// (n=0 is the immediate predecessor), or nil if there isn't one.
func Previous(seq []*Object, cur *Object, n int) *Object {
	idx := cur.Idx - n - 1
	if idx < 0 || idx >= len(seq) {
		return nil
	}
	return seq[idx]
}
