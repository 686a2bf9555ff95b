package skills

import (
	"math"

	"github.com/wieku/danser-pp/beatmap/objects"
	"github.com/wieku/danser-pp/mutils"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
)

// Rhythm accumulates a circle-only bonus rewarding rhythmic variety
// (doubles, triplets, off-beat patterns) rather than raw strain; it
// has no section-peak/decay machinery of its own.
type Rhythm struct {
	difficultyTotal   float64
	circleCount       int
	isPreviousOffbeat bool
	prevDoubles       []int
}

func NewRhythm() *Rhythm {
	return &Rhythm{}
}

func (r *Rhythm) Process(seq []*osudiff.Object, curr *osudiff.Object) {
	if curr.Base.IsCircle() {
		r.difficultyTotal += r.calcRhythmBonus(seq, curr)
		r.circleCount++
	} else {
		r.isPreviousOffbeat = false
	}
}

func (r *Rhythm) DifficultyValue() float64 {
	if r.circleCount == 0 {
		return 1.0
	}
	lengthRequirement := math.Tanh(float64(r.circleCount) / 50.0)
	return 1.0 + r.difficultyTotal/float64(r.circleCount)*lengthRequirement
}

func (r *Rhythm) calcRhythmBonus(seq []*osudiff.Object, curr *osudiff.Object) float64 {
	rhythmBonus := 0.05 * curr.Flow

	prev := osudiff.Previous(seq, curr, 0)
	if prev == nil {
		return rhythmBonus
	}

	switch prev.Base.Kind {
	case objects.KindCircle:
		rhythmBonus += r.calcCircleToCircleRhythmBonus(curr, prev)
	case objects.KindSlider:
		rhythmBonus += r.calcSliderToCircleRhythmBonus(curr)
	case objects.KindSpinner:
		r.isPreviousOffbeat = false
	}

	return rhythmBonus
}

func (r *Rhythm) calcCircleToCircleRhythmBonus(curr, prev *osudiff.Object) float64 {
	switch {
	case mutils.IsRatioEqual(0.667, curr.TravelTime, prev.TravelTime) && curr.Flow > 0.8:
		r.isPreviousOffbeat = true
	case mutils.IsRatioEqual(1.0, curr.TravelTime, prev.TravelTime) && curr.Flow > 0.8:
		r.isPreviousOffbeat = !r.isPreviousOffbeat
	default:
		r.isPreviousOffbeat = false
	}

	switch {
	case r.isPreviousOffbeat && mutils.IsRatioEqualGreater(1.5, curr.TravelTime, prev.TravelTime):
		rhythmBonus := 5.0

		start := len(r.prevDoubles) - 10
		if start < 0 {
			start = 0
		}
		for _, prevDouble := range r.prevDoubles[start:] {
			if prevDouble > 0 {
				rhythmBonus *= 1.0 - 0.5*math.Pow(float64(curr.Idx)-float64(prevDouble), 0.9)
			} else {
				rhythmBonus = 5.0
			}
		}
		r.prevDoubles = append(r.prevDoubles, curr.Idx)
		return rhythmBonus

	case mutils.IsRatioEqual(0.667, curr.TravelTime, prev.TravelTime):
		if curr.Flow > 0.8 {
			r.prevDoubles = append(r.prevDoubles, -1)
		}
		return 4.0 + 8.0*curr.Flow

	case mutils.IsRatioEqual(0.333, curr.TravelTime, prev.TravelTime):
		return 0.4 + 0.8*curr.Flow

	case mutils.IsRatioEqual(0.5, curr.TravelTime, prev.TravelTime) || mutils.IsRatioEqual(0.25, curr.TravelTime, prev.TravelTime):
		return 0.1 + 0.2*curr.Flow

	default:
		return 0
	}
}

func (r *Rhythm) calcSliderToCircleRhythmBonus(curr *osudiff.Object) float64 {
	sliderMs := curr.StrainTime - curr.TravelTime

	if mutils.IsRatioEqual(0.5, curr.TravelTime, sliderMs) || mutils.IsRatioEqual(0.25, curr.TravelTime, sliderMs) {
		endFlow := calcSliderEndFlow(curr)
		r.isPreviousOffbeat = endFlow > 0.8
		return 0.3 * endFlow
	}

	r.isPreviousOffbeat = false
	return 0
}

func calcSliderEndFlow(curr *osudiff.Object) float64 {
	streamBPM := 15000.0 / curr.TravelTime
	isFlowSpeed := mutils.TransitionToTrue(streamBPM, 120.0, 30.0)
	distanceOffset := (math.Tanh((streamBPM-140.0)/20.0) + 2.0) * osudiff.NormalizedRadius
	isFlowDistance := mutils.TransitionToFalse(curr.JumpDist, distanceOffset, osudiff.NormalizedRadius)

	return isFlowSpeed * isFlowDistance
}
