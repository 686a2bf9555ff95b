package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wieku/danser-pp/beatmap/objects"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
	"github.com/wieku/danser-pp/vector"
)

func TestRhythmDifficultyValueDefaultsToOne(t *testing.T) {
	r := NewRhythm()
	assert.Equal(t, 1.0, r.DifficultyValue())
}

func TestRhythmProcessIgnoresNonCircles(t *testing.T) {
	r := NewRhythm()
	spinner := objects.NewSpinner(0, 500, vector.NewVec2f(0, 0))
	curr := &osudiff.Object{Base: spinner}

	r.Process(nil, curr)

	assert.Equal(t, 0, r.circleCount)
	assert.False(t, r.isPreviousOffbeat)
}

func TestCalcSliderEndFlowBounded(t *testing.T) {
	curr := &osudiff.Object{TravelTime: 200, JumpDist: 0}
	flow := calcSliderEndFlow(curr)

	assert.GreaterOrEqual(t, flow, 0.0)
	assert.LessOrEqual(t, flow, 1.0)
}
