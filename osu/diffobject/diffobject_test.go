package diffobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/beatmap/objects"
	"github.com/wieku/danser-pp/vector"
)

func TestBuildSkipsFewerThanTwoObjects(t *testing.T) {
	scaling := bdiff.NewScalingFactor(4)
	assert.Nil(t, Build(nil, 1.0, 1200, scaling))
	assert.Nil(t, Build([]*objects.HitObject{objects.NewCircle(0, vector.NewVec2f(0, 0))}, 1.0, 1200, scaling))
}

func TestBuildDeltaAndStrainTimeFloor(t *testing.T) {
	hits := []*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0)),
		objects.NewCircle(10, vector.NewVec2f(100, 0)), // well under the 50ms floor
	}
	scaling := bdiff.NewScalingFactor(4)

	seq := Build(hits, 1.0, 1200, scaling)
	if assert.Len(t, seq, 1) {
		assert.InDelta(t, 10.0, seq[0].DeltaTime, 1e-9)
		assert.InDelta(t, minDeltaTime, seq[0].StrainTime, 1e-9)
	}
}

func TestBuildJumpDistScalesByFactor(t *testing.T) {
	hits := []*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0)),
		objects.NewCircle(500, vector.NewVec2f(100, 0)),
	}
	scaling := bdiff.NewScalingFactor(4)

	seq := Build(hits, 1.0, 1200, scaling)
	if assert.Len(t, seq, 1) {
		assert.InDelta(t, 100.0, seq[0].RawJumpDist, 1e-6)
		assert.InDelta(t, 100.0*scaling.FactorWithSmallCircleBonus, seq[0].JumpDist, 1e-6)
	}
}

func TestBuildAngleRequiresThreeObjects(t *testing.T) {
	hits := []*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0)),
		objects.NewCircle(500, vector.NewVec2f(100, 0)),
		objects.NewCircle(1000, vector.NewVec2f(100, 100)),
	}
	scaling := bdiff.NewScalingFactor(4)

	seq := Build(hits, 1.0, 1200, scaling)
	if assert.Len(t, seq, 2) {
		assert.Nil(t, seq[0].Angle)
		assert.NotNil(t, seq[1].Angle)
	}
}

func TestPreviousReturnsNilBeforeStart(t *testing.T) {
	hits := []*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0)),
		objects.NewCircle(500, vector.NewVec2f(100, 0)),
	}
	scaling := bdiff.NewScalingFactor(4)
	seq := Build(hits, 1.0, 1200, scaling)

	assert.Nil(t, Previous(seq, seq[0], 0))
}

// Invariant #8: doubling clock_rate halves delta_time, and
// strain_time's 50ms floor still holds.
func TestBuildScaleInvarianceOfStrainTime(t *testing.T) {
	hits := []*objects.HitObject{
		objects.NewCircle(0, vector.NewVec2f(0, 0)),
		objects.NewCircle(1000, vector.NewVec2f(100, 0)),
	}
	scaling := bdiff.NewScalingFactor(4)

	atNormalRate := Build(hits, 1.0, 1200, scaling)
	atDoubledRate := Build(hits, 2.0, 1200, scaling)

	assert.InDelta(t, atNormalRate[0].DeltaTime/2.0, atDoubledRate[0].DeltaTime, 1e-9)
	assert.GreaterOrEqual(t, atNormalRate[0].StrainTime, minDeltaTime)
	assert.GreaterOrEqual(t, atDoubledRate[0].StrainTime, minDeltaTime)
}
