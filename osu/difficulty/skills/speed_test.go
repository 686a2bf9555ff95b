package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
)

func TestEvaluateSpeedCapsDistance(t *testing.T) {
	near := &osudiff.Object{JumpDist: 10, StrainTime: 100}
	far := &osudiff.Object{JumpDist: speedDistanceCap * 5, StrainTime: 100}

	nearValue := evaluateSpeed(near)
	farValue := evaluateSpeed(far)

	// beyond the cap, extra distance no longer increases the value.
	cappedDistance := speedDistanceCap / osudiff.NormalizedRadius
	assert.InDelta(t, (1.95+cappedDistance)/100, farValue, 1e-9)
	assert.Less(t, nearValue, farValue)
}

func TestSpeedProcessAccumulates(t *testing.T) {
	s := NewSpeed()
	seq := []*osudiff.Object{
		{Idx: 0, StartTime: 0, StrainTime: 100, JumpDist: 50},
		{Idx: 1, StartTime: 100, StrainTime: 100, JumpDist: 50},
	}

	s.Process(seq, seq[0])
	s.Process(seq, seq[1])

	assert.GreaterOrEqual(t, s.DifficultyValue(), 0.0)
}
