package difficulty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wieku/danser-pp/beatmap"
	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/mode"
)

func sampleMap() beatmap.Map {
	hits := make([]beatmap.RawHitObject, 0, 20)
	for i := 0; i < 20; i++ {
		hits = append(hits, beatmap.RawHitObject{
			StartTime: float64(i) * 300,
			X:         float32((i % 5) * 100),
			Y:         float32((i / 5) * 80),
		})
	}
	return beatmap.Map{
		Mode:       beatmap.Standard,
		HitObjects: hits,
		Diff:       beatmap.RawDifficulty{AR: 9, CS: 4, OD: 8, HP: 5},
	}
}

func TestCalculateRejectsWrongMode(t *testing.T) {
	m := sampleMap()
	m.Mode = beatmap.Taiko

	_, err := NewCalculator().Calculate(m)
	assert.ErrorIs(t, err, mode.ErrIncompatibleMode)
}

func TestCalculateProducesPositiveStars(t *testing.T) {
	attrs, err := NewCalculator().Calculate(sampleMap())
	require.NoError(t, err)

	assert.Greater(t, attrs.Stars, 0.0)
	assert.Equal(t, 20, attrs.NObjects())
	assert.Equal(t, 20, attrs.NCircles)
	assert.InDelta(t, 9.0, attrs.AR, 1e-9)
}

func TestCalculatePassedObjectsCapsAttributes(t *testing.T) {
	full, err := NewCalculator().Calculate(sampleMap())
	require.NoError(t, err)

	partial, err := NewCalculator().PassedObjects(5).Calculate(sampleMap())
	require.NoError(t, err)

	assert.Equal(t, 5, partial.NObjects())
	assert.Less(t, partial.NObjects(), full.NObjects())
}

func TestCalculateStrainsMatchesSectionLen(t *testing.T) {
	strains, err := NewCalculator().CalculateStrains(sampleMap())
	require.NoError(t, err)

	assert.Equal(t, 400.0, strains.SectionLen)
	assert.NotEmpty(t, strains.Aim)
}

func TestClockRateOverridesModDerived(t *testing.T) {
	c := NewCalculator().Mods(bdiff.Mods(0)).ClockRate(2.0)
	assert.InDelta(t, 2.0, c.effectiveClockRate(), 1e-9)
}

func TestSqrtClampFloorsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, sqrtClamp(-5))
	assert.InDelta(t, 3.0, sqrtClamp(9), 1e-9)
}

func TestCubeRootSumIsZeroOnlyWhenBothInputsZero(t *testing.T) {
	assert.InDelta(t, 4.0, cubeRootSum(4, 0), 1e-9)
	assert.Equal(t, 0.0, cubeRootSum(0, 0))
	assert.Greater(t, cubeRootSum(3, 4), 4.0)
}

// S5: DT mods and an equivalent clock-rate override must agree on
// stars for an all-circles map (no hit-window-sensitive skill reads
// an attribute DT/ClockRate disagree on).
func TestCalculateDTModsMatchesEquivalentClockRateOverride(t *testing.T) {
	viaMods, err := NewCalculator().Mods(bdiff.DoubleTime).Calculate(sampleMap())
	require.NoError(t, err)

	viaClockRate, err := NewCalculator().ClockRate(1.5).Calculate(sampleMap())
	require.NoError(t, err)

	assert.InDelta(t, viaMods.Stars, viaClockRate.Stars, 1e-9)
}

// Invariant #7: precision_rating >= 0, and stars is never less than
// the cube-sum identity's lower bound on its dominant component.
func TestCalculateSatisfiesSkillBound(t *testing.T) {
	attrs, err := NewCalculator().Calculate(sampleMap())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, attrs.Precision, 0.0)

	dominant := maxF(attrs.Aim, maxF(attrs.Speed, attrs.Stamina))
	lowerBound := dominant * 1.6 * math.Pow(2, -2.0/3.0)
	assert.GreaterOrEqual(t, attrs.Stars, lowerBound-1e-9)
}
