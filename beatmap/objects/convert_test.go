package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wieku/danser-pp/beatmap"
	"github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/vector"
)

func testMap(raw ...beatmap.RawHitObject) beatmap.Map {
	return beatmap.Map{Mode: beatmap.Standard, HitObjects: raw}
}

func TestConvertHardRockFlipsY(t *testing.T) {
	m := testMap(beatmap.RawHitObject{StartTime: 0, X: 100, Y: 50})
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, true, 1200, 1.0, 1)

	assert.Len(t, out, 1)
	assert.Equal(t, float32(100), out[0].Pos.X())
	assert.Equal(t, float32(334), out[0].Pos.Y()) // 384 - 50
}

func TestConvertTakeCapsObjectCount(t *testing.T) {
	m := testMap(
		beatmap.RawHitObject{StartTime: 0, X: 0, Y: 0},
		beatmap.RawHitObject{StartTime: 100, X: 200, Y: 200},
		beatmap.RawHitObject{StartTime: 200, X: 400, Y: 300},
	)
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, false, 1200, 1.0, 2)

	assert.Len(t, out, 2)
}

func TestConvertStacksCloseObjects(t *testing.T) {
	m := testMap(
		beatmap.RawHitObject{StartTime: 0, X: 100, Y: 100},
		beatmap.RawHitObject{StartTime: 50, X: 100, Y: 100}, // same spot, well within preempt
	)
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, false, 1200, 1.0, 2)

	assert.NotEqual(t, vector.Vector2f{}, out[1].StackOffset)
}

func TestConvertSliderLazyCursorSeededFromCurveTail(t *testing.T) {
	m := beatmap.Map{
		Mode: beatmap.Standard,
		HitObjects: []beatmap.RawHitObject{
			{StartTime: 0, X: 0, Y: 0, Slider: &beatmap.RawSlider{
				EndTime:     500,
				PixelLength: 400,
				Nested: []beatmap.RawSliderSample{
					{X: 50, Y: 0},
					{X: 400, Y: 0},
				},
			}},
		},
	}
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, false, 1200, 1.0, 1)

	require.Len(t, out, 1)
	slider := out[0]

	// Before the fix, LazyEndPos stayed frozen at the (unstacked) head
	// and LazyTravelDist stayed 0 regardless of how far the curve
	// actually travels.
	assert.Greater(t, slider.LazyTravelDist, 0.0)
	assert.Greater(t, slider.LazyEndPos.X(), float32(0))
}

func TestConvertSliderLazyCursorSingleSample(t *testing.T) {
	m := beatmap.Map{
		Mode: beatmap.Standard,
		HitObjects: []beatmap.RawHitObject{
			{StartTime: 0, X: 0, Y: 0, Slider: &beatmap.RawSlider{
				EndTime:     300,
				PixelLength: 200,
				Nested: []beatmap.RawSliderSample{
					{X: 200, Y: 0},
				},
			}},
		},
	}
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, false, 1200, 1.0, 1)

	require.Len(t, out, 1)
	slider := out[0]

	assert.Greater(t, slider.LazyTravelDist, 0.0)
	assert.Greater(t, slider.LazyEndPos.X(), float32(0))
}

func TestConvertKindDispatch(t *testing.T) {
	m := beatmap.Map{
		Mode: beatmap.Standard,
		HitObjects: []beatmap.RawHitObject{
			{StartTime: 0, X: 0, Y: 0},
			{StartTime: 100, X: 10, Y: 10, Slider: &beatmap.RawSlider{EndTime: 300, PixelLength: 100}},
			{StartTime: 400, X: 20, Y: 20, Spinner: &beatmap.RawSpinner{EndTime: 800}},
		},
	}
	scaling := difficulty.NewScalingFactor(4)

	out := Convert(m, scaling, false, 1200, 1.0, len(m.HitObjects))

	assert.Equal(t, KindCircle, out[0].Kind)
	assert.Equal(t, KindSlider, out[1].Kind)
	assert.Equal(t, KindSpinner, out[2].Kind)
}
