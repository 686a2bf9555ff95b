package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wieku/danser-pp/vector"
)

func TestHitObjectEndTime(t *testing.T) {
	circle := NewCircle(100, vector.NewVec2f(0, 0))
	assert.Equal(t, 100.0, circle.EndTime())

	slider := NewSlider(100, 500, vector.NewVec2f(0, 0), nil)
	assert.Equal(t, 500.0, slider.EndTime())

	spinner := NewSpinner(100, 800, vector.NewVec2f(0, 0))
	assert.Equal(t, 800.0, spinner.EndTime())
}

func TestHitObjectKindPredicates(t *testing.T) {
	circle := NewCircle(0, vector.NewVec2f(0, 0))
	assert.True(t, circle.IsCircle())
	assert.False(t, circle.IsSlider())
	assert.False(t, circle.IsSpinner())
}

func TestStackedPosAppliesOffset(t *testing.T) {
	h := NewCircle(0, vector.NewVec2f(100, 100))
	h.StackOffset = vector.NewVec2f(-4, -4)

	pos := h.StackedPos()
	assert.Equal(t, float32(96), pos.X())
	assert.Equal(t, float32(96), pos.Y())
}

func TestEndCursorPosUsesLazyEndPosForSliders(t *testing.T) {
	slider := NewSlider(0, 500, vector.NewVec2f(0, 0), nil)
	slider.LazyEndPos = vector.NewVec2f(50, 60)

	assert.Equal(t, slider.LazyEndPos, slider.EndCursorPos())

	circle := NewCircle(0, vector.NewVec2f(10, 10))
	assert.Equal(t, circle.StackedPos(), circle.EndCursorPos())
}
