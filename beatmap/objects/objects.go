// Package objects holds the converted hit-object model: Circle,
// Slider, and Spinner variants carrying the stacked position and,
// for sliders, the lazy-cursor path the difficulty pipeline needs.
package objects

import "github.com/wieku/danser-pp/vector"

// PreemptMin is the approach-preempt floor at AR10 (without mod
// extension beyond AR10).
const PreemptMin = 450.0

// Kind distinguishes which hit-object variant a HitObject carries.
type Kind int

const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
)

// SliderSample is one nested path sample a slider's lazy cursor visits.
type SliderSample struct {
	Pos      vector.Vector2f
	IsRepeat bool
}

// HitObject is the converted, tagged-variant hit object consumed by
// difficulty-object construction.
type HitObject struct {
	StartTime   float64
	Pos         vector.Vector2f
	StackOffset vector.Vector2f

	Kind Kind

	// Slider-only fields.
	Nested         []SliderSample
	LazyEndPos     vector.Vector2f
	LazyTravelDist float64
	EndTimeValue   float64 // slider/spinner end time
}

func NewCircle(startTime float64, pos vector.Vector2f) *HitObject {
	return &HitObject{StartTime: startTime, Pos: pos, Kind: KindCircle}
}

func NewSlider(startTime, endTime float64, pos vector.Vector2f, nested []SliderSample) *HitObject {
	h := &HitObject{
		StartTime:    startTime,
		Pos:          pos,
		Kind:         KindSlider,
		Nested:       nested,
		EndTimeValue: endTime,
	}
	h.LazyEndPos = pos
	return h
}

func NewSpinner(startTime, endTime float64, pos vector.Vector2f) *HitObject {
	return &HitObject{StartTime: startTime, Pos: pos, Kind: KindSpinner, EndTimeValue: endTime}
}

func (h *HitObject) IsCircle() bool  { return h.Kind == KindCircle }
func (h *HitObject) IsSlider() bool  { return h.Kind == KindSlider }
func (h *HitObject) IsSpinner() bool { return h.Kind == KindSpinner }

// StackedPos is Pos offset by the stacking displacement.
func (h *HitObject) StackedPos() vector.Vector2f {
	return h.Pos.Add(h.StackOffset)
}

// EndTime returns the object's end time (== StartTime for circles).
func (h *HitObject) EndTime() float64 {
	switch h.Kind {
	case KindSlider, KindSpinner:
		return h.EndTimeValue
	default:
		return h.StartTime
	}
}

// EndCursorPos is the position the difficulty pipeline treats as
// "where the cursor settles" after this object: the lazy end position
// for sliders, or the stacked position otherwise.
func (h *HitObject) EndCursorPos() vector.Vector2f {
	if h.Kind == KindSlider {
		return h.LazyEndPos
	}
	return h.StackedPos()
}
