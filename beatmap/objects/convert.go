package objects

import (
	"github.com/wieku/danser-pp/beatmap"
	"github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/vector"
)

const (
	stackLeniency  = 0.7
	stackDistance  = 3.0 // osu! pixels
	assumedSliderRadiusFactor = 1.8
)

// Convert turns a beatmap's raw hit objects into the typed HitObject
// sequence, applying HR's position flip, stacking, and (for sliders)
// the lazy-cursor simulation. take caps how many raw objects are
// considered, matching passed_objects.
func Convert(m beatmap.Map, scaling difficulty.ScalingFactor, hardRock bool, preempt, stackLeniencyMul float64, take int) []*HitObject {
	raw := m.HitObjects
	if take < len(raw) {
		raw = raw[:take]
	}

	out := make([]*HitObject, 0, len(raw))

	for _, r := range raw {
		pos := vector.NewVec2f(r.X, r.Y)
		if hardRock {
			pos = vector.NewVec2f(r.X, 384-r.Y)
		}

		switch {
		case r.Slider != nil:
			nested := make([]SliderSample, 0, len(r.Slider.Nested))
			for _, s := range r.Slider.Nested {
				sp := vector.NewVec2f(s.X, s.Y)
				if hardRock {
					sp = vector.NewVec2f(s.X, 384-s.Y)
				}
				nested = append(nested, SliderSample{Pos: sp, IsRepeat: s.IsRepeat})
			}
			out = append(out, NewSlider(r.StartTime, r.Slider.EndTime, pos, nested))
		case r.Spinner != nil:
			out = append(out, NewSpinner(r.StartTime, r.Spinner.EndTime, pos))
		default:
			out = append(out, NewCircle(r.StartTime, pos))
		}
	}

	applyStacking(out, preempt, stackLeniencyMul)

	for _, h := range out {
		computeLazySliderCursor(h, scaling.Radius)
	}

	return out
}

// applyStacking resolves stack offsets for circles and sliders that
// land close together in both time and space, the stable-client
// stacking algorithm: objects within stackDistance osu! pixels and
// within the approach window get progressively nudged along the
// diagonal so they remain individually clickable.
func applyStacking(objs []*HitObject, preempt, leniency float64) {
	n := len(objs)
	stackBaseline := float32(stackDistance)

	for i := n - 1; i > 0; i-- {
		cur := objs[i]
		if cur.Kind != KindCircle && cur.Kind != KindSlider {
			continue
		}

		sliderStack := 0

		for j := i - 1; j >= 0; j-- {
			prev := objs[j]
			if prev.Kind == KindSpinner {
				continue
			}

			if cur.StartTime-prev.EndTime() > preempt*leniency {
				break
			}

			if prev.Kind == KindSlider {
				endPos := prev.EndCursorPos()
				if endPos.Dst(cur.Pos) < stackBaseline {
					sliderStack++
					cur.StackOffset = vector.NewVec2f(0, 0).Sub(vector.NewVec2f(float32(sliderStack), float32(sliderStack)).Scl(4))
					continue
				}
			}

			if prev.Pos.Dst(cur.Pos) < stackBaseline {
				offset := stackCount(objs, j) + 1
				setStackCount(objs, j, offset)
				cur.StackOffset = vector.NewVec2f(float32(-offset), float32(-offset)).Scl(4)
			}
		}
	}
}

// stackCount/setStackCount recover the integer stack depth already
// applied to an object from its current offset, so the next object in
// the chain stacks one further.
func stackCount(objs []*HitObject, idx int) int {
	off := objs[idx].StackOffset
	if off.X() == 0 {
		return 0
	}
	return int(-off.X() / 4)
}

func setStackCount(objs []*HitObject, idx int, depth int) {
	objs[idx].StackOffset = vector.NewVec2f(float32(-depth), float32(-depth)).Scl(4)
}

// computeLazySliderCursor models the human-optimal path through a
// slider: the cursor only pursues a nested sample once it strays
// further than the assumed slider radius (or the normalized radius at
// a repeat), accumulating the distance actually travelled.
func computeLazySliderCursor(h *HitObject, radius float64) {
	if h.Kind != KindSlider {
		return
	}

	scalingFactor := difficulty.NormalizedRadius / radius
	assumedRadius := difficulty.NormalizedRadius * assumedSliderRadiusFactor

	// Seed the tail with the curve's actual endpoint (the last nested
	// sample, stacked) rather than leaving NewSlider's head-position
	// placeholder in place — the clamp loop below only ever shortens
	// this toward the cursor, so an un-seeded tail silently collapses
	// lazy travel distance to near zero.
	if n := len(h.Nested); n > 0 {
		h.LazyEndPos = h.Nested[n-1].Pos.Add(h.StackOffset)
	} else {
		h.LazyEndPos = h.StackedPos()
	}

	cursor := h.StackedPos()
	lazyTravelDist := 0.0

	for i, sample := range h.Nested {
		samplePos := sample.Pos.Add(h.StackOffset)

		movement := samplePos.Sub(cursor)
		movementLen := scalingFactor * float64(movement.Len())

		required := assumedRadius
		isLast := i == len(h.Nested)-1

		if isLast {
			lazyMovement := h.LazyEndPos.Sub(cursor)
			if float64(lazyMovement.Len()) < float64(movement.Len()) {
				movement = lazyMovement
			}
			movementLen = scalingFactor * float64(movement.Len())
		} else if sample.IsRepeat {
			required = difficulty.NormalizedRadius
		}

		if movementLen > required {
			frac := float32((movementLen - required) / movementLen)
			cursor = cursor.Add(movement.Scl(frac))
			movementLen *= (movementLen - required) / movementLen
			lazyTravelDist += movementLen
		}

		if isLast {
			h.LazyEndPos = cursor
		}
	}

	h.LazyTravelDist = lazyTravelDist
}
