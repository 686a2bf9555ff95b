// Package beatmap holds the parsed-beatmap input model. Parsing a
// `.osu` file into this shape is out of scope here; this package only
// defines the boundary a caller's parser fills in.
package beatmap

import "github.com/wieku/danser-pp/beatmap/difficulty"

// Mode is a game-mode tag. Only Standard has a complete difficulty
// pipeline in this module; the others are accepted at the boundary
// but have no difficulty.Attributes implementation here.
type Mode int

const (
	Standard Mode = iota
	Taiko
	Catch
	Mania
)

// TimingPoint carries BPM information; kept for callers that need
// stream_bpm-adjacent context beyond strain_time (not consumed by the
// core pipeline itself, which derives stream_bpm purely from
// strain_time per object).
type TimingPoint struct {
	Time       float64
	BeatLength float64
}

// RawDifficulty is the beatmap's stored (pre-mod) difficulty settings.
type RawDifficulty struct {
	AR, CS, OD, HP float64
}

// RawHitObject is a parser-supplied hit object, before stacking and
// slider-cursor simulation.
type RawHitObject struct {
	StartTime float64
	X, Y      float32
	NewCombo  bool

	Slider  *RawSlider // non-nil for sliders
	Spinner *RawSpinner // non-nil for spinners
}

// RawSlider carries the nested path samples a stable-client slider
// visits, already resampled by the (out-of-scope) parser at a fixed
// time step; IsRepeat marks samples that land on a repeat bounce.
type RawSlider struct {
	EndTime    float64
	PixelLength float64
	RepeatCount int
	Nested      []RawSliderSample
}

type RawSliderSample struct {
	X, Y     float32
	IsRepeat bool
}

type RawSpinner struct {
	EndTime float64
}

// Map is the parsed-beatmap boundary type: an ordered sequence of raw
// hit objects plus the difficulty settings and timing points needed to
// build a Calculator.
type Map struct {
	Mode         Mode
	HitObjects   []RawHitObject
	Diff         RawDifficulty
	TimingPoints []TimingPoint
}

// EffectiveMods folds the beatmap's embedded mods (e.g. a stored
// ScoreV2) into the caller-requested mods, mirroring the teacher's
// "force ScoreV2 for all players if the map carries it" rule.
func (m Map) EffectiveMods(requested difficulty.Mods, embedded difficulty.Mods) difficulty.Mods {
	return requested | (embedded & difficulty.ScoreV2)
}
