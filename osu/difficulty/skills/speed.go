package skills

import (
	"github.com/wieku/danser-pp/mutils"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
)

const (
	// Multiplier and decay base are carried over from the stamina
	// evaluator's constants (2600*0.3, 0.45) rather than invented
	// afresh, since no pack source gives speed its own values either;
	// see DESIGN.md's Open Question resolution.
	speedSkillMultiplier = 2600.0 * 0.3
	speedStrainDecayBase = 0.45

	speedDistanceCap = 125.0
)

// Speed measures raw click/tap speed via a distance-scaled reciprocal
// of strain time. The upstream reference leaves this evaluator's exact
// formula unspecified (see the Open Question resolution in
// SPEC_FULL.md); this is a grounded extrapolation from the shape of
// the stamina evaluator and the aim family's capped, normalised jump
// distance, not a transcription.
type Speed struct {
	strain Strain
}

func NewSpeed() *Speed {
	return &Speed{strain: Strain{DecayBase: speedStrainDecayBase}}
}

func (s *Speed) Process(seq []*osudiff.Object, curr *osudiff.Object) {
	prevStart := 0.0
	if prev := osudiff.Previous(seq, curr, 0); prev != nil {
		prevStart = prev.StartTime
	}

	value := evaluateSpeed(curr) * speedSkillMultiplier
	s.strain.Process(curr.Idx, curr.StartTime, prevStart, curr.StrainTime, value)
}

func (s *Speed) Peaks() []float64        { return s.strain.Peaks() }
func (s *Speed) DifficultyValue() float64 { return DifficultyValue(s.strain.Peaks()) }

func evaluateSpeed(curr *osudiff.Object) float64 {
	distance := mutils.MinF64(curr.JumpDist, speedDistanceCap) / osudiff.NormalizedRadius
	return (1.95 + distance) / curr.StrainTime
}
