package skills

import osudiff "github.com/wieku/danser-pp/osu/diffobject"

const (
	staminaSkillMultiplier = 2600.0 * 0.3
	staminaStrainDecayBase = 0.45
)

// Stamina measures sustained single-finger tapping load: it blends a
// pure-tap evaluator with a streaming (alternating) evaluator by the
// object's flow value.
type Stamina struct {
	strain Strain
}

func NewStamina() *Stamina {
	return &Stamina{strain: Strain{DecayBase: staminaStrainDecayBase}}
}

func (s *Stamina) Process(seq []*osudiff.Object, curr *osudiff.Object) {
	prevStart := 0.0
	if prev := osudiff.Previous(seq, curr, 0); prev != nil {
		prevStart = prev.StartTime
	}

	value := evaluateStamina(curr) * staminaSkillMultiplier
	s.strain.Process(curr.Idx, curr.StartTime, prevStart, curr.StrainTime, value)
}

func (s *Stamina) Peaks() []float64        { return s.strain.Peaks() }
func (s *Stamina) DifficultyValue() float64 { return DifficultyValue(s.strain.Peaks()) }

func evaluateStamina(curr *osudiff.Object) float64 {
	ms := curr.LastTwoStrainTime / 2.0

	tapValue := 2.0 / (ms - 20.0)
	streamValue := 1.0 / (ms - 20.0)

	return (1.0-curr.Flow)*tapValue + curr.Flow*streamValue
}
