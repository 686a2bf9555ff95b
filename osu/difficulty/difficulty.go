package difficulty

import (
	"math"

	"github.com/wieku/danser-pp/beatmap"
	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/beatmap/objects"
	"github.com/wieku/danser-pp/mode"
	"github.com/wieku/danser-pp/osu/diffobject"
	"github.com/wieku/danser-pp/osu/difficulty/skills"
)

const difficultyMultiplier = 0.0675

// Attributes is the full set of difficulty outputs for a beatmap under
// a fixed set of mods: the component skill ratings, the aggregate star
// rating, and the object/combo counts a performance Calculator needs.
type Attributes struct {
	Stars     float64
	Aim       float64
	JumpAim   float64
	FlowAim   float64
	Precision float64
	Speed     float64
	Stamina   float64
	Accuracy  float64

	AR, OD, HP float64

	MaxCombo  int
	NCircles  int
	NSliders  int
	NSpinners int
}

// NObjects is the total hit object count the attributes were computed
// over.
func (a Attributes) NObjects() int {
	return a.NCircles + a.NSliders + a.NSpinners
}

// Calculator computes Attributes for an osu!standard beatmap under a
// builder-configured set of mods/clock rate/partial-play cutoff,
// mirroring the teacher's chained-option ruleset setup
// (app/rulesets/osu/ruleset.go's difficulty plumbing) rather than the
// upstream reference's consuming builder.
type Calculator struct {
	mods          bdiff.Mods
	passedObjects int
	clockRate     float64
	clockRateSet  bool
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Mods(mods bdiff.Mods) *Calculator {
	c.mods = mods
	return c
}

// PassedObjects caps evaluation to the first n hit objects, for
// partial-play (fail/retry) difficulty. Zero means "all objects".
func (c *Calculator) PassedObjects(n int) *Calculator {
	c.passedObjects = n
	return c
}

// ClockRate overrides the mod-derived clock rate, clamped to
// [0.01, 100].
func (c *Calculator) ClockRate(rate float64) *Calculator {
	c.clockRate = math.Min(math.Max(rate, 0.01), 100)
	c.clockRateSet = true
	return c
}

func (c *Calculator) effectiveClockRate() float64 {
	if c.clockRateSet {
		return c.clockRate
	}
	return c.mods.ClockRate()
}

// Calculate runs the full difficulty pipeline: beatmap conversion,
// difficulty-object construction, skill accumulation, and aggregation
// into star ratings.
func (c *Calculator) Calculate(m beatmap.Map) (Attributes, error) {
	if m.Mode != beatmap.Standard {
		return Attributes{}, mode.ErrIncompatibleMode
	}

	values, err := c.values(m)
	if err != nil {
		return Attributes{}, err
	}

	return Eval(values), nil
}

// Strains exposes the raw per-section strain peaks for every skill,
// for plotting a map's difficulty over time (OsuStrains in the
// upstream reference).
type Strains struct {
	SectionLen float64
	Aim        []float64
	Jump       []float64
	Flow       []float64
	Raw        []float64
	Speed      []float64
	Stamina    []float64
}

func (c *Calculator) CalculateStrains(m beatmap.Map) (Strains, error) {
	if m.Mode != beatmap.Standard {
		return Strains{}, mode.ErrIncompatibleMode
	}

	values, err := c.values(m)
	if err != nil {
		return Strains{}, err
	}

	return Strains{
		SectionLen: 400.0,
		Aim:        values.skills.Aim.Peaks(),
		Jump:       values.skills.JumpAim.Peaks(),
		Flow:       values.skills.FlowAim.Peaks(),
		Raw:        values.skills.RawAim.Peaks(),
		Speed:      values.skills.Speed.Peaks(),
		Stamina:    values.skills.Stamina.Peaks(),
	}, nil
}

// Values is the intermediate state shared between Calculate and
// CalculateStrains: built objects, the processed skills, and the
// partially-filled attributes (AR/OD/HP/object counts) derived before
// the skills are evaluated.
type Values struct {
	skills *skills.Set
	attrs  Attributes
}

func (c *Calculator) values(m beatmap.Map) (Values, error) {
	clockRate := c.effectiveClockRate()
	effectiveMods := m.EffectiveMods(c.mods, bdiff.Mods(0))

	attrs := bdiff.NewAttributes(m.Diff.AR, m.Diff.CS, m.Diff.OD, m.Diff.HP, effectiveMods, clockRate)

	scaling := bdiff.NewScalingFactor(attrs.CS)

	timePreempt := attrs.HitWindows.AR

	take := c.passedObjects
	if take <= 0 || take > len(m.HitObjects) {
		take = len(m.HitObjects)
	}

	converted := objects.Convert(m, scaling, effectiveMods.HardRock(), timePreempt, 1.0, take)

	diffObjects := diffobject.Build(converted, clockRate, timePreempt, scaling)

	skillSet := skills.NewSet(scaling.Radius, effectiveMods)
	for _, obj := range diffObjects {
		skillSet.Process(diffObjects, obj)
	}

	result := Attributes{
		AR:       attrs.AR,
		OD:       attrs.OD,
		HP:       attrs.HP,
		MaxCombo: countMaxCombo(converted),
	}

	for _, h := range converted {
		switch h.Kind {
		case objects.KindCircle:
			result.NCircles++
		case objects.KindSlider:
			result.NSliders++
		case objects.KindSpinner:
			result.NSpinners++
		}
	}

	return Values{skills: skillSet, attrs: result}, nil
}

// Eval folds every skill's difficulty_value into the final star
// rating and component ratings, ported from
// DifficultyValues::eval in the upstream reference.
func Eval(v Values) Attributes {
	attrs := v.attrs

	aimValue := v.skills.Aim.DifficultyValue()
	jumpValue := v.skills.JumpAim.DifficultyValue()
	flowValue := v.skills.FlowAim.DifficultyValue()
	rawValue := v.skills.RawAim.DifficultyValue()
	speedValue := v.skills.Speed.DifficultyValue()
	staminaValue := v.skills.Stamina.DifficultyValue()
	rhythmValue := v.skills.Rhythm.DifficultyValue()

	attrs.Aim = sqrtClamp(aimValue) * difficultyMultiplier
	attrs.JumpAim = sqrtClamp(jumpValue) * difficultyMultiplier
	attrs.FlowAim = sqrtClamp(flowValue) * difficultyMultiplier
	attrs.Precision = sqrtClamp(maxF(aimValue-rawValue, 0)) * difficultyMultiplier
	attrs.Speed = sqrtClamp(speedValue) * difficultyMultiplier
	attrs.Stamina = sqrtClamp(staminaValue) * difficultyMultiplier
	attrs.Accuracy = sqrtClamp(rhythmValue)

	attrs.Stars = cubeRootSum(attrs.Aim, maxF(attrs.Speed, attrs.Stamina)) * 1.6

	return attrs
}

func countMaxCombo(converted []*objects.HitObject) int {
	combo := 0
	for _, h := range converted {
		switch h.Kind {
		case objects.KindSlider:
			combo += 1 + len(h.Nested)
		default:
			combo++
		}
	}
	return combo
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func sqrtClamp(x float64) float64 {
	return math.Sqrt(maxF(x, 0))
}

func cubeRootSum(a, b float64) float64 {
	return math.Cbrt(a*a*a + b*b*b)
}
