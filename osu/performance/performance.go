// Package performance turns difficulty Attributes plus a score's
// hitresults into a pp breakdown, mirroring the upstream reference's
// osu::performance module.
package performance

import (
	"math"

	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/mutils"
	"github.com/wieku/danser-pp/osu/difficulty"
	"gonum.org/v1/gonum/stat/distuv"
)

// BaseMultiplier is the overall pp scale applied after combining the
// three weighted skill components.
const BaseMultiplier = 1.12

// HitResultPriority controls how GenerateState fills in hitresults that
// weren't explicitly provided, when only an accuracy target is given.
type HitResultPriority int

const (
	// BestCase biases generated results toward 300s over 100s over 50s.
	BestCase HitResultPriority = iota
	// WorstCase biases generated results toward 50s over 100s over 300s.
	WorstCase
)

// State is a play's hitresult breakdown: the inputs a Calculator needs
// once n300/n100/n50/misses/combo are all known.
type State struct {
	MaxCombo int
	N300     int
	N100     int
	N50      int
	Misses   int
}

// TotalHits is the number of judged hit objects.
func (s State) TotalHits() int {
	return s.N300 + s.N100 + s.N50 + s.Misses
}

// Accuracy is the standard osu!standard accuracy percentage, as a
// fraction in [0, 1].
func (s State) Accuracy() float64 {
	return accuracy(s.N300, s.N100, s.N50, s.Misses)
}

func accuracy(n300, n100, n50, misses int) float64 {
	total := n300 + n100 + n50 + misses
	if total == 0 {
		return 0
	}
	numerator := 6*n300 + 2*n100 + n50
	denominator := 6 * total
	return float64(numerator) / float64(denominator)
}

// Attributes bundles the difficulty attributes a performance
// calculation was run against with the resulting pp breakdown.
type Attributes struct {
	Difficulty difficulty.Attributes

	PP          float64
	PPAim       float64
	PPJumpAim   float64
	PPFlowAim   float64
	PPPrecision float64
	PPSpeed     float64
	PPStamina   float64
	PPAccuracy  float64
}

// Calculator computes Attributes from previously-computed difficulty
// Attributes plus a chained-option hitresult specification, mirroring
// OsuPerformance's builder. Unlike the upstream reference, it never
// carries a beatmap itself: run a difficulty.Calculator first and feed
// its result in, since recomputing difficulty per performance call
// would be wasteful for the common case of evaluating many scores on
// one map.
type Calculator struct {
	attrs    difficulty.Attributes
	mods     bdiff.Mods
	acc      *float64
	combo    *int
	n300     *int
	n100     *int
	n50      *int
	misses   *int
	priority HitResultPriority
}

// NewCalculator starts a performance calculation against already-
// computed difficulty attributes.
func NewCalculator(attrs difficulty.Attributes) *Calculator {
	return &Calculator{attrs: attrs, priority: BestCase}
}

// Mods must match the mods the difficulty attributes were computed
// with; only HD/FL affect the pp weights directly (clock rate and
// HR/EZ are already baked into attrs).
func (c *Calculator) Mods(mods bdiff.Mods) *Calculator {
	c.mods = mods
	return c
}

func (c *Calculator) Combo(combo int) *Calculator {
	c.combo = &combo
	return c
}

func (c *Calculator) N300(n int) *Calculator {
	c.n300 = &n
	return c
}

func (c *Calculator) N100(n int) *Calculator {
	c.n100 = &n
	return c
}

func (c *Calculator) N50(n int) *Calculator {
	c.n50 = &n
	return c
}

func (c *Calculator) Misses(n int) *Calculator {
	c.misses = &n
	return c
}

func (c *Calculator) HitResultPriority(p HitResultPriority) *Calculator {
	c.priority = p
	return c
}

// Accuracy specifies a target accuracy percentage (0-100); missing
// hitresults are generated to match it as closely as possible.
func (c *Calculator) Accuracy(pct float64) *Calculator {
	acc := mutils.ClampF64(pct, 0, 100) / 100.0
	c.acc = &acc
	return c
}

// State seeds every field from a previously-known hitresult
// breakdown, e.g. one parsed from a replay or score.
func (c *Calculator) State(s State) *Calculator {
	return c.Combo(s.MaxCombo).N300(s.N300).N100(s.N100).N50(s.N50).Misses(s.Misses)
}

func satSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// satFloatToInt mirrors Rust's saturating float-to-uint `as` cast:
// negative values clamp to zero rather than wrapping.
func satFloatToInt(f float64) int {
	if f < 0 {
		return 0
	}
	return int(f)
}

// GenerateState resolves every unset hitresult field into a concrete
// State, either from an accuracy target (closest-match search over the
// remaining degrees of freedom) or, lacking that, by handing all
// remaining objects to whichever result HitResultPriority favors.
// Ported from OsuPerformance::generate_state.
func (c *Calculator) GenerateState() State {
	maxCombo := c.attrs.MaxCombo
	nObjects := c.attrs.NObjects()

	misses := 0
	if c.misses != nil {
		misses = minInt(*c.misses, nObjects)
	}
	nRemaining := nObjects - misses

	n300 := 0
	if c.n300 != nil {
		n300 = minInt(*c.n300, nRemaining)
	}
	n100 := 0
	if c.n100 != nil {
		n100 = minInt(*c.n100, nRemaining)
	}
	n50 := 0
	if c.n50 != nil {
		n50 = minInt(*c.n50, nRemaining)
	}

	hasN300, hasN100, hasN50 := c.n300 != nil, c.n100 != nil, c.n50 != nil

	if c.acc != nil {
		targetTotal := *c.acc * float64(6*nObjects)

		switch {
		case hasN300 && hasN100 && hasN50:
			remaining := satSub(nObjects, n300+n100+n50+misses)
			switch c.priority {
			case BestCase:
				n300 += remaining
			case WorstCase:
				n50 += remaining
			}

		case hasN300 && hasN100 && !hasN50:
			n50 = satSub(nObjects, n300+n100+misses)

		case hasN300 && !hasN100 && hasN50:
			n100 = satSub(nObjects, n300+n50+misses)

		case !hasN300 && hasN100 && hasN50:
			n300 = satSub(nObjects, n100+n50+misses)

		case hasN300 && !hasN100 && !hasN50:
			bestDist := math.MaxFloat64
			n300 = minInt(n300, nRemaining)
			remaining := nRemaining - n300

			rawN100 := targetTotal - float64(remaining+6*n300)
			minN100 := minInt(remaining, satFloatToInt(math.Floor(rawN100)))
			maxN100 := minInt(remaining, satFloatToInt(math.Ceil(rawN100)))

			for new100 := minN100; new100 <= maxN100; new100++ {
				new50 := remaining - new100
				dist := math.Abs(*c.acc - accuracy(n300, new100, new50, misses))
				if dist < bestDist {
					bestDist = dist
					n100, n50 = new100, new50
				}
			}

		case !hasN300 && hasN100 && !hasN50:
			bestDist := math.MaxFloat64
			n100 = minInt(n100, nRemaining)
			remaining := nRemaining - n100

			rawN300 := (targetTotal - float64(remaining+2*n100)) / 5.0
			minN300 := minInt(remaining, satFloatToInt(math.Floor(rawN300)))
			maxN300 := minInt(remaining, satFloatToInt(math.Ceil(rawN300)))

			for new300 := minN300; new300 <= maxN300; new300++ {
				new50 := remaining - new300
				dist := math.Abs(*c.acc - accuracy(new300, n100, new50, misses))
				if dist < bestDist {
					bestDist = dist
					n300, n50 = new300, new50
				}
			}

		case !hasN300 && !hasN100 && hasN50:
			bestDist := math.MaxFloat64
			n50 = minInt(n50, nRemaining)
			remaining := nRemaining - n50

			rawN300 := (targetTotal + float64(2*misses+n50) - float64(2*nObjects)) / 4.0
			minN300 := minInt(remaining, satFloatToInt(math.Floor(rawN300)))
			maxN300 := minInt(remaining, satFloatToInt(math.Ceil(rawN300)))

			for new300 := minN300; new300 <= maxN300; new300++ {
				new100 := remaining - new300
				dist := math.Abs(*c.acc - accuracy(new300, new100, n50, misses))
				if dist < bestDist {
					bestDist = dist
					n300, n100 = new300, new100
				}
			}

		default: // none of n300/n100/n50 were set
			bestDist := math.MaxFloat64

			rawN300 := (targetTotal - float64(nRemaining)) / 5.0
			minN300 := minInt(nRemaining, satFloatToInt(math.Floor(rawN300)))
			maxN300 := minInt(nRemaining, satFloatToInt(math.Ceil(rawN300)))

			for new300 := minN300; new300 <= maxN300; new300++ {
				rawN100 := targetTotal - float64(nRemaining+5*new300)
				minN100 := minInt(nRemaining-new300, satFloatToInt(math.Floor(rawN100)))
				maxN100 := minInt(nRemaining-new300, satFloatToInt(math.Ceil(rawN100)))

				for new100 := minN100; new100 <= maxN100; new100++ {
					new50 := nRemaining - new300 - new100
					dist := math.Abs(*c.acc - accuracy(new300, new100, new50, misses))
					if dist < bestDist {
						bestDist = dist
						n300, n100, n50 = new300, new100, new50
					}
				}
			}

			switch c.priority {
			case BestCase:
				// Shift n50 to n100 by sacrificing n300.
				n := minInt(n300, n50/4)
				n300 -= n
				n100 += 5 * n
				n50 -= 4 * n
			case WorstCase:
				// Shift n100 to n50 by gaining n300.
				n := n100 / 5
				n300 += n
				n100 -= 5 * n
				n50 += 4 * n
			}
		}
	} else {
		remaining := satSub(nObjects, n300+n100+n50+misses)

		switch c.priority {
		case BestCase:
			switch {
			case !hasN300:
				n300 = remaining
			case !hasN100:
				n100 = remaining
			case !hasN50:
				n50 = remaining
			default:
				n300 += remaining
			}
		case WorstCase:
			switch {
			case !hasN50:
				n50 = remaining
			case !hasN100:
				n100 = remaining
			case !hasN300:
				n300 = remaining
			default:
				n50 += remaining
			}
		}
	}

	maxPossibleCombo := satSub(maxCombo, misses)
	if c.combo != nil {
		maxCombo = minInt(*c.combo, maxPossibleCombo)
	} else {
		maxCombo = maxPossibleCombo
	}

	return State{MaxCombo: maxCombo, N300: n300, N100: n100, N50: n50, Misses: misses}
}

// Calculate runs GenerateState (if needed) and folds the resulting
// State against the difficulty attributes into a pp breakdown.
func (c *Calculator) Calculate() Attributes {
	state := c.GenerateState()
	effectiveMisses := calculateEffectiveMisses(c.attrs, state)

	inner := inner{
		attrs:           c.attrs,
		mods:            c.mods,
		state:           state,
		effectiveMisses: effectiveMisses,
	}

	return inner.calculate()
}

type inner struct {
	attrs           difficulty.Attributes
	mods            bdiff.Mods
	state           State
	effectiveMisses float64
}

func (i inner) calculate() Attributes {
	totalHits := float64(i.state.TotalHits())

	hitError := i.computeNormalisedHitError(totalHits)
	missWeight := i.computeMissWeight()
	aimWeight := i.computeAimWeight(missWeight, hitError, totalHits)
	speedWeight := i.computeSpeedWeight(missWeight, hitError)
	accWeight := i.computeAccuracyWeight()

	aimValue := computeSkillValue(i.attrs.Aim) * aimWeight
	jumpAimValue := computeSkillValue(i.attrs.JumpAim) * aimWeight
	flowAimValue := computeSkillValue(i.attrs.FlowAim) * aimWeight
	precisionValue := computeSkillValue(i.attrs.Precision) * aimWeight

	speedValue := computeSkillValue(i.attrs.Speed) * speedWeight
	staminaValue := computeSkillValue(i.attrs.Stamina) * speedWeight
	accValue := computeAccuracyValue(hitError) * i.attrs.Accuracy * accWeight

	pp := math.Pow(
		math.Pow(aimValue, 1.1)+
			math.Pow(mutils.MaxF64(speedValue, staminaValue), 1.1)+
			math.Pow(accValue, 1.1),
		1.0/1.1,
	) * BaseMultiplier

	return Attributes{
		Difficulty:  i.attrs,
		PP:          pp,
		PPAim:       aimValue,
		PPJumpAim:   jumpAimValue,
		PPFlowAim:   flowAimValue,
		PPPrecision: precisionValue,
		PPSpeed:     speedValue,
		PPStamina:   staminaValue,
		PPAccuracy:  accValue,
	}
}

func computeSkillValue(skillDiff float64) float64 {
	return math.Pow(skillDiff, 3.0) * 3.9
}

func computeAccuracyValue(hitError float64) float64 {
	if math.IsNaN(hitError) {
		return 0
	}
	return 560.0 * math.Pow(0.85, hitError)
}

// computeNormalisedHitError derives a per-hit timing-error scale from
// the share of circle 300s in the score, using the inverse CDF of a
// Beta distribution over the 300-hit proportion (confidence interval
// at 0.2) and the inverse CDF of a standard Normal over the resulting
// tail probability, then scales by the beatmap's OD-derived hit
// window. No pack repo vendors a Beta/Normal inverse CDF, so this
// reaches for gonum (see DESIGN.md).
func (i inner) computeNormalisedHitError(totalHits float64) float64 {
	circle300Count := float64(i.state.N300) - (totalHits - float64(i.attrs.NCircles))
	if circle300Count <= 0 {
		return math.NaN()
	}

	beta := distuv.Beta{Alpha: circle300Count, Beta: 1.0 + float64(i.attrs.NCircles) - circle300Count}
	probability := beta.Quantile(0.2)

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	zValue := normal.Quantile(probability + (1.0-probability)/2.0)

	hitWindow := 79.5 - i.attrs.OD*6.0
	return hitWindow / zValue
}

func (i inner) computeMissWeight() float64 {
	return math.Pow(0.97, i.effectiveMisses)
}

func (i inner) computeAimWeight(missWeight, hitError, totalHits float64) float64 {
	accWeight := 0.0
	if !math.IsNaN(hitError) {
		accWeight = math.Pow(0.995, hitError) * 1.04
	}

	comboWeight := math.Pow(float64(i.state.MaxCombo), 0.8) / math.Pow(float64(i.attrs.MaxCombo), 0.8)

	flLengthWeight := 1.0
	if i.mods.Flashlight() {
		flLengthWeight = 1.0 + math.Atan(totalHits/2000.0)
	}

	return accWeight * comboWeight * missWeight * flLengthWeight
}

func (i inner) computeSpeedWeight(missWeight, hitError float64) float64 {
	accWeight := 0.0
	if !math.IsNaN(hitError) {
		accWeight = math.Pow(0.985, hitError) * 1.12
	}

	comboWeight := math.Pow(float64(i.state.MaxCombo), 0.4) / math.Pow(float64(i.attrs.MaxCombo), 0.4)

	return accWeight * comboWeight * missWeight
}

func (i inner) computeAccuracyWeight() float64 {
	lengthWeight := math.Tanh(float64(i.attrs.NCircles+400)/1050.0) * 1.2

	modWeight := 1.0
	if i.mods.Hidden() {
		modWeight *= 1.02
	}
	if i.mods.Flashlight() {
		modWeight *= 1.04
	}

	return lengthWeight * modWeight
}

// calculateEffectiveMisses guesses the number of misses and slider
// breaks purely from how far the achieved combo falls short of the
// map's max combo, since replays/scores don't separately report slider
// breaks.
func calculateEffectiveMisses(attrs difficulty.Attributes, state State) float64 {
	comboBasedMissCount := 0.0

	if attrs.NSliders > 0 {
		fullComboThreshold := float64(attrs.MaxCombo) - 0.1*float64(attrs.NSliders)

		if float64(state.MaxCombo) < fullComboThreshold {
			comboBasedMissCount = fullComboThreshold / mutils.MaxF64(float64(state.MaxCombo), 1.0)
		}
	}

	comboBasedMissCount = mutils.MinF64(comboBasedMissCount, float64(state.N100+state.N50+state.Misses))

	return mutils.MaxF64(comboBasedMissCount, float64(state.Misses))
}
