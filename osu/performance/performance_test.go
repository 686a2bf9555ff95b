package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/osu/difficulty"
)

// fixtureAttrs mirrors the 601-object map (307 circles, 293 sliders, 1
// spinner) the upstream reference's hitresult-generation tests are run
// against.
func fixtureAttrs() difficulty.Attributes {
	return difficulty.Attributes{
		MaxCombo:  1000,
		NCircles:  307,
		NSliders:  293,
		NSpinners: 1,
	}
}

func TestGenerateStateN300N100MissesBest(t *testing.T) {
	state := NewCalculator(fixtureAttrs()).
		Combo(500).N300(300).N100(20).Misses(2).
		HitResultPriority(BestCase).
		GenerateState()

	assert.Equal(t, State{MaxCombo: 500, N300: 300, N100: 20, N50: 279, Misses: 2}, state)
}

func TestGenerateStateN300N50MissesBest(t *testing.T) {
	state := NewCalculator(fixtureAttrs()).
		Combo(500).N300(300).N50(10).Misses(2).
		HitResultPriority(BestCase).
		GenerateState()

	assert.Equal(t, State{MaxCombo: 500, N300: 300, N100: 289, N50: 10, Misses: 2}, state)
}

func TestGenerateStateN50MissesWorst(t *testing.T) {
	state := NewCalculator(fixtureAttrs()).
		Combo(500).N50(10).Misses(2).
		HitResultPriority(WorstCase).
		GenerateState()

	assert.Equal(t, State{MaxCombo: 500, N300: 0, N100: 589, N50: 10, Misses: 2}, state)
}

func TestGenerateStateN300N100N50MissesWorst(t *testing.T) {
	state := NewCalculator(fixtureAttrs()).
		Combo(500).N300(300).N100(50).N50(10).Misses(2).
		HitResultPriority(WorstCase).
		GenerateState()

	assert.Equal(t, State{MaxCombo: 500, N300: 300, N100: 50, N50: 249, Misses: 2}, state)
}

func TestAccuracyFullComboAllGreat(t *testing.T) {
	s := State{N300: 601}
	assert.InDelta(t, 1.0, s.Accuracy(), 1e-9)
}

func TestAccuracyEmptyStateIsZero(t *testing.T) {
	s := State{}
	assert.Equal(t, 0.0, s.Accuracy())
}

func TestCalculateProducesPositivePP(t *testing.T) {
	attrs := difficulty.Attributes{
		Stars: 5, Aim: 3, JumpAim: 2.5, FlowAim: 2, Precision: 1, Speed: 2.5, Stamina: 2,
		MaxCombo: 601, NCircles: 307, NSliders: 293, NSpinners: 1,
	}

	result := NewCalculator(attrs).Accuracy(98).Misses(1).Calculate()

	assert.Greater(t, result.PP, 0.0)
	assert.Greater(t, result.PPAim, 0.0)
}

func TestCalculateEffectiveMissesFloorsAtActualMisses(t *testing.T) {
	attrs := difficulty.Attributes{MaxCombo: 500, NSliders: 10}
	state := State{MaxCombo: 500, Misses: 3}

	assert.Equal(t, 3.0, calculateEffectiveMisses(attrs, state))
}

func TestCalculateEffectiveMissesRisesWithComboShortfall(t *testing.T) {
	attrs := difficulty.Attributes{MaxCombo: 500, NSliders: 10}
	state := State{MaxCombo: 100, N100: 50, Misses: 1}

	got := calculateEffectiveMisses(attrs, state)
	assert.Greater(t, got, 1.0)
}

// Invariant #6: for an accuracy target with no explicit hitresult
// counts, BestCase synthesis must reach at least as high an accuracy
// as WorstCase synthesis.
func TestHitResultPriorityBestCaseAccuracyAtLeastWorstCase(t *testing.T) {
	attrs := fixtureAttrs()

	best := NewCalculator(attrs).Accuracy(90).Misses(5).HitResultPriority(BestCase).GenerateState()
	worst := NewCalculator(attrs).Accuracy(90).Misses(5).HitResultPriority(WorstCase).GenerateState()

	assert.GreaterOrEqual(t, best.Accuracy(), worst.Accuracy())
}

// S6: toggling Flashlight must never decrease pp_aim or pp_accuracy,
// holding every other input constant.
func TestFlashlightMonotonicallyNonDecreasesAimAndAccuracyPP(t *testing.T) {
	attrs := difficulty.Attributes{
		Stars: 5, Aim: 3, JumpAim: 2.5, FlowAim: 2, Precision: 1, Speed: 2.5, Stamina: 2,
		Accuracy: 1.0, MaxCombo: 601, NCircles: 307, NSliders: 293, NSpinners: 1,
	}

	withoutFL := NewCalculator(attrs).Accuracy(98).Misses(1).Calculate()
	withFL := NewCalculator(attrs).Mods(bdiff.Flashlight).Accuracy(98).Misses(1).Calculate()

	assert.GreaterOrEqual(t, withFL.PPAim, withoutFL.PPAim)
	assert.GreaterOrEqual(t, withFL.PPAccuracy, withoutFL.PPAccuracy)
}
