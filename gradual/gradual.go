// Package gradual exposes replay-style step-by-step difficulty and
// performance calculation: call Next/Nth after each judged hit object
// to get attributes for the objects passed so far (each step reruns
// the full pipeline over that prefix, see Difficulty), mirroring the upstream
// reference's TaikoGradualDifficulty/TaikoGradualPerformance contract
// (no osu!standard-specific gradual source survived into the
// retrieval pack, so this follows the taiko shape generalized to
// osu!standard's Calculator/State types).
package gradual

import (
	"github.com/wieku/danser-pp/beatmap"
	bdiff "github.com/wieku/danser-pp/beatmap/difficulty"
	"github.com/wieku/danser-pp/osu/difficulty"
	"github.com/wieku/danser-pp/osu/performance"
)

// Difficulty incrementally exposes Attributes as more of a beatmap's
// hit objects are considered "passed". Each step recomputes the full
// difficulty pipeline capped to the new object count rather than
// reusing skill state across steps — the upstream reference's
// incremental per-object skill bookkeeping isn't available for
// osu!standard in the retrieval pack, so this trades some efficiency
// for a Calculator this module already has full confidence in (see
// DESIGN.md).
type Difficulty struct {
	calc  *difficulty.Calculator
	m     beatmap.Map
	idx   int
	total int
}

// NewDifficulty starts a gradual difficulty walk over a beatmap under
// fixed mods. Nothing is processed until the first Next/Nth call.
func NewDifficulty(m beatmap.Map, mods bdiff.Mods) *Difficulty {
	return &Difficulty{
		calc:  difficulty.NewCalculator().Mods(mods),
		m:     m,
		total: len(m.HitObjects),
	}
}

// Next processes exactly one more hit object.
func (d *Difficulty) Next() (difficulty.Attributes, bool) {
	return d.Nth(0)
}

// Last processes every remaining hit object.
func (d *Difficulty) Last() (difficulty.Attributes, bool) {
	return d.Nth(d.total)
}

// Nth processes hit objects up to and including the (idx+n)th one
// after the last processed object (zero-indexed: n=0 processes one
// more object, n=1 processes two more, and so on). ok is false once
// every hit object has already been processed.
func (d *Difficulty) Nth(n int) (difficulty.Attributes, bool) {
	if d.idx >= d.total {
		return difficulty.Attributes{}, false
	}

	d.idx += n + 1
	if d.idx > d.total {
		d.idx = d.total
	}

	attrs, err := d.calc.PassedObjects(d.idx).Calculate(d.m)
	if err != nil {
		return difficulty.Attributes{}, false
	}

	return attrs, true
}

// Idx is the number of hit objects processed so far.
func (d *Difficulty) Idx() int {
	return d.idx
}

// Performance pairs a gradual Difficulty walk with a caller-supplied
// running score state to compute pp after each hit object.
type Performance struct {
	difficulty *Difficulty
	mods       bdiff.Mods
}

// NewPerformance starts a gradual performance walk over a beatmap
// under fixed mods.
func NewPerformance(m beatmap.Map, mods bdiff.Mods) *Performance {
	return &Performance{difficulty: NewDifficulty(m, mods), mods: mods}
}

// Next processes one more hit object and calculates the performance
// attributes for the resulting score state.
func (p *Performance) Next(state performance.State) (performance.Attributes, bool) {
	return p.Nth(state, 0)
}

// Last processes every remaining hit object and calculates the final
// performance attributes.
func (p *Performance) Last(state performance.State) (performance.Attributes, bool) {
	return p.Nth(state, p.difficulty.total)
}

// Nth processes hit objects up to the (idx+n)th one after the last
// processed object and calculates the performance attributes for the
// given score state, ported from TaikoGradualPerformance::nth.
func (p *Performance) Nth(state performance.State, n int) (performance.Attributes, bool) {
	attrs, ok := p.difficulty.Nth(n)
	if !ok {
		return performance.Attributes{}, false
	}

	result := performance.NewCalculator(attrs).
		Mods(p.mods).
		State(state).
		Calculate()

	return result, true
}
