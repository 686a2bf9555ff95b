package skills

import (
	"github.com/wieku/danser-pp/beatmap/difficulty"
	osudiff "github.com/wieku/danser-pp/osu/diffobject"
)

// Set bundles every osu!standard skill the difficulty pipeline runs,
// mirroring OsuSkills in the upstream reference.
type Set struct {
	Aim     *Aim
	FlowAim *Aim
	JumpAim *Aim
	RawAim  *Aim
	Speed   *Speed
	Stamina *Stamina
	Rhythm  *Rhythm
}

// NewSet builds the skill set for a beatmap's (already mod-adjusted)
// circle radius and mods.
func NewSet(radius float64, mods difficulty.Mods) *Set {
	return &Set{
		Aim:     NewAim(radius, mods, AimCombined),
		FlowAim: NewAim(radius, mods, AimFlow),
		JumpAim: NewAim(radius, mods, AimJump),
		RawAim:  NewAim(radius, mods, AimRaw),
		Speed:   NewSpeed(),
		Stamina: NewStamina(),
		Rhythm:  NewRhythm(),
	}
}

// Process feeds one difficulty object through every skill, in the same
// order the upstream reference's DifficultyValues::calculate loop
// does.
func (s *Set) Process(seq []*osudiff.Object, curr *osudiff.Object) {
	s.Aim.Process(seq, curr)
	s.RawAim.Process(seq, curr)
	s.JumpAim.Process(seq, curr)
	s.FlowAim.Process(seq, curr)
	s.Stamina.Process(seq, curr)
	s.Rhythm.Process(seq, curr)
	s.Speed.Process(seq, curr)
}
