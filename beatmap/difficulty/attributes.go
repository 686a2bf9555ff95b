package difficulty

// Attributes holds a beatmap's difficulty settings after HR/EZ and
// clock-rate adjustment, plus the hit windows derived from them.
type Attributes struct {
	AR, CS, OD, HP float64
	HitWindows     HitWindows
}

// HitWindows are the durations, in milliseconds, a player has to hit an
// object for each judgement, plus the approach-circle preempt time.
type HitWindows struct {
	AR float64 // preempt time, ms
	OD float64 // 300-judgement half-window, ms
	HP float64 // health-drain related window, ms
}

// difficultyRange maps a 0-10 difficulty value through the standard
// osu! piecewise-linear table (min at 0, mid at 5, max at 10).
func difficultyRange(difficulty, min, mid, max float64) float64 {
	if difficulty > 5 {
		return mid + (max-mid)*(difficulty-5)/5
	}
	if difficulty < 5 {
		return mid - (mid-min)*(5-difficulty)/5
	}
	return mid
}

// hardRockAdjust scales a 0-10 difficulty value for HR (up) or EZ
// (down), matching the stable HR/EZ difficulty-adjust multiplier.
func hardRockAdjust(value float64, hr, ez bool) float64 {
	switch {
	case hr:
		value = minF(value*1.4, 10)
	case ez:
		value *= 0.5
	}
	return value
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// NewAttributes resolves AR/CS/OD/HP under mods and clock rate into
// the beatmap attributes consumed by the rest of the difficulty
// pipeline. clockRate must already reflect DT/HT/overrides.
func NewAttributes(ar, cs, od, hp float64, mods Mods, clockRate float64) Attributes {
	hr := mods.HardRock()
	ez := mods.Easy()

	ar = hardRockAdjust(ar, hr, ez)
	cs = hardRockAdjust(cs, hr, ez)
	od = hardRockAdjust(od, hr, ez)
	hp = hardRockAdjust(hp, hr, ez)

	preempt := difficultyRange(ar, 1800, 1200, 450) / clockRate
	odWindow := difficultyRange(od, 80, 50, 20) / clockRate
	hpWindow := difficultyRange(hp, 80, 50, 20) / clockRate

	return Attributes{
		AR: ar,
		CS: cs,
		OD: od,
		HP: hp,
		HitWindows: HitWindows{
			AR: preempt,
			OD: odWindow,
			HP: hpWindow,
		},
	}
}
