// Package mode holds the sentinel error a Calculator returns when asked
// to evaluate a beatmap whose mode (beatmap.Mode) it doesn't
// implement, mirroring the teacher's approach of a shared mode
// enum checked at each ruleset boundary (app/rulesets/osu/ruleset.go's
// GetName()/GetID() mode dispatch).
package mode

import "errors"

// ErrIncompatibleMode is returned by a Calculator when the supplied
// beatmap.Map's Mode isn't the one the calculator implements. This is
// the Go counterpart of the upstream reference's Result-based mode
// mismatch: callers branch on the error instead of matching an enum.
var ErrIncompatibleMode = errors.New("mode: beatmap mode is not compatible with this calculator")
