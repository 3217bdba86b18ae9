// Package envelope provides amplitude envelope generators.
//
// [ADSR] is a linear Attack-Decay-Sustain-Release state machine driven by
// gate events. Segment durations are specified in milliseconds and converted
// to whole frame counts at the configured sample rate. Re-triggering is legal
// in any stage: the generator captures the current amplitude as the new
// segment's start value, so the output stays continuous.
package envelope

import (
	"math"

	"github.com/cwbudde/algo-modular/dsp/core"
)

// Stage identifies the active envelope segment.
type Stage int

const (
	StageInactive Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String returns the stage name for diagnostics.
func (s Stage) String() string {
	switch s {
	case StageInactive:
		return "inactive"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// ADSR is a linear attack-decay-sustain-release envelope generator.
type ADSR struct {
	sampleRate float64

	attackFrames  int
	decayFrames   int
	releaseFrames int
	sustain       float64

	stage Stage
	frame int
	start float64 // amplitude captured on entry into Attack or Release
	level float64 // most recently produced amplitude
}

// New creates an ADSR at the given sample rate with common defaults
// (10 ms attack, 100 ms decay, 0.7 sustain, 300 ms release).
func New(sampleRate float64) *ADSR {
	e := &ADSR{sampleRate: sampleRate, sustain: 0.7}
	e.attackFrames = framesForMillis(sampleRate, 10)
	e.decayFrames = framesForMillis(sampleRate, 100)
	e.releaseFrames = framesForMillis(sampleRate, 300)
	return e
}

// framesForMillis converts a duration in milliseconds to a whole frame count.
func framesForMillis(sampleRate, ms float64) int {
	if ms <= 0 {
		return 0
	}

	return int(math.Round(sampleRate * ms / 1000))
}

// SetAttack sets the attack duration in milliseconds.
func (e *ADSR) SetAttack(ms float64) {
	e.attackFrames = framesForMillis(e.sampleRate, ms)
}

// SetDecay sets the decay duration in milliseconds.
func (e *ADSR) SetDecay(ms float64) {
	e.decayFrames = framesForMillis(e.sampleRate, ms)
}

// SetSustain sets the sustain level as a fraction of peak, clamped to [0, 1].
func (e *ADSR) SetSustain(level float64) {
	e.sustain = core.Clamp(level, 0, 1)
}

// SetRelease sets the release duration in milliseconds.
func (e *ADSR) SetRelease(ms float64) {
	e.releaseFrames = framesForMillis(e.sampleRate, ms)
}

// SetADSR sets all four parameters at once (durations in ms, sustain 0..1).
func (e *ADSR) SetADSR(attackMS, decayMS, sustain, releaseMS float64) {
	e.SetAttack(attackMS)
	e.SetDecay(decayMS)
	e.SetSustain(sustain)
	e.SetRelease(releaseMS)
}

// AttackFrames returns the attack segment length in frames.
func (e *ADSR) AttackFrames() int { return e.attackFrames }

// GateOn forces the envelope into Attack, regardless of the current stage.
// The current amplitude becomes the attack's interpolation start, so a
// re-trigger mid-release or mid-attack produces no discontinuity.
func (e *ADSR) GateOn() {
	e.start = e.level
	e.stage = StageAttack
	e.frame = 0
}

// GateOff forces the envelope into Release, capturing the current amplitude
// as the release's interpolation start.
func (e *ADSR) GateOff() {
	e.start = e.level
	e.stage = StageRelease
	e.frame = 0
}

// Reset returns the envelope to Inactive with zero amplitude.
func (e *ADSR) Reset() {
	e.stage = StageInactive
	e.frame = 0
	e.start = 0
	e.level = 0
}

// Stage returns the current envelope stage.
func (e *ADSR) Stage() Stage { return e.stage }

// Active reports whether the envelope is producing non-silent output.
func (e *ADSR) Active() bool { return e.stage != StageInactive }

// Level returns the most recently produced amplitude.
func (e *ADSR) Level() float64 { return e.level }

// Next advances the envelope by one frame and returns its amplitude.
//
// The first frame of a segment outputs the segment's start amplitude, so the
// Attack (or Release) segment spans exactly its frame count before the next
// stage takes over.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case StageAttack:
		if e.frame >= e.attackFrames {
			e.stage = StageDecay
			e.frame = 0
			return e.Next()
		}
		t := float64(e.frame) / float64(e.attackFrames)
		e.level = e.start + (1-e.start)*t
		e.frame++

	case StageDecay:
		if e.frame >= e.decayFrames {
			e.stage = StageSustain
			return e.Next()
		}
		t := float64(e.frame) / float64(e.decayFrames)
		e.level = 1 + (e.sustain-1)*t
		e.frame++

	case StageSustain:
		// Holds until a gate-off event; no frame countdown.
		e.level = e.sustain

	case StageRelease:
		if e.frame >= e.releaseFrames {
			e.stage = StageInactive
			e.level = 0
			return e.level
		}
		t := float64(e.frame) / float64(e.releaseFrames)
		e.level = e.start * (1 - t)
		e.frame++

	default:
		e.level = 0
	}

	return e.level
}

// ProcessMultiply multiplies buf by the envelope, one frame per sample.
// Only the amplitude changes; the input's frequency content is preserved.
// Zero-alloc.
func (e *ADSR) ProcessMultiply(buf []float64) {
	for i := range buf {
		buf[i] *= e.Next()
	}
}
