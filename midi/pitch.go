package midi

import (
	"fmt"
	"math"
)

// PitchRange is the number of supported MIDI pitches (0..127).
const PitchRange = 128

// Concert pitch reference.
const (
	A4Pitch     = 69
	A4Frequency = 440.0
)

// ErrPitchOutOfRange is returned for pitches outside 0..127.
var ErrPitchOutOfRange = fmt.Errorf("midi: pitch out of range [0, %d)", PitchRange)

// pitchTable holds the 12-tone-equal-temperament frequencies, A4 (pitch 69)
// tuned to 440 Hz.
var pitchTable = buildPitchTable()

func buildPitchTable() [PitchRange]float64 {
	var table [PitchRange]float64
	for p := range table {
		table[p] = A4Frequency * math.Pow(2, float64(p-A4Pitch)/12)
	}
	return table
}

// PitchFrequency returns the frequency in Hz for a MIDI pitch, or
// [ErrPitchOutOfRange] for pitches outside the table. The lookup never
// mutates state; an out-of-range pitch is an error, not a panic.
func PitchFrequency(pitch int) (float64, error) {
	if pitch < 0 || pitch >= PitchRange {
		return 0, fmt.Errorf("%w: %d", ErrPitchOutOfRange, pitch)
	}

	return pitchTable[pitch], nil
}
