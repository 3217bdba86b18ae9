package nodes

import (
	"math"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/signal"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-modular/midi"
)

// Oscillator generates one block of a periodic waveform per tick. Pitch
// follows note-on events arriving on its MIDI input; frequency changes
// are phase-continuous, so retuning mid-note never clicks.
type Oscillator struct {
	sampleRate float64
	wave       signal.Waveform
	freq       float64
	amp        float64
	phase      float64
	pending    []midi.Event
	out        []float64
	dropped    int
}

// NewOscillator returns an oscillator producing the given waveform at
// freq Hz with the given peak amplitude.
func NewOscillator(cfg core.ProcessorConfig, wave signal.Waveform, freq, amplitude float64) *Oscillator {
	return &Oscillator{
		sampleRate: cfg.SampleRate,
		wave:       wave,
		freq:       freq,
		amp:        amplitude,
		out:        make([]float64, cfg.BlockSize),
	}
}

var oscillatorPorts = []engine.Port{engine.MidiIn(0), engine.AudioOut(0)}

// Ports implements engine.Node.
func (o *Oscillator) Ports() []engine.Port { return oscillatorPorts }

// PushEvent implements engine.EventReceiver.
func (o *Oscillator) PushEvent(index int, ev midi.Event) {
	o.pending = append(o.pending, ev)
}

// SetWaveform switches the waveform for subsequent blocks.
func (o *Oscillator) SetWaveform(w signal.Waveform) { o.wave = w }

// SetFrequency retunes the oscillator, keeping the current phase.
func (o *Oscillator) SetFrequency(freq float64) { o.freq = freq }

// SetAmplitude sets the peak output amplitude.
func (o *Oscillator) SetAmplitude(amp float64) { o.amp = amp }

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Dropped returns the number of events discarded because their pitch was
// outside the MIDI range.
func (o *Oscillator) Dropped() int { return o.dropped }

// Process implements engine.Node. Note-off events are ignored here;
// silencing a voice is the envelope's job.
func (o *Oscillator) Process(env engine.Env) {
	for _, ev := range o.pending {
		if ev.Message != midi.NoteOn {
			continue
		}
		freq, err := midi.PitchFrequency(ev.Pitch)
		if err != nil {
			o.dropped++
			continue
		}
		o.freq = freq
	}
	o.pending = o.pending[:0]

	step := 2 * math.Pi * o.freq / o.sampleRate
	for i := range o.out {
		o.out[i] = o.amp * signal.Sample(o.wave, o.phase)
		o.phase = signal.WrapPhase(o.phase + step)
	}
	env.SendBlock(0, o.out)
}
