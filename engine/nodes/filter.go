package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/filter/biquad"
	"github.com/cwbudde/algo-modular/dsp/filter/design"
	"github.com/cwbudde/algo-modular/engine"
)

// Filter runs one biquad section over its audio input. Parameter changes
// redesign the coefficients but keep the section history, so sweeping the
// cutoff during a note stays smooth.
type Filter struct {
	sampleRate float64
	kind       design.Kind
	freq       float64
	q          float64
	section    *biquad.Section
	in         []float64
	out        []float64
}

// NewFilter returns a filter of the given response kind with cutoff (or
// center) frequency freq Hz and quality q. A non-positive q falls back to
// the Butterworth default.
func NewFilter(cfg core.ProcessorConfig, kind design.Kind, freq, q float64) *Filter {
	f := &Filter{
		sampleRate: cfg.SampleRate,
		kind:       kind,
		freq:       freq,
		q:          q,
		in:         make([]float64, cfg.BlockSize),
		out:        make([]float64, cfg.BlockSize),
	}
	f.section = biquad.NewSection(design.ForKind(kind, freq, q, cfg.SampleRate))
	return f
}

var filterPorts = []engine.Port{engine.AudioIn(0), engine.AudioOut(0)}

// Ports implements engine.Node.
func (f *Filter) Ports() []engine.Port { return filterPorts }

// AudioIn implements engine.AudioReceiver.
func (f *Filter) AudioIn(index int) []float64 { return f.in }

// SetKind switches the response kind, preserving filter history.
func (f *Filter) SetKind(kind design.Kind) {
	f.kind = kind
	f.redesign()
}

// SetFrequency moves the cutoff or center frequency.
func (f *Filter) SetFrequency(freq float64) {
	f.freq = freq
	f.redesign()
}

// SetQ changes the quality factor.
func (f *Filter) SetQ(q float64) {
	f.q = q
	f.redesign()
}

// Kind returns the current response kind.
func (f *Filter) Kind() design.Kind { return f.kind }

// Frequency returns the current cutoff or center frequency in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

// MagnitudeDB evaluates the current response at freq Hz in decibels.
func (f *Filter) MagnitudeDB(freq float64) float64 {
	c := f.section.Coefficients
	return c.MagnitudeDB(freq, f.sampleRate)
}

func (f *Filter) redesign() {
	f.section.Retune(design.ForKind(f.kind, f.freq, f.q, f.sampleRate))
}

// Process implements engine.Node.
func (f *Filter) Process(env engine.Env) {
	f.section.ProcessBlockTo(f.out, f.in)
	env.SendBlock(0, f.out)
}
